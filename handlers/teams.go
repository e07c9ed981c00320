package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"p9e.in/mtmaterial/config"
	"p9e.in/mtmaterial/models"
)

// ListTeams returns the by-team pivot over all matching submissions,
// ascending by team, paginated after grouping.
func ListTeams(w http.ResponseWriter, r *http.Request) {
	params := models.ParseListParams(r)

	query := params.ApplyDateRange(config.DB).Preload("Items.Material")
	if params.Search != "" {
		query = query.Where("mt_team_norm ILIKE ?", "%"+strings.ToUpper(params.Search)+"%")
	}

	var submissions []models.Submission
	if err := query.Find(&submissions).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pivots := models.BuildTeamPivots(submissions)
	for i := range pivots {
		pivots[i].Objects = nil // listing view stays flat
	}

	total := int64(len(pivots))
	start := params.Offset()
	if start > len(pivots) {
		start = len(pivots)
	}
	end := start + models.ItemsPerPage
	if end > len(pivots) {
		end = len(pivots)
	}

	writeJSON(w, http.StatusOK, newPagedResponse(pivots[start:end], total, params.Page))
}

type teamDetailResponse struct {
	models.TeamPivot
	BranchAddress string `json:"branchAddress"`
}

// GetTeam returns the full pivot for one team: nested objects, material
// totals and the branch address from team settings.
func GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := url.PathUnescape(mux.Vars(r)["team"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team")
		return
	}
	mtTeamNorm := models.NormalizeTeam(team)

	var submissions []models.Submission
	if err := config.DB.
		Preload("Items.Material").
		Where("mt_team_norm = ?", mtTeamNorm).
		Order("created_at desc").
		Find(&submissions).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	branch := ""
	var settings models.TeamSettings
	if err := config.DB.Where("mt_team_norm = ?", mtTeamNorm).First(&settings).Error; err == nil {
		branch = settings.BranchAddress
	}

	writeJSON(w, http.StatusOK, teamDetailResponse{
		TeamPivot:     models.BuildTeamPivot(mtTeamNorm, submissions),
		BranchAddress: branch,
	})
}

type teamSettingsReq struct {
	BranchAddress string `json:"branchAddress" validate:"required"`
}

// UpsertTeamSettings writes the branch address for a team. Last write wins.
func UpsertTeamSettings(w http.ResponseWriter, r *http.Request) {
	team, err := url.PathUnescape(mux.Vars(r)["team"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team")
		return
	}
	mtTeamNorm := models.NormalizeTeam(team)

	var req teamSettingsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, flattenValidationErrors(err))
		return
	}

	var settings models.TeamSettings
	err = config.DB.Where("mt_team_norm = ?", mtTeamNorm).First(&settings).Error
	if err != nil {
		settings = models.TeamSettings{MtTeamNorm: mtTeamNorm, BranchAddress: req.BranchAddress}
		if err := config.DB.Create(&settings).Error; err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	} else {
		settings.BranchAddress = req.BranchAddress
		if err := config.DB.Save(&settings).Error; err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, settings)
}
