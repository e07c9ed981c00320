package handlers

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"p9e.in/mtmaterial/config"
	"p9e.in/mtmaterial/models"
)

type objectRow struct {
	models.ObjectPivot
	IsDuplicate bool `json:"isDuplicate"`
}

// ListObjects returns the by-object pivot over all matching submissions,
// paginated after grouping (an object spans submissions across pages).
func ListObjects(w http.ResponseWriter, r *http.Request) {
	params := models.ParseListParams(r)

	query := params.ApplyDateRange(config.DB).Preload("Items.Material").Order("created_at desc")
	if params.Search != "" {
		query = query.Where("dehp_number ILIKE ?", "%"+params.Search+"%")
	}

	var submissions []models.Submission
	if err := query.Find(&submissions).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pivots := models.BuildObjectPivots(submissions)
	duplicates := duplicateDehpSet(submissions)

	total := int64(len(pivots))
	start := params.Offset()
	if start > len(pivots) {
		start = len(pivots)
	}
	end := start + models.ItemsPerPage
	if end > len(pivots) {
		end = len(pivots)
	}

	rows := make([]objectRow, 0, end-start)
	for _, pivot := range pivots[start:end] {
		pivot.Submissions = nil // listing view stays flat
		rows = append(rows, objectRow{ObjectPivot: pivot, IsDuplicate: duplicates[pivot.DehpNumber]})
	}

	writeJSON(w, http.StatusOK, newPagedResponse(rows, total, params.Page))
}

// GetObject returns the full pivot for one DEHP number including the
// contributing submissions.
func GetObject(w http.ResponseWriter, r *http.Request) {
	dehp, err := url.PathUnescape(mux.Vars(r)["dehp"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid object identifier")
		return
	}

	var submissions []models.Submission
	if err := config.DB.
		Preload("Items.Material").
		Preload("Attachments").
		Where("dehp_number = ?", dehp).
		Order("created_at desc").
		Find(&submissions).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(submissions) == 0 {
		writeError(w, http.StatusNotFound, "object not found")
		return
	}

	writeJSON(w, http.StatusOK, models.BuildObjectPivot(dehp, submissions))
}
