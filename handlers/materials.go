package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"p9e.in/mtmaterial/config"
	"p9e.in/mtmaterial/models"
)

// ListMaterials returns the catalogue. Workers only ever see active entries;
// the admin table passes ?all=true.
func ListMaterials(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("all") == "true"

	query := config.DB.Order("created_at asc")
	if !all {
		query = query.Where("active = ?", true)
	}

	var materials []models.Material
	if err := query.Find(&materials).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

type createMaterialReq struct {
	Name          string           `json:"name" validate:"required"`
	UnitPrice     *decimal.Decimal `json:"unitPrice"`
	ArticleNumber *string          `json:"articleNumber"`
}

func CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req createMaterialReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, flattenValidationErrors(err))
		return
	}

	material := models.Material{
		Name:          req.Name,
		Active:        true,
		ArticleNumber: req.ArticleNumber,
	}
	if req.UnitPrice != nil {
		material.UnitPrice = *req.UnitPrice
	}

	if err := config.DB.Create(&material).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeError(w, http.StatusConflict, "Material mit diesem Namen existiert bereits")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, material)
}

type updateMaterialReq struct {
	Name          *string          `json:"name"`
	Active        *bool            `json:"active"`
	UnitPrice     *decimal.Decimal `json:"unitPrice"`
	ArticleNumber *string          `json:"articleNumber"`
	ImageKey      *string          `json:"imageKey"`
}

// UpdateMaterial applies a partial update. Renaming onto an existing name is
// a conflict and leaves the record untouched.
func UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var material models.Material
	if err := config.DB.Where("id = ?", id).First(&material).Error; err != nil {
		writeError(w, http.StatusNotFound, "material not found")
		return
	}

	var req updateMaterialReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeValidationError(w, map[string][]string{"name": {"name ist erforderlich"}})
			return
		}
		material.Name = name
	}
	if req.Active != nil {
		material.Active = *req.Active
	}
	if req.UnitPrice != nil {
		material.UnitPrice = *req.UnitPrice
	}
	if req.ArticleNumber != nil {
		material.ArticleNumber = req.ArticleNumber
	}
	if req.ImageKey != nil {
		material.ImageKey = req.ImageKey
	}

	if err := config.DB.Save(&material).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeError(w, http.StatusConflict, "Material mit diesem Namen existiert bereits")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, material)
}
