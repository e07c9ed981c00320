package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"p9e.in/mtmaterial/models"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeValidationError mirrors the 400 payload the worker form expects:
// a message plus per-field detail lists.
func writeValidationError(w http.ResponseWriter, details map[string][]string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":   "Ungültige Eingabe",
		"details": details,
	})
}

// flattenValidationErrors converts validator.ValidationErrors into the
// per-field details map.
func flattenValidationErrors(err error) map[string][]string {
	details := make(map[string][]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		details["_"] = []string{err.Error()}
		return details
	}
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		var msg string
		switch fe.Tag() {
		case "required":
			msg = field + " ist erforderlich"
		case "min":
			msg = field + " ist zu kurz"
		case "oneof":
			msg = field + " hat einen ungültigen Wert"
		default:
			msg = field + " ist ungültig"
		}
		details[field] = append(details[field], msg)
	}
	return details
}

type pagedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
}

func newPagedResponse(data interface{}, total int64, page int) pagedResponse {
	return pagedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(models.ItemsPerPage))),
	}
}
