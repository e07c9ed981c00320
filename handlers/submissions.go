package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"p9e.in/mtmaterial/config"
	"p9e.in/mtmaterial/models"
)

type submissionItemReq struct {
	MaterialID uuid.UUID `json:"materialId" validate:"required"`
	Qty        int       `json:"qty" validate:"min=0"`
}

type createSubmissionReq struct {
	MtTeam        string              `json:"mtTeam" validate:"required"`
	DehpNumber    string              `json:"dehpNumber" validate:"required"`
	FirstName     string              `json:"firstName" validate:"required"`
	LastName      string              `json:"lastName" validate:"required"`
	Address       *string             `json:"address"`
	Comment       *string             `json:"comment"`
	HasRadiator   bool                `json:"hasRadiator"`
	Items         []submissionItemReq `json:"items" validate:"required,min=1,dive"`
	AttachmentIDs []uuid.UUID         `json:"attachmentIds"`
}

// CreateSubmission is the worker-facing entry point. The submission, its line
// items and the attachment links are written in one transaction; the
// duplicate check runs after that transaction commits.
func CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.MtTeam = strings.TrimSpace(req.MtTeam)
	req.DehpNumber = strings.TrimSpace(req.DehpNumber)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, flattenValidationErrors(err))
		return
	}

	items := make([]submissionItemReq, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Qty > 0 {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		writeValidationError(w, map[string][]string{
			"items": {"Mindestens ein Material muss angegeben werden"},
		})
		return
	}

	materialIDs := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool)
	for _, item := range items {
		if !seen[item.MaterialID] {
			seen[item.MaterialID] = true
			materialIDs = append(materialIDs, item.MaterialID)
		}
	}

	var materials []models.Material
	if err := config.DB.Where("id IN ?", materialIDs).Find(&materials).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(materials) != len(materialIDs) {
		writeValidationError(w, map[string][]string{
			"items": {"Unbekanntes Material"},
		})
		return
	}
	prices := models.LoadPrices(materials)

	// Photo policy runs against the still-unlinked uploads named by the
	// request; already-linked attachments belong to another submission.
	countsByCategory := make(map[string]int)
	var attachments []models.Attachment
	if len(req.AttachmentIDs) > 0 {
		if err := config.DB.Where("id IN ? AND submission_id IS NULL", req.AttachmentIDs).
			Find(&attachments).Error; err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		for _, att := range attachments {
			if att.Category != nil {
				countsByCategory[*att.Category]++
			}
		}
	}

	complete, violations := models.ValidatePhotos(countsByCategory, req.HasRadiator)
	if !complete {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Ungültige Eingabe",
			"details": map[string]interface{}{"photos": violations},
		})
		return
	}

	submission := models.Submission{
		MtTeamRaw:     req.MtTeam,
		MtTeamNorm:    models.NormalizeTeam(req.MtTeam),
		DehpNumber:    req.DehpNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Address:       req.Address,
		Comment:       req.Comment,
		HasRadiator:   req.HasRadiator,
		PhotoComplete: complete,
	}
	for _, item := range items {
		submission.Items = append(submission.Items, models.SubmissionItem{
			MaterialID: item.MaterialID,
			Qty:        item.Qty,
			UnitPrice:  prices.SnapshotPrice(item.MaterialID),
		})
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		if len(req.AttachmentIDs) > 0 {
			return tx.Model(&models.Attachment{}).
				Where("id IN ? AND submission_id IS NULL", req.AttachmentIDs).
				Update("submission_id", submission.ID).Error
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Best effort: the submission is committed; a failed duplicate check is
	// logged and swallowed.
	CheckDuplicateSubmission(submission.DehpNumber)

	writeJSON(w, http.StatusCreated, map[string]string{"id": submission.ID.String()})
}

type submissionRow struct {
	models.Submission
	IsDuplicate bool `json:"isDuplicate"`
}

// ListSubmissions returns the filtered, paginated submission list with
// duplicate annotations.
func ListSubmissions(w http.ResponseWriter, r *http.Request) {
	params := models.ParseListParams(r)

	base := params.ApplySubmissionFilters(config.DB.Model(&models.Submission{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var submissions []models.Submission
	err := params.ApplySubmissionFilters(config.DB).
		Preload("Items.Material").
		Preload("Attachments").
		Order("created_at desc").
		Offset(params.Offset()).
		Limit(models.ItemsPerPage).
		Find(&submissions).Error
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	duplicates := duplicateDehpSet(submissions)
	rows := make([]submissionRow, 0, len(submissions))
	for _, sub := range submissions {
		rows = append(rows, submissionRow{Submission: sub, IsDuplicate: duplicates[sub.DehpNumber]})
	}

	writeJSON(w, http.StatusOK, newPagedResponse(rows, total, params.Page))
}

// GetSubmission returns one submission with items, attachments and its
// duplicate annotation.
func GetSubmission(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var submission models.Submission
	err := config.DB.
		Preload("Items.Material").
		Preload("Attachments").
		Where("id = ?", id).
		First(&submission).Error
	if err != nil {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}

	var count int64
	config.DB.Model(&models.Notification{}).
		Where("type = ? AND dehp_number = ?", models.NotificationTypeDehpDuplicate, submission.DehpNumber).
		Count(&count)

	writeJSON(w, http.StatusOK, submissionRow{Submission: submission, IsDuplicate: count > 0})
}

// duplicateDehpSet marks which of the listed submissions have a duplicate
// notification, open or closed. Purely informational.
func duplicateDehpSet(submissions []models.Submission) map[string]bool {
	set := make(map[string]bool)
	if len(submissions) == 0 {
		return set
	}

	dehpNumbers := make([]string, 0, len(submissions))
	seen := make(map[string]bool)
	for _, sub := range submissions {
		if !seen[sub.DehpNumber] {
			seen[sub.DehpNumber] = true
			dehpNumbers = append(dehpNumbers, sub.DehpNumber)
		}
	}

	var notifications []models.Notification
	if err := config.DB.
		Where("type = ? AND dehp_number IN ?", models.NotificationTypeDehpDuplicate, dehpNumbers).
		Find(&notifications).Error; err != nil {
		return set
	}
	for _, n := range notifications {
		set[n.DehpNumber] = true
	}
	return set
}
