package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"p9e.in/mtmaterial/config"
	"p9e.in/mtmaterial/models"
)

type orderItemReq struct {
	MaterialID uuid.UUID `json:"materialId" validate:"required"`
	Qty        int       `json:"qty" validate:"min=0"`
}

type createOrderReq struct {
	MtTeam     string               `json:"mtTeam" validate:"required"`
	WorkerName string               `json:"workerName" validate:"required"`
	Priority   models.OrderPriority `json:"priority" validate:"required,oneof=NORMAL URGENT"`
	Comment    *string              `json:"comment"`
	Items      []orderItemReq       `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder creates a purchase order in state NEW. The order number comes
// from the sequence row locked FOR UPDATE inside the same transaction, so
// concurrent creations get distinct, contiguous numbers. A failed call must
// not be blindly retried by clients; a successful one consumed a number.
func CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.MtTeam = strings.TrimSpace(req.MtTeam)
	req.WorkerName = strings.TrimSpace(req.WorkerName)
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, flattenValidationErrors(err))
		return
	}

	items := make([]orderItemReq, 0, len(req.Items))
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

	order := models.PurchaseOrder{
		MtTeamRaw:  req.MtTeam,
		MtTeamNorm: models.NormalizeTeam(req.MtTeam),
		WorkerName: req.WorkerName,
		Comment:    req.Comment,
		Priority:   req.Priority,
		Status:     models.OrderStatusNew,
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			MaterialID: item.MaterialID,
			Qty:        item.Qty,
			UnitPrice:  prices.SnapshotPrice(item.MaterialID),
		})
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var seq models.OrderSequence
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", 1).
			First(&seq).Error; err != nil {
			return err
		}
		seq.Value++
		if err := tx.Save(&seq).Error; err != nil {
			return err
		}
		order.OrderNumber = seq.Value
		return tx.Create(&order).Error
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":          order.ID.String(),
		"orderNumber": order.OrderNumber,
	})
}

type orderRow struct {
	models.PurchaseOrder
	BranchAddress string `json:"branchAddress"`
}

// ListOrders returns the filtered, paginated order list with each team's
// branch address attached. ?countOnly=true&status=NEW feeds the admin badge.
func ListOrders(w http.ResponseWriter, r *http.Request) {
	params := models.ParseListParams(r)

	if r.URL.Query().Get("countOnly") == "true" {
		status := params.Status
		if status == "" {
			status = string(models.OrderStatusNew)
		}
		var count int64
		if err := config.DB.Model(&models.PurchaseOrder{}).
			Where("status = ?", status).
			Count(&count).Error; err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"count": count})
		return
	}

	base := params.ApplyOrderFilters(config.DB.Model(&models.PurchaseOrder{}))
	var total int64
	if err := base.Count(&total).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var orders []models.PurchaseOrder
	err := params.ApplyOrderFilters(config.DB).
		Preload("Items.Material").
		Order("created_at desc").
		Offset(params.Offset()).
		Limit(models.ItemsPerPage).
		Find(&orders).Error
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	branches := branchAddressMap(orders)
	rows := make([]orderRow, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, orderRow{PurchaseOrder: order, BranchAddress: branches[order.MtTeamNorm]})
	}

	writeJSON(w, http.StatusOK, newPagedResponse(rows, total, params.Page))
}

// GetOrder returns one order with its line items and branch address.
func GetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var order models.PurchaseOrder
	err := config.DB.Preload("Items.Material").Where("id = ?", id).First(&order).Error
	if err != nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	var settings models.TeamSettings
	branch := ""
	if err := config.DB.Where("mt_team_norm = ?", order.MtTeamNorm).First(&settings).Error; err == nil {
		branch = settings.BranchAddress
	}

	writeJSON(w, http.StatusOK, orderRow{PurchaseOrder: order, BranchAddress: branch})
}

type updateOrderStatusReq struct {
	Status     models.OrderStatus `json:"status" validate:"required"`
	Supplier   *string            `json:"supplier"`
	StatusNote *string            `json:"statusNote"`
}

// UpdateOrderStatus applies a status transition. Supplier and status note are
// merged: provided values replace, absent values keep the stored ones.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var order models.PurchaseOrder
	if err := config.DB.Where("id = ?", id).First(&order).Error; err != nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	var req updateOrderStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		writeValidationError(w, map[string][]string{"status": {"status hat einen ungültigen Wert"}})
		return
	}

	if err := models.CheckTransition(order.Status, req.Status); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":           err.Error(),
			"currentStatus":   order.Status,
			"requestedStatus": req.Status,
		})
		return
	}

	order.Status = req.Status
	if req.Supplier != nil {
		order.Supplier = req.Supplier
	}
	if req.StatusNote != nil {
		order.StatusNote = req.StatusNote
	}

	if err := config.DB.Save(&order).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	config.DB.Preload("Items.Material").Where("id = ?", order.ID).First(&order)
	writeJSON(w, http.StatusOK, order)
}

// branchAddressMap looks up team settings for every team in the result page.
func branchAddressMap(orders []models.PurchaseOrder) map[string]string {
	branches := make(map[string]string)
	if len(orders) == 0 {
		return branches
	}

	teams := make([]string, 0, len(orders))
	seen := make(map[string]bool)
	for _, order := range orders {
		if !seen[order.MtTeamNorm] {
			seen[order.MtTeamNorm] = true
			teams = append(teams, order.MtTeamNorm)
		}
	}

	var settings []models.TeamSettings
	if err := config.DB.Where("mt_team_norm IN ?", teams).Find(&settings).Error; err != nil {
		return branches
	}
	for _, s := range settings {
		branches[s.MtTeamNorm] = s.BranchAddress
	}
	return branches
}
