package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus type for purchase order status
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusOrdered    OrderStatus = "ORDERED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// OrderPriority type for purchase order priority
type OrderPriority string

const (
	OrderPriorityNormal OrderPriority = "NORMAL"
	OrderPriorityUrgent OrderPriority = "URGENT"
)

// OrderStatusTransitions is the full transition table. Statuses missing from
// the map (DELIVERED, CANCELLED) are terminal. Same-state transitions are not
// listed and therefore rejected.
var OrderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusNew:        {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusOrdered, OrderStatusCancelled},
	OrderStatusOrdered:    {OrderStatusDelivered, OrderStatusCancelled},
}

// TransitionError names both ends of a rejected status change.
type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("ungültiger Statusübergang: %s → %s", e.From, e.To)
}

// CheckTransition validates a requested status change against the table.
func CheckTransition(from, to OrderStatus) error {
	for _, allowed := range OrderStatusTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}

// ValidOrderStatus reports whether s is one of the five known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusOrdered, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrder is a worker-initiated material order. Order numbers are
// handed out by OrderSequence under an exclusive lock, so they are unique and
// gapless across concurrent creations.
type PurchaseOrder struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber int           `gorm:"uniqueIndex;not null" json:"orderNumber"`
	MtTeamRaw   string        `gorm:"not null" json:"mtTeamRaw"`
	MtTeamNorm  string        `gorm:"index;not null" json:"mtTeamNorm"`
	WorkerName  string        `gorm:"not null" json:"workerName"`
	Comment     *string       `json:"comment,omitempty"`
	Priority    OrderPriority `gorm:"size:20;not null;default:'NORMAL'" json:"priority"`
	Status      OrderStatus   `gorm:"size:20;not null;default:'NEW';index" json:"status"`
	Supplier    *string       `json:"supplier,omitempty"`
	StatusNote  *string       `json:"statusNote,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"orderId"`
	MaterialID uuid.UUID       `gorm:"type:uuid;index;not null" json:"materialId"`
	Material   Material        `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Qty        int             `gorm:"not null" json:"qty"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unitPrice"`
}

// Cost is qty × price-at-order-time.
func (i OrderItem) Cost() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// OrderSequence is the single-row counter behind order numbering.
type OrderSequence struct {
	ID    int `gorm:"primaryKey" json:"id"`
	Value int `gorm:"not null" json:"value"`
}
