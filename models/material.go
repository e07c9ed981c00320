package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is one entry of the order/consumption catalogue. Deactivating a
// material hides it from the worker form; historical line items keep pointing
// at it.
type Material struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string          `gorm:"uniqueIndex;not null" json:"name"`
	Active        bool            `gorm:"not null;default:true" json:"active"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unitPrice"`
	ArticleNumber *string         `json:"articleNumber,omitempty"`
	ImageKey      *string         `json:"imageKey,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
