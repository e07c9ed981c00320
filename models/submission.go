package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Submission is one material-consumption report from the field. It is
// immutable once created; items and attachment links are written in the same
// transaction as the parent row.
type Submission struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MtTeamRaw     string    `gorm:"not null" json:"mtTeamRaw"`
	MtTeamNorm    string    `gorm:"index;not null" json:"mtTeamNorm"`
	DehpNumber    string    `gorm:"index;not null" json:"dehpNumber"`
	FirstName     string    `gorm:"not null" json:"firstName"`
	LastName      string    `gorm:"not null" json:"lastName"`
	Address       *string   `json:"address,omitempty"`
	Comment       *string   `json:"comment,omitempty"`
	HasRadiator   bool      `gorm:"not null;default:false" json:"hasRadiator"`
	PhotoComplete bool      `gorm:"not null;default:false" json:"photoComplete"`

	Items       []SubmissionItem `gorm:"foreignKey:SubmissionID" json:"items,omitempty"`
	Attachments []Attachment     `gorm:"foreignKey:SubmissionID" json:"attachments,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

// SubmissionItem carries the unit price captured at submission time. Later
// material price edits never touch it.
type SubmissionItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubmissionID uuid.UUID       `gorm:"type:uuid;index;not null" json:"submissionId"`
	MaterialID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"materialId"`
	Material     Material        `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Qty          int             `gorm:"not null" json:"qty"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unitPrice"`
}

// Cost is qty × price-at-submission-time.
func (i SubmissionItem) Cost() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}
