package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is upload metadata. Rows are created unlinked and attached to a
// submission when that submission is created; rows that never get linked are
// left alone.
type Attachment struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StorageKey   string     `gorm:"not null" json:"-"`
	Filename     string     `gorm:"not null" json:"filename"`
	Mime         string     `gorm:"not null" json:"mime"`
	Size         int64      `gorm:"not null" json:"size"`
	Category     *string    `gorm:"index" json:"category,omitempty"`
	SubmissionID *uuid.UUID `gorm:"type:uuid;index" json:"submissionId,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
