package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamSettings stores per-team data maintained by admins, keyed by the
// normalized team label.
type TeamSettings struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MtTeamNorm    string    `gorm:"uniqueIndex;not null" json:"mtTeamNorm"`
	BranchAddress string    `gorm:"not null" json:"branchAddress"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
