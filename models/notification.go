package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType defines the type of notification
type NotificationType string

const (
	NotificationTypeDehpDuplicate NotificationType = "DEHP_DUPLICATE"
)

// Notification is an admin-facing alert, currently only raised when the same
// DEHP number shows up in two or more submissions. One row per
// (type, dehpNumber); a recurrence reopens a closed row.
type Notification struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type             NotificationType `gorm:"size:50;not null;uniqueIndex:idx_notifications_type_dehp" json:"type"`
	DehpNumber       string           `gorm:"not null;uniqueIndex:idx_notifications_type_dehp" json:"dehpNumber"`
	FirstTriggeredAt time.Time        `gorm:"autoCreateTime" json:"firstTriggeredAt"`
	LastSeenCount    int              `gorm:"not null" json:"lastSeenCount"`
	IsClosed         bool             `gorm:"not null;default:false;index" json:"isClosed"`
	ClosedAt         *time.Time       `json:"closedAt,omitempty"`
}
