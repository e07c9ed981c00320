package handlers

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"p9e.in/mtmaterial/config"
	"p9e.in/mtmaterial/models"
)

// CheckDuplicateSubmission counts submissions sharing the DEHP number and
// upserts the duplicate notification once a second one exists. A recurrence
// reopens a closed notification. Runs after the submission committed; errors
// are logged only — they must never affect the committed submission.
func CheckDuplicateSubmission(dehpNumber string) {
	if err := upsertDuplicateNotification(config.DB, dehpNumber); err != nil {
		config.LogError(config.GetLogger(), "handlers", "CheckDuplicateSubmission",
			"duplicate notification upsert", map[string]string{"dehpNumber": dehpNumber}, err)
	}
}

func upsertDuplicateNotification(db *gorm.DB, dehpNumber string) error {
	var count int64
	if err := db.Model(&models.Submission{}).
		Where("dehp_number = ?", dehpNumber).
		Count(&count).Error; err != nil {
		return err
	}
	if count < 2 {
		return nil
	}

	var notification models.Notification
	err := db.Where("type = ? AND dehp_number = ?", models.NotificationTypeDehpDuplicate, dehpNumber).
		First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&models.Notification{
			Type:          models.NotificationTypeDehpDuplicate,
			DehpNumber:    dehpNumber,
			LastSeenCount: int(count),
		}).Error
	}
	if err != nil {
		return err
	}

	// Reopen even if an admin closed it; the condition recurred.
	return db.Model(&notification).Updates(map[string]interface{}{
		"last_seen_count": int(count),
		"is_closed":       false,
		"closed_at":       nil,
	}).Error
}

// SetNotificationClosed flips the closed flag; reopening by hand is allowed too.
func SetNotificationClosed(db *gorm.DB, notification *models.Notification, closed bool) error {
	updates := map[string]interface{}{
		"is_closed": closed,
		"closed_at": nil,
	}
	if closed {
		now := time.Now()
		updates["closed_at"] = now
	}
	return db.Model(notification).Updates(updates).Error
}
