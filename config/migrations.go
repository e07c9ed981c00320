package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/mtmaterial/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250804_create_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.AdminUser{}, &models.Material{},
					&models.Submission{}, &models.SubmissionItem{}, &models.Attachment{},
					&models.PurchaseOrder{}, &models.OrderItem{}, &models.Notification{})
			},
		},
		{
			ID: "20250804_create_order_sequence",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&models.OrderSequence{}); err != nil {
					return err
				}
				// Single counter row; order creation locks it FOR UPDATE.
				return tx.Exec("INSERT INTO order_sequences (id, value) VALUES (1, 0) ON CONFLICT (id) DO NOTHING").Error
			},
		},
		{
			ID: "20250812_add_team_settings",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.TeamSettings{})
			},
		},
		{
			ID: "20250819_add_submission_address_radiator",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec("ALTER TABLE submissions ADD COLUMN IF NOT EXISTS address text").Error; err != nil {
					return err
				}
				if err := tx.Exec("ALTER TABLE submissions ADD COLUMN IF NOT EXISTS has_radiator boolean NOT NULL DEFAULT false").Error; err != nil {
					return err
				}
				return tx.Exec("ALTER TABLE submissions ADD COLUMN IF NOT EXISTS photo_complete boolean NOT NULL DEFAULT false").Error
			},
		},
	})

	return m.Migrate()
}
