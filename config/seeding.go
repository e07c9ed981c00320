package config

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"p9e.in/mtmaterial/models"
)

// RunAllSeeding runs all seeding operations in the correct order
func RunAllSeeding() error {
	log := GetLogger()

	log.Info("seeding material catalogue")
	if err := SeedMaterials(); err != nil {
		return err
	}

	log.Info("seeding default admin user")
	if err := SeedAdminUser(); err != nil {
		return err
	}

	return nil
}

// seedMaterials is the initial plumbing catalogue. Admins extend it later;
// existing rows are never touched.
var seedMaterials = []string{
	"Isolierschale 18",
	"Isolierschale 22",
	"Isolierschale 28",
	"Isolierschale 35",
	"Rohrschelle 18",
	"Rohrschelle 22",
	"Rohrschelle 28",
	"Rohrschelle 35",
	"Bogen 90° 18",
	"Bogen 90° 22",
	"Bogen 90° 28",
	"T-Stück 18",
	"T-Stück 22",
	"Übergang 18-22",
	"Alpex Rohr 16x2 (m)",
	"Alpex Rohr 20x2 (m)",
}

func SeedMaterials() error {
	for _, name := range seedMaterials {
		var existing models.Material
		err := DB.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := DB.Create(&models.Material{Name: name, Active: true}).Error; err != nil {
			return err
		}
	}
	return nil
}

func SeedAdminUser() error {
	var existing models.AdminUser
	err := DB.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return DB.Create(&models.AdminUser{Username: "admin", PasswordHash: string(hash)}).Error
}
