package seeders

import (
	"gorm.io/gorm"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/app/services"
	"github.com/aureajoias/aurea/config"
	"github.com/aureajoias/aurea/pkg/auth"
)

func init() {
	Register("admin", SeedAdmin)
	Register("categories", SeedCategories)
}

// SeedAdmin creates the back-office administrator account when missing.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB) error {
	email := config.Get("ADMIN_EMAIL", "admin@aureajoias.com.br")

	var count int64
	if err := db.Model(&models.Profile{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "trocar-esta-senha"))
	if err != nil {
		return err
	}

	name := "Administração Áurea"
	admin := models.Profile{
		Email:        email,
		FullName:     &name,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	return db.Create(&admin).Error
}

// SeedCategories creates the storefront's starting categories when the
// table is empty.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range []string{"Anéis", "Colares", "Brincos", "Pulseiras", "Conjuntos"} {
		category := models.Category{Name: name, Slug: services.SlugifyStrict(name)}
		if err := db.Create(&category).Error; err != nil {
			return err
		}
	}
	return nil
}
