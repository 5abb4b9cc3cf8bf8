package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/pkg/orm"
)

// ProfileRepository handles database operations for Profile.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByID looks up a profile by primary key.
func (r *ProfileRepository) FindByID(id uuid.UUID) (models.Profile, error) {
	var profile models.Profile
	err := orm.New(r.db).
		Model(&models.Profile{}).
		Where("id = ?", id).
		First(&profile)
	return profile, err
}

// FindByEmail looks up a profile by email address.
func (r *ProfileRepository) FindByEmail(email string) (models.Profile, error) {
	var profile models.Profile
	err := orm.New(r.db).
		Model(&models.Profile{}).
		Where("email = ?", email).
		First(&profile)
	return profile, err
}

// Create persists a new profile record.
func (r *ProfileRepository) Create(profile *models.Profile) error {
	return orm.New(r.db).Create(profile)
}

// Update persists changes to an existing profile.
func (r *ProfileRepository) Update(profile *models.Profile) error {
	return orm.New(r.db).Save(profile)
}
