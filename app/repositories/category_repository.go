package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/pkg/cache"
	"github.com/aureajoias/aurea/pkg/orm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// All returns every category ordered by name, cached.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := orm.New(r.db).
		Model(&models.Category{}).
		Order("name asc").
		Cache("categories:all", cacheTTL, &categories)
	return categories, err
}

// GetByID looks up a category by primary key.
func (r *CategoryRepository) GetByID(id uuid.UUID) (models.Category, error) {
	var category models.Category
	err := orm.New(r.db).
		Model(&models.Category{}).
		Where("id = ?", id).
		First(&category)
	return category, err
}

// GetBySlug looks up a category by its URL slug.
func (r *CategoryRepository) GetBySlug(slug string) (models.Category, error) {
	var category models.Category
	err := orm.New(r.db).
		Model(&models.Category{}).
		Where("slug = ?", slug).
		First(&category)
	return category, err
}

// Create persists a new category.
func (r *CategoryRepository) Create(category *models.Category) error {
	if err := orm.New(r.db).Create(category); err != nil {
		return err
	}
	cache.Forget("categories:all")
	return nil
}

// Update persists changes to an existing category.
func (r *CategoryRepository) Update(category *models.Category) error {
	if err := orm.New(r.db).Save(category); err != nil {
		return err
	}
	cache.Forget("categories:all")
	// Products embed their category, so listings go stale too.
	cache.ForgetPrefix("products:")
	return nil
}

// Delete removes a category. Products keep their category_id pointing at a
// missing row until edited; the storefront treats them as uncategorised.
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	if err := orm.New(r.db).Delete(&models.Category{}, "id = ?", id); err != nil {
		return err
	}
	cache.Forget("categories:all")
	cache.ForgetPrefix("products:")
	return nil
}
