package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/pkg/cache"
	"github.com/aureajoias/aurea/pkg/orm"
)

// cacheTTL bounds staleness of the public catalog listings.
const cacheTTL = 5 * time.Minute

// ProductRepository handles database operations for Product and its images.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns active products newest first, with category and images
// preloaded, cached per page.
func (r *ProductRepository) List(page, limit int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product

	key := fmt.Sprintf("products:list:%d:%d", page, limit)
	type cached struct {
		Products   []models.Product
		Pagination orm.Pagination
	}
	var hit cached
	if cache.Get(key, &hit) {
		return hit.Products, hit.Pagination, nil
	}

	pagination, err := orm.New(r.db).
		Model(&models.Product{}).
		Where("active = ?", true).
		Preload("Category").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order asc")
		}).
		Order("created_at desc").
		GetWithPagination(&products, page, limit)
	if err != nil {
		return nil, pagination, err
	}

	cache.Set(key, cached{Products: products, Pagination: pagination}, cacheTTL)
	return products, pagination, nil
}

// ListFeatured returns the active featured products for the home page.
func (r *ProductRepository) ListFeatured() ([]models.Product, error) {
	var products []models.Product

	err := orm.New(r.db).
		Model(&models.Product{}).
		Where("active = ? AND featured = ?", true, true).
		Preload("Category").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order asc")
		}).
		Order("created_at desc").
		Cache("products:featured", cacheTTL, &products)
	return products, err
}

// ListByCategorySlug returns active products whose category has the given slug.
func (r *ProductRepository) ListByCategorySlug(slug string) ([]models.Product, error) {
	var products []models.Product

	err := orm.New(r.db).
		Model(&models.Product{}).
		Joins("INNER JOIN categories ON categories.id = products.category_id AND categories.slug = ?", slug).
		Where("products.active = ?", true).
		Preload("Category").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order asc")
		}).
		Order("products.created_at desc").
		Cache("products:category:"+slug, cacheTTL, &products)
	return products, err
}

// ListAll returns every product regardless of active flag, for the admin panel.
// Never cached: admins must see their own writes immediately.
func (r *ProductRepository) ListAll(page, limit int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	pagination, err := orm.New(r.db).
		Model(&models.Product{}).
		Preload("Category").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order asc")
		}).
		Order("created_at desc").
		GetWithPagination(&products, page, limit)
	return products, pagination, err
}

// GetByID returns one product with its category and ordered images.
func (r *ProductRepository) GetByID(id uuid.UUID) (models.Product, error) {
	var product models.Product
	err := orm.New(r.db).
		Model(&models.Product{}).
		Where("id = ?", id).
		Preload("Category").
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order asc")
		}).
		First(&product)
	return product, err
}

// Create persists a new product and invalidates the catalog cache.
func (r *ProductRepository) Create(product *models.Product) error {
	if err := orm.New(r.db).Create(product); err != nil {
		return err
	}
	cache.ForgetPrefix("products:")
	return nil
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	if err := orm.New(r.db).Save(product); err != nil {
		return err
	}
	cache.ForgetPrefix("products:")
	return nil
}

// Delete removes a product and its images. Images are deleted first so a
// failure leaves the product row intact and retryable rather than orphaning
// image rows.
func (r *ProductRepository) Delete(id uuid.UUID) error {
	if err := orm.New(r.db).Delete(&models.ProductImage{}, "product_id = ?", id); err != nil {
		return err
	}
	if err := orm.New(r.db).Delete(&models.Product{}, "id = ?", id); err != nil {
		return err
	}
	cache.ForgetPrefix("products:")
	return nil
}

// AddImage attaches an image row to an existing product.
func (r *ProductRepository) AddImage(image *models.ProductImage) error {
	if err := orm.New(r.db).Create(image); err != nil {
		return err
	}
	cache.ForgetPrefix("products:")
	return nil
}

// ReplaceImages swaps a product's image set atomically.
func (r *ProductRepository) ReplaceImages(productID uuid.UUID, images []models.ProductImage) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductImage{}, "product_id = ?", productID).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].ProductID = productID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.ForgetPrefix("products:")
	return nil
}
