package migrations

import (
	"gorm.io/gorm"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/pkg/migration"
)

func init() {
	migration.Register("20260115000000_create_profiles_table", &CreateProfilesTable{})
	migration.Register("20260115000001_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20260115000002_create_products_table", &CreateProductsTable{})
	migration.Register("20260115000003_create_product_images_table", &CreateProductImagesTable{})
	migration.Register("20260115000004_create_bulk_upload_tables", &CreateBulkUploadTables{})
}

// -------- 0001: profiles --------

type CreateProfilesTable struct{}

func (m *CreateProfilesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Profile{})
}

func (m *CreateProfilesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("profiles")
}

// -------- 0002: categories --------

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

// -------- 0003: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0004: product_images --------

type CreateProductImagesTable struct{}

func (m *CreateProductImagesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.ProductImage{})
}

func (m *CreateProductImagesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_images")
}

// -------- 0005: bulk upload audit --------

type CreateBulkUploadTables struct{}

func (m *CreateBulkUploadTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.BulkUploadSession{}, &models.BulkUploadImage{})
}

func (m *CreateBulkUploadTables) Down(db *gorm.DB) error {
	if err := db.Migrator().DropTable("bulk_upload_images"); err != nil {
		return err
	}
	return db.Migrator().DropTable("bulk_upload_sessions")
}
