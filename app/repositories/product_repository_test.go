package repositories

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aureajoias/aurea/app/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.BulkUploadSession{},
		&models.BulkUploadImage{},
	))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) models.Category {
	t.Helper()
	category := models.Category{Name: name, Slug: slug}
	require.NoError(t, NewCategoryRepository(db).Create(&category))
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, name string, categoryID *uuid.UUID, active, featured bool) models.Product {
	t.Helper()
	product := models.Product{
		Name:       name,
		CategoryID: categoryID,
		Active:     active,
		Featured:   featured,
	}
	require.NoError(t, NewProductRepository(db).Create(&product))
	return product
}

func TestListExcludesInactive(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)

	seedProduct(t, db, "Anel Ativo", nil, true, false)
	seedProduct(t, db, "Anel Inativo", nil, false, false)

	products, pagination, err := repo.List(1, 10)
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "Anel Ativo", products[0].Name)
	assert.Equal(t, int64(1), pagination.Total)
}

func TestListFeaturedExcludesInactiveAndUnfeatured(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)

	seedProduct(t, db, "Destaque", nil, true, true)
	seedProduct(t, db, "Comum", nil, true, false)
	seedProduct(t, db, "Destaque Inativo", nil, false, true)

	products, err := repo.ListFeatured()
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "Destaque", products[0].Name)
}

func TestListAllIncludesInactive(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)

	seedProduct(t, db, "Ativo", nil, true, false)
	seedProduct(t, db, "Inativo", nil, false, false)

	products, _, err := repo.ListAll(1, 10)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestDeleteRemovesImagesFirst(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)

	product := seedProduct(t, db, "Colar", nil, true, false)
	for i := 0; i < 3; i++ {
		image := models.ProductImage{ProductID: product.ID, ImageURL: "https://cdn.test/img.jpg", DisplayOrder: i}
		require.NoError(t, repo.AddImage(&image))
	}

	require.NoError(t, repo.Delete(product.ID))

	var imageCount, productCount int64
	db.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&imageCount)
	db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&productCount)
	assert.Zero(t, imageCount)
	assert.Zero(t, productCount)
}

func TestDeleteKeepsProductWhenImageDeleteFails(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)

	product := seedProduct(t, db, "Pulseira", nil, true, false)
	image := models.ProductImage{ProductID: product.ID, ImageURL: "https://cdn.test/img.jpg"}
	require.NoError(t, repo.AddImage(&image))

	// Force the image deletion to fail; the product row must survive.
	require.NoError(t, db.Migrator().DropTable(&models.ProductImage{}))

	err := repo.Delete(product.ID)
	require.Error(t, err)

	var productCount int64
	db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&productCount)
	assert.Equal(t, int64(1), productCount)
}

func TestCategoryLifecycle(t *testing.T) {
	db := testDB(t)
	products := NewProductRepository(db)

	category := seedCategory(t, db, "Anéis", "aneis")
	product := seedProduct(t, db, "Anel Solitário", &category.ID, true, false)

	listed, err := products.ListByCategorySlug("aneis")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, product.ID, listed[0].ID)

	require.NoError(t, products.Delete(product.ID))

	listed, err = products.ListByCategorySlug("aneis")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestGetByIDPreloadsOrderedImages(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)

	product := seedProduct(t, db, "Brinco", nil, true, false)
	for _, order := range []int{2, 0, 1} {
		image := models.ProductImage{ProductID: product.ID, ImageURL: "https://cdn.test/img.jpg", DisplayOrder: order}
		require.NoError(t, repo.AddImage(&image))
	}

	got, err := repo.GetByID(product.ID)
	require.NoError(t, err)

	require.Len(t, got.Images, 3)
	for i, image := range got.Images {
		assert.Equal(t, i, image.DisplayOrder)
	}
}

func TestReplaceImages(t *testing.T) {
	db := testDB(t)
	repo := NewProductRepository(db)

	product := seedProduct(t, db, "Conjunto", nil, true, false)
	old := models.ProductImage{ProductID: product.ID, ImageURL: "https://cdn.test/old.jpg"}
	require.NoError(t, repo.AddImage(&old))

	replacement := []models.ProductImage{
		{ImageURL: "https://cdn.test/new-0.jpg", DisplayOrder: 0},
		{ImageURL: "https://cdn.test/new-1.jpg", DisplayOrder: 1},
	}
	require.NoError(t, repo.ReplaceImages(product.ID, replacement))

	got, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "https://cdn.test/new-0.jpg", got.Images[0].ImageURL)
}
