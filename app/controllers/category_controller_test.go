package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/app/repositories"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductImage{}))
	return db
}

func testCategoryRouter(db *gorm.DB) http.Handler {
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)
	controller := NewCategoryController(categories, products)

	r := chi.NewRouter()
	r.Get("/api/categories/{slug}", controller.Get)
	r.Get("/api/categories/{slug}/products", controller.Products)
	r.Post("/api/admin/categories", controller.Create)
	return r
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	db := testDB(t)
	h := testCategoryRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/categories",
		strings.NewReader(`{"name":"Anéis"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Message string          `json:"message"`
		Data    models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Categoria criada com sucesso!", body.Message)
	assert.Equal(t, "aneis", body.Data.Slug)

	// The derived slug resolves over HTTP.
	req = httptest.NewRequest(http.MethodGet, "/api/categories/aneis", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateCategoryValidation(t *testing.T) {
	db := testDB(t)
	h := testCategoryRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/categories",
		strings.NewReader(`{"description":"sem nome"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "name")
}

func TestCategoryProductsNotFound(t *testing.T) {
	db := testDB(t)
	h := testCategoryRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/api/categories/inexistente/products", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
