package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/app/repositories"
	"github.com/aureajoias/aurea/pkg/workerpool"
)

// fakeDisk stores objects in memory and can fail specific file uploads.
type fakeDisk struct {
	mu      sync.Mutex
	objects map[string][]byte
	failExt string
}

func newFakeDisk() *fakeDisk {
	return &fakeDisk{objects: map[string][]byte{}}
}

func (d *fakeDisk) Put(_ context.Context, key string, content []byte) error {
	if d.failExt != "" && strings.HasSuffix(key, d.failExt) {
		return errors.New("disk full")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.objects[key] = content
	return nil
}

func (d *fakeDisk) PutStream(ctx context.Context, key string, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(ctx, key, content)
}

func (d *fakeDisk) Get(_ context.Context, key string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	content, ok := d.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return content, nil
}

func (d *fakeDisk) Exists(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.objects[key]
	return ok
}

func (d *fakeDisk) Delete(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.objects, key)
	return nil
}

func (d *fakeDisk) URL(key string) string { return "https://cdn.test/" + key }

func (d *fakeDisk) Files(_ context.Context, _ string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	keys := make([]string, 0, len(d.objects))
	for k := range d.objects {
		keys = append(keys, k)
	}
	return keys, nil
}

func newBulkCreator(t *testing.T, db *gorm.DB, disk *fakeDisk) *BulkCreator {
	t.Helper()
	pool := workerpool.New(4)
	t.Cleanup(pool.Shutdown)
	return NewBulkCreator(db, disk, pool, nil, slog.Default())
}

func bulkFiles(names ...string) []BulkFile {
	files := make([]BulkFile, len(names))
	for i, name := range names {
		files[i] = BulkFile{Name: name, Data: []byte("imagem")}
	}
	return files
}

func TestBulkCreatesOneProductPerImage(t *testing.T) {
	db := testDB(t)
	disk := newFakeDisk()
	creator := newBulkCreator(t, db, disk)

	category := models.Category{Name: "Anéis", Slug: "aneis"}
	require.NoError(t, repositories.NewCategoryRepository(db).Create(&category))

	result, err := creator.Create(context.Background(), category.ID, bulkFiles("a.jpg", "b.jpg", "c.png"), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Created)
	assert.Contains(t, result.Message, "3 produtos criados com sucesso")
	assert.Contains(t, result.Message, "Anéis")

	var products []models.Product
	require.NoError(t, db.Preload("Images").Find(&products).Error)
	require.Len(t, products, 3)
	for _, product := range products {
		assert.Equal(t, "Anéis", product.Name)
		assert.True(t, product.Active)
		assert.False(t, product.Featured)
		assert.Nil(t, product.Price)
		require.Len(t, product.Images, 1)
		assert.Zero(t, product.Images[0].DisplayOrder)
		assert.True(t, strings.HasPrefix(product.Images[0].ImageURL, "https://cdn.test/"))
	}

	assert.Len(t, disk.objects, 3)
}

func TestBulkPartialFailureKeepsCompletedUnits(t *testing.T) {
	db := testDB(t)
	disk := newFakeDisk()
	disk.failExt = ".png"
	creator := newBulkCreator(t, db, disk)

	category := models.Category{Name: "Colares", Slug: "colares"}
	require.NoError(t, repositories.NewCategoryRepository(db).Create(&category))

	result, err := creator.Create(context.Background(), category.ID, bulkFiles("a.jpg", "b.jpg", "c.png"), nil)
	require.Error(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, []string{"c.png"}, result.Failures)

	var productCount, imageCount int64
	db.Model(&models.Product{}).Count(&productCount)
	db.Model(&models.ProductImage{}).Count(&imageCount)
	assert.Equal(t, int64(2), productCount)
	assert.Equal(t, int64(2), imageCount)
}

func TestBulkPreconditions(t *testing.T) {
	db := testDB(t)
	creator := newBulkCreator(t, db, newFakeDisk())

	_, err := creator.Create(context.Background(), uuid.Nil, bulkFiles("a.jpg"), nil)
	assert.ErrorIs(t, err, ErrNoCategory)

	category := models.Category{Name: "Pulseiras", Slug: "pulseiras"}
	require.NoError(t, repositories.NewCategoryRepository(db).Create(&category))

	_, err = creator.Create(context.Background(), category.ID, nil, nil)
	assert.ErrorIs(t, err, ErrNoFiles)

	_, err = creator.Create(context.Background(), uuid.New(), bulkFiles("a.jpg"), nil)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	assert.Zero(t, productCount)
}

func TestBulkRecordsSession(t *testing.T) {
	db := testDB(t)
	disk := newFakeDisk()
	disk.failExt = ".png"
	creator := newBulkCreator(t, db, disk)

	category := models.Category{Name: "Brincos", Slug: "brincos"}
	require.NoError(t, repositories.NewCategoryRepository(db).Create(&category))

	_, err := creator.Create(context.Background(), category.ID, bulkFiles("a.jpg", "b.png"), nil)
	require.Error(t, err)

	var session models.BulkUploadSession
	require.NoError(t, db.First(&session).Error)
	assert.Equal(t, 2, session.Total)
	assert.Equal(t, 1, session.Succeeded)
	assert.Equal(t, 1, session.Failed)

	var rows []models.BulkUploadImage
	require.NoError(t, db.Find(&rows).Error)
	assert.Len(t, rows, 2)
}
