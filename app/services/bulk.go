package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/app/repositories"
	"github.com/aureajoias/aurea/pkg/cache"
	"github.com/aureajoias/aurea/pkg/metrics"
	"github.com/aureajoias/aurea/pkg/storage"
	"github.com/aureajoias/aurea/pkg/workerpool"
	"github.com/aureajoias/aurea/pkg/ws"
)

// descriptionTemplate fills new products created from a bare image upload.
const descriptionTemplate = "Bela peça da categoria %s. Entre em contato para mais informações."

var (
	// ErrNoCategory is returned when the bulk request names no category.
	ErrNoCategory = errors.New("selecione uma categoria")
	// ErrNoFiles is returned when the bulk request carries no images.
	ErrNoFiles = errors.New("selecione pelo menos uma imagem")
	// ErrCategoryNotFound is returned when the named category does not exist.
	ErrCategoryNotFound = errors.New("categoria não encontrada")
)

// BulkFile is one uploaded image: original file name plus content.
type BulkFile struct {
	Name string
	Data []byte
}

// BulkResult reports one finished batch.
type BulkResult struct {
	Created  int
	Message  string
	Failures []string
}

// BulkCreator turns a batch of images into one product per image, all in the
// chosen category. Units run concurrently on the worker pool; completed
// units are never rolled back when a later one fails.
type BulkCreator struct {
	db   *gorm.DB
	disk storage.Disk
	pool *workerpool.Pool
	hub  *ws.Hub // nil disables progress broadcasting
	log  *slog.Logger
}

func NewBulkCreator(db *gorm.DB, disk storage.Disk, pool *workerpool.Pool, hub *ws.Hub, log *slog.Logger) *BulkCreator {
	return &BulkCreator{db: db, disk: disk, pool: pool, hub: hub, log: log}
}

// Create runs one bulk batch. Preconditions are checked before any upload:
// a category must be chosen and exist, and at least one file must be given;
// a violation aborts with zero side effects.
func (b *BulkCreator) Create(ctx context.Context, categoryID uuid.UUID, files []BulkFile, createdBy *uuid.UUID) (BulkResult, error) {
	start := time.Now()

	if categoryID == uuid.Nil {
		return BulkResult{}, ErrNoCategory
	}
	if len(files) == 0 {
		return BulkResult{}, ErrNoFiles
	}

	categories := repositories.NewCategoryRepository(b.db)
	category, err := categories.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BulkResult{}, ErrCategoryNotFound
		}
		return BulkResult{}, err
	}

	session := models.BulkUploadSession{
		CategoryID: categoryID,
		CreatedBy:  createdBy,
		Total:      len(files),
	}
	if err := b.db.Create(&session).Error; err != nil {
		return BulkResult{}, err
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs = make([]error, len(files))
		done int
	)

	products := repositories.NewProductRepository(b.db)

	for i, file := range files {
		i, file := i, file
		wg.Add(1)

		task := func() {
			defer wg.Done()

			productID, unitErr := b.createOne(ctx, products, category, file, createdBy)

			mu.Lock()
			errs[i] = unitErr
			done++
			progress := done
			mu.Unlock()

			b.recordFile(session.ID, file.Name, productID, unitErr)
			b.broadcast(file.Name, productID, unitErr, progress, len(files))
		}

		// SubmitWait blocks when the pool is saturated, so every unit runs.
		if err := b.pool.SubmitWait(task); err != nil {
			errs[i] = err
			wg.Done()
		}
	}
	wg.Wait()

	created := 0
	var failures []string
	for i, unitErr := range errs {
		if unitErr == nil {
			created++
		} else {
			failures = append(failures, files[i].Name)
		}
	}

	b.finishSession(session.ID, created, len(files)-created)
	cache.ForgetPrefix("products:")

	if b.hub != nil {
		b.hub.BroadcastJSON(ws.ProgressEvent{Kind: "batch_done", Done: created, Total: len(files)})
	}

	if err := errors.Join(errs...); err != nil {
		status := "failed"
		if created > 0 {
			status = "partial"
		}
		metrics.RecordBulkUpload(status, created, start)
		return BulkResult{Created: created, Failures: failures}, err
	}

	metrics.RecordBulkUpload("success", created, start)
	message := fmt.Sprintf("%d produtos criados com sucesso na categoria %q", created, category.Name)
	return BulkResult{Created: created, Message: message}, nil
}

// createOne uploads one image and creates its product + image rows.
func (b *BulkCreator) createOne(ctx context.Context, products *repositories.ProductRepository, category models.Category, file BulkFile, createdBy *uuid.UUID) (uuid.UUID, error) {
	key := objectKey(file.Name)

	if err := b.disk.Put(ctx, key, file.Data); err != nil {
		return uuid.Nil, fmt.Errorf("upload %s: %w", file.Name, err)
	}

	description := fmt.Sprintf(descriptionTemplate, category.Name)
	product := models.Product{
		Name:        category.Name,
		Description: &description,
		CategoryID:  &category.ID,
		Active:      true,
		Featured:    false,
		CreatedBy:   createdBy,
	}
	if err := products.Create(&product); err != nil {
		return uuid.Nil, fmt.Errorf("create product for %s: %w", file.Name, err)
	}

	image := models.ProductImage{
		ProductID:    product.ID,
		ImageURL:     b.disk.URL(key),
		DisplayOrder: 0,
	}
	if err := products.AddImage(&image); err != nil {
		return product.ID, fmt.Errorf("create image for %s: %w", file.Name, err)
	}

	return product.ID, nil
}

func (b *BulkCreator) recordFile(sessionID uuid.UUID, fileName string, productID uuid.UUID, unitErr error) {
	row := models.BulkUploadImage{
		SessionID: sessionID,
		FileName:  fileName,
	}
	if productID != uuid.Nil {
		id := productID
		row.ProductID = &id
	}
	if unitErr != nil {
		msg := unitErr.Error()
		row.Error = &msg
	}
	if err := b.db.Create(&row).Error; err != nil {
		b.log.Error("bulk: record file", "error", err, "file", fileName)
	}
}

func (b *BulkCreator) finishSession(sessionID uuid.UUID, succeeded, failed int) {
	err := b.db.Model(&models.BulkUploadSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{"succeeded": succeeded, "failed": failed}).Error
	if err != nil {
		b.log.Error("bulk: finish session", "error", err, "session_id", sessionID)
	}
}

func (b *BulkCreator) broadcast(fileName string, productID uuid.UUID, unitErr error, done, total int) {
	if b.hub == nil {
		return
	}

	ev := ws.ProgressEvent{FileName: fileName, Done: done, Total: total}
	if unitErr != nil {
		ev.Kind = "file_failed"
		ev.Error = unitErr.Error()
	} else {
		ev.Kind = "file_done"
		ev.ProductID = productID.String()
	}
	b.hub.BroadcastJSON(ev)
}

// objectKey builds the storage key for an uploaded image: upload timestamp
// plus a random base36 suffix, keeping the original extension.
func objectKey(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	suffix := strconv.FormatInt(rand.Int63(), 36)
	if len(suffix) > 9 {
		suffix = suffix[:9]
	}
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), suffix, ext)
}
