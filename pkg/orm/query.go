// Package orm is a thin fluent wrapper over GORM used by the repositories.
// It adds a read-through cache on top of list queries and simple offset
// pagination; everything else delegates to *gorm.DB.
package orm

import (
	"time"

	"github.com/aureajoias/aurea/pkg/cache"
	"github.com/aureajoias/aurea/pkg/database"
	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

// DB starts a query on the process-wide connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// New starts a query on an explicitly provided connection. Repositories use
// this so tests can hand them an isolated in-memory database.
func New(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Preload(relation string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(relation, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

// Get loads all matching rows into dest.
func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

// First loads the first matching row into dest.
// Returns gorm.ErrRecordNotFound when there is none.
func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count(n *int64) error {
	return q.db.Count(n).Error
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

// Updates applies a partial update (non-zero fields of v, or a map).
func (q *Query) Updates(v interface{}) error {
	return q.db.Updates(v).Error
}

func (q *Query) Delete(v interface{}, conds ...interface{}) error {
	return q.db.Delete(v, conds...).Error
}

// Cache runs the query read-through: on a hit dest is filled from Redis, on
// a miss the database is queried and the result stored under key for ttl.
// A down cache degrades to a plain database read.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	_ = cache.Set(key, dest, ttl)
	return nil
}

// ─── Pagination ──────────────────────────────────────────────────────────────

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetWithPagination loads page/limit rows into dest and returns the
// pagination envelope. page and limit are clamped to sane minimums.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := q.db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}
