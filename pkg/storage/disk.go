// Package storage abstracts where product images live.
//
// Two drivers ship out of the box:
//   - "local" — local filesystem, served under STORAGE_URL (default)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Usage:
//
//	storage.Connect()
//	disk := storage.Use("s3")
//	disk.Put(ctx, "1719938_ab12cd.jpg", data)
//	url := disk.URL("1719938_ab12cd.jpg")
package storage

import (
	"context"
	"io"
)

// Disk is the driver interface. The bulk upload workflow needs exactly this
// surface: write bytes under a key, resolve a public URL, and clean up.
type Disk interface {
	// Put writes content under key, creating parent directories as needed.
	Put(ctx context.Context, key string, content []byte) error

	// PutStream writes from r under key.
	PutStream(ctx context.Context, key string, r io.Reader) error

	// Get returns the full content stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether an object exists under key.
	Exists(ctx context.Context, key string) bool

	// Delete removes the object under key. Absent keys are not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the publicly fetchable URL for key.
	URL(key string) string

	// Files lists the keys directly under prefix (non-recursive).
	Files(ctx context.Context, prefix string) ([]string, error)
}
