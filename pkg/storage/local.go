package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aureajoias/aurea/config"
)

// localDisk stores objects on the local filesystem. The server exposes the
// root directory as static files under STORAGE_URL, which is what URL()
// resolves against.
type localDisk struct {
	root    string // absolute root directory
	baseURL string // public URL prefix
}

func newLocalDisk() *localDisk {
	root := config.StorageLocalRoot()
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &localDisk{
		root:    root,
		baseURL: strings.TrimRight(config.StorageURL(), "/"),
	}
}

func (d *localDisk) abs(key string) string {
	return filepath.Join(d.root, filepath.FromSlash(key))
}

func (d *localDisk) Put(ctx context.Context, key string, content []byte) error {
	return d.PutStream(ctx, key, bytes.NewReader(content))
}

func (d *localDisk) PutStream(_ context.Context, key string, r io.Reader) error {
	full := d.abs(key)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", key, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", key, err)
	}
	return nil
}

func (d *localDisk) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(d.abs(key))
	if err != nil {
		return nil, fmt.Errorf("storage/local: get %s: %w", key, err)
	}
	return data, nil
}

func (d *localDisk) Exists(_ context.Context, key string) bool {
	_, err := os.Stat(d.abs(key))
	return err == nil
}

func (d *localDisk) Delete(_ context.Context, key string) error {
	err := os.Remove(d.abs(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", key, err)
	}
	return nil
}

func (d *localDisk) URL(key string) string {
	return d.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(key), "/")
}

func (d *localDisk) Files(_ context.Context, prefix string) ([]string, error) {
	absDir := d.abs(prefix)
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("storage/local: files %s: %w", prefix, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, filepath.ToSlash(filepath.Join(prefix, e.Name())))
		}
	}
	return out, nil
}
