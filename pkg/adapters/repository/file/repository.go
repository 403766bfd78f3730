// Package file stores redirects as a single JSON document on local disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

type FileRepository struct {
	path string
	mu   sync.Mutex
}

var _ ports.RedirectRepository = (*FileRepository)(nil)

// NewFileRepository does not touch the disk; the parent directory is created
// on first write.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Get(ctx context.Context, slug string) (*domain.Redirect, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return nil, err
	}
	redirect, ok := data[slug]
	if !ok {
		return nil, nil
	}
	return &redirect, nil
}

func (r *FileRepository) GetAll(ctx context.Context) (map[string]domain.Redirect, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *FileRepository) Save(ctx context.Context, slug string, redirect domain.Redirect) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return err
	}
	data[slug] = redirect
	return r.store(data)
}

func (r *FileRepository) Delete(ctx context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return false, err
	}
	if _, ok := data[slug]; !ok {
		return false, nil
	}
	delete(data, slug)
	return true, r.store(data)
}

func (r *FileRepository) Close() error { return nil }

// load reads the whole document. A missing file is an empty store.
func (r *FileRepository) load() (map[string]domain.Redirect, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]domain.Redirect{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	data := map[string]domain.Redirect{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	if data == nil {
		data = map[string]domain.Redirect{}
	}
	return data, nil
}

// store writes through a temp file and rename so readers never see a torn document.
func (r *FileRepository) store(data map[string]domain.Redirect) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, r.path)
}
