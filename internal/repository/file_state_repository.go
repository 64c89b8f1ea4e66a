package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/noah-isme/classroom-tracker/pkg/config"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
	"github.com/noah-isme/classroom-tracker/pkg/storage"
)

// FileStateRepository keeps one JSON document per key in a directory.
type FileStateRepository struct {
	files *storage.LocalStorage
}

// NewFileStateRepository opens (and creates if needed) the state directory.
func NewFileStateRepository(dir string) (*FileStateRepository, error) {
	files, err := storage.NewLocalStorage(dir)
	if err != nil {
		return nil, err
	}
	return &FileStateRepository{files: files}, nil
}

// Driver names the backend for metrics and logs.
func (r *FileStateRepository) Driver() string {
	return config.StoreDriverFile
}

// Get reads and unmarshals the document stored under key into dest.
func (r *FileStateRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := r.files.Read(filename(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return appErrors.ErrKeyNotFound
		}
		return fmt.Errorf("read state %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal state %s: %w", key, err)
	}
	return nil
}

// Set marshals value and replaces the document stored under key.
func (r *FileStateRepository) Set(ctx context.Context, key string, value interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state %s: %w", key, err)
	}
	if _, err := r.files.Save(filename(key), payload); err != nil {
		return fmt.Errorf("write state %s: %w", key, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (r *FileStateRepository) Close() error {
	return nil
}

func filename(key string) string {
	return key + ".json"
}
