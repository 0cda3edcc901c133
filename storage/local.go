package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage implements Storage on the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// UploadSource stores a source document locally under the document's directory
func (s *LocalStorage) UploadSource(ctx context.Context, documentID, filename string, data io.Reader) (string, error) {
	storagePath := sourceObjectKey(documentID, filename)
	fullPath := filepath.Join(s.basePath, storagePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(fullPath) // Clean up on error
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return storagePath, nil
}

// DownloadSource retrieves a retained source document
func (s *LocalStorage) DownloadSource(ctx context.Context, documentID, filename string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.basePath, sourceObjectKey(documentID, filename))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source not found for document %s: %s", documentID, filename)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// DeleteSources removes the document's retained sources
func (s *LocalStorage) DeleteSources(ctx context.Context, documentID string) error {
	if err := os.RemoveAll(filepath.Join(s.basePath, documentID)); err != nil {
		return fmt.Errorf("failed to delete sources: %w", err)
	}
	return nil
}
