// Package report scores the whole customer base and archives the resulting
// score report to blob storage.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for archived score reports.
type StorageClient interface {
	PutReport(ctx context.Context, reportID string, data []byte) error
	GetReport(ctx context.Context, reportID string) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(reportID string) string {
	return filepath.Join(s.BaseDir, "reports", reportID+".json")
}

// PutReport stores a report blob.
func (s *LocalStorage) PutReport(ctx context.Context, reportID string, data []byte) error {
	path := s.path(reportID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GetReport retrieves a report blob.
func (s *LocalStorage) GetReport(ctx context.Context, reportID string) ([]byte, error) {
	return os.ReadFile(s.path(reportID))
}
