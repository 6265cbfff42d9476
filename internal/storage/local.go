package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorageClient handles local file system storage operations
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a new local storage client
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	// Ensure base directory exists
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalStorageClient{
		baseDir: baseDir,
	}, nil
}

// Close is a no-op for local storage (implements same interface as GCSClient)
func (l *LocalStorageClient) Close() error {
	return nil
}

// Location returns the base directory
func (l *LocalStorageClient) Location() string {
	return l.baseDir
}

// StoreFile writes a file into the export folder below the base directory
func (l *LocalStorageClient) StoreFile(ctx context.Context, folder, filename string, fileData []byte) error {
	filePath, err := l.resolve(filepath.Join(folder, filename))
	if err != nil {
		return err
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(filePath, fileData, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}
	return nil
}

// GetFile reads a file relative to the base directory
func (l *LocalStorageClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	full, err := l.resolve(filePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full) //nolint:gosec // resolved below baseDir
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// ListExports lists export index pages relative to the base directory, newest first
func (l *LocalStorageClient) ListExports(ctx context.Context, limit int) ([]string, error) {
	var exportPaths []string

	err := filepath.Walk(l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors and continue
		}
		if !info.IsDir() && info.Name() == ExportIndexFile {
			relPath, _ := filepath.Rel(l.baseDir, path)
			exportPaths = append(exportPaths, filepath.ToSlash(relPath))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk export directory: %w", err)
	}

	return newestFirst(exportPaths, limit), nil
}

// resolve joins rel onto the base directory and rejects paths escaping it
func (l *LocalStorageClient) resolve(rel string) (string, error) {
	full := filepath.Join(l.baseDir, rel)
	back, err := filepath.Rel(l.baseDir, full)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid file path %q", rel)
	}
	return full, nil
}
