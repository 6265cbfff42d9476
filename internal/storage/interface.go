package storage

import (
	"context"
)

// StorageClient stores rendered dashboard exports
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file below the given export folder
	StoreFile(ctx context.Context, folder, filename string, fileData []byte) error

	// GetFile retrieves a file by its path relative to the storage root
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListExports lists export index pages, newest first
	ListExports(ctx context.Context, limit int) ([]string, error)

	// Location describes where files end up, for log output
	Location() string
}
