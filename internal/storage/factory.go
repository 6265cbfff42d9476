package storage

import (
	"context"
	"fmt"

	"ikdashboard/internal/config"
)

// NewStorageClient creates the export storage for the configuration: the
// GCS bucket when one is configured, the local export directory otherwise.
func NewStorageClient(ctx context.Context, cfg *config.Config) (StorageClient, error) {
	if cfg.GCSBucket != "" {
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil
	}

	exportDir := cfg.ExportDir
	if exportDir == "" {
		exportDir = "exports" // Default fallback
	}
	localClient, err := NewLocalStorageClient(exportDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
	}
	return localClient, nil
}
