package reports

import (
	"context"
	"fmt"
	"sort"

	"ikdashboard/internal/logger"
	"ikdashboard/internal/storage"
)

// StorageOrchestrator writes generated exports to a storage backend
type StorageOrchestrator struct {
	storage storage.StorageClient
	log     *logger.Logger
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(client storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{
		storage: client,
		log:     logger.GetGlobalLogger().WithComponent("export"),
	}
}

// StoreAllFiles uploads every generated file below files.FolderPath and
// returns the path of the index page. The page goes last so a listed export
// is always complete.
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles) (string, error) {
	for _, group := range []map[string][]byte{files.AssetFiles, files.JSONFiles} {
		for _, name := range sortedNames(group) {
			if err := so.storage.StoreFile(ctx, files.FolderPath, name, group[name]); err != nil {
				return "", fmt.Errorf("failed to store %s: %w", name, err)
			}
		}
	}

	if err := so.storage.StoreFile(ctx, files.FolderPath, storage.ExportIndexFile, []byte(files.HTMLContent)); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", storage.ExportIndexFile, err)
	}

	indexPath := files.FolderPath + "/" + storage.ExportIndexFile
	so.log.Info("Export stored", map[string]interface{}{
		"location": so.storage.Location(),
		"index":    indexPath,
		"files":    len(files.AssetFiles) + len(files.JSONFiles) + 1,
	})
	return indexPath, nil
}

func sortedNames(files map[string][]byte) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
