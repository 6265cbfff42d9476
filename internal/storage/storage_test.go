package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ikdashboard/internal/config"
)

func TestExportFolderPath(t *testing.T) {
	ts := time.Date(2024, 3, 7, 9, 5, 1, 0, time.UTC)
	assert.Equal(t, "2024/03/07/IKDashboard-2024-03-07-09-05-01", ExportFolderPath(ts))
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "image/png", GetContentType("konjunktur.png"))
	assert.Equal(t, "text/html; charset=utf-8", GetContentType("index.html"))
	assert.Equal(t, "application/json", GetContentType("charts.JSON"))
	assert.Equal(t, "application/octet-stream", GetContentType("blob"))
}

func TestLocalStorageClient(t *testing.T) {
	ctx := context.Background()
	client, err := NewLocalStorageClient(filepath.Join(t.TempDir(), "exports"))
	require.NoError(t, err)
	defer client.Close()

	older := ExportFolderPath(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := ExportFolderPath(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, client.StoreFile(ctx, older, ExportIndexFile, []byte("old")))
	require.NoError(t, client.StoreFile(ctx, newer, ExportIndexFile, []byte("new")))
	require.NoError(t, client.StoreFile(ctx, newer, "konjunktur.png", []byte("png")))

	exports, err := client.ListExports(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{newer + "/index.html", older + "/index.html"}, exports)

	exports, err = client.ListExports(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, exports, 1)

	content, err := client.GetFile(ctx, newer+"/konjunktur.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(content))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	client, err := NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	_, err = client.GetFile(ctx, "../../etc/passwd")
	assert.Error(t, err)
	assert.Error(t, client.StoreFile(ctx, "..", "x.html", nil))
}

func TestNewStorageClientLocal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	client, err := NewStorageClient(context.Background(), &config.Config{ExportDir: dir})
	require.NoError(t, err)
	defer client.Close()

	_, ok := client.(*LocalStorageClient)
	assert.True(t, ok)
	assert.Equal(t, dir, client.Location())
}
