package storage

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// ExportIndexFile is the page written into every export folder
const ExportIndexFile = "index.html"

// ExportFolderPath generates a consistent folder path for an export
// Format: YYYY/MM/DD/IKDashboard-YYYY-MM-DD-HH-MM-SS
func ExportFolderPath(timestamp time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d/IKDashboard-%04d-%02d-%02d-%02d-%02d-%02d",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css"
	case ".csv":
		return "text/csv"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// newestFirst sorts export paths in reverse order and applies limit. Folder
// names embed the timestamp, so lexical order is chronological.
func newestFirst(paths []string, limit int) []string {
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths
}
