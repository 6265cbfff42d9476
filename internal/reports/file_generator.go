package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ikdashboard/internal/charts"
	"ikdashboard/internal/config"
	"ikdashboard/internal/dashboard"
	"ikdashboard/internal/logger"
	"ikdashboard/internal/models"
	"ikdashboard/internal/storage"
)

// File names inside an export folder
const (
	ChartsJSONFile = "charts.json"
	StylesFile     = "styles.css"
)

// GeneratedFiles contains all files of one static export
type GeneratedFiles struct {
	HTMLContent string
	ChartFiles  []string
	JSONFiles   map[string][]byte
	AssetFiles  map[string][]byte // PNGs and CSS
	FolderPath  string
}

// exportManifest is written as charts.json next to the page
type exportManifest struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Version     string         `json:"version"`
	DataLoaded  time.Time      `json:"data_loaded_at"`
	Selection   string         `json:"selection"` // query string that reproduces the page
	Charts      []*charts.Spec `json:"charts"`
}

// FileGenerator renders a selection into the files of a static export
type FileGenerator struct {
	pages *PageBuilder
	html  *HTMLBuilder
	log   *logger.Logger
}

// NewFileGenerator creates a new file generator
func NewFileGenerator(pages *PageBuilder) *FileGenerator {
	return &FileGenerator{
		pages: pages,
		html:  pages.html,
		log:   logger.GetGlobalLogger().WithComponent("export"),
	}
}

// GenerateAllFiles renders the page, the chart images and the chart data
// for one selection
func (fg *FileGenerator) GenerateAllFiles(ds *models.Dataset, sel dashboard.Selection, specs []*charts.Spec, timestamp time.Time) (*GeneratedFiles, error) {
	files := &GeneratedFiles{
		JSONFiles:  make(map[string][]byte),
		AssetFiles: make(map[string][]byte),
		FolderPath: storage.ExportFolderPath(timestamp),
	}

	// 1. Chart images
	if err := fg.generatePNGs(specs, files); err != nil {
		return nil, err
	}

	// 2. Chart data
	manifest := exportManifest{
		GeneratedAt: timestamp.UTC(),
		Version:     config.GetVersion(),
		DataLoaded:  ds.LoadedAt.UTC(),
		Selection:   sel.Query().Encode(),
		Charts:      specs,
	}
	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ChartsJSONFile, err)
	}
	files.JSONFiles[ChartsJSONFile] = raw

	// 3. Stylesheet
	files.AssetFiles[StylesFile] = []byte(fg.html.Stylesheet())

	// 4. Page
	written := make(map[string]bool, len(files.ChartFiles))
	for _, name := range files.ChartFiles {
		written[name] = true
	}
	page, err := fg.pages.Build(ds, sel, specs, PageOptions{
		Static: true,
		ImageURL: func(spec *charts.Spec) string {
			if name := charts.PNGFileName(spec); written[name] {
				return name
			}
			return ""
		},
		Now: timestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}
	files.HTMLContent = page

	fg.log.Info("Export files generated", map[string]interface{}{
		"folder": files.FolderPath,
		"charts": len(files.ChartFiles),
		"bytes":  len(page),
	})
	return files, nil
}

// generatePNGs renders the images into a temporary directory and reads them back
func (fg *FileGenerator) generatePNGs(specs []*charts.Spec, files *GeneratedFiles) error {
	tempDir, err := os.MkdirTemp("", "ikdashboard-charts-")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	names, err := charts.NewChartGenerator(tempDir).GeneratePNGs(specs)
	if err != nil {
		return fmt.Errorf("failed to render chart images: %w", err)
	}
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(tempDir, name))
		if err != nil {
			return fmt.Errorf("failed to read chart image %s: %w", name, err)
		}
		files.AssetFiles[name] = content
		files.ChartFiles = append(files.ChartFiles, name)
	}
	return nil
}
