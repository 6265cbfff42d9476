package charts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ikdashboard/internal/logger"
)

// ChartGenerator turns chart specs into embeddable snippets and static images
type ChartGenerator struct {
	outputDir string
	log       *logger.Logger
}

// NewChartGenerator creates a chart generator writing images below outputDir
func NewChartGenerator(outputDir string) *ChartGenerator {
	return &ChartGenerator{
		outputDir: outputDir,
		log:       logger.GetGlobalLogger().WithComponent("charts"),
	}
}

// GenerateSnippets renders every spec as an ECharts snippet, in order.
// A spec that fails to encode aborts the whole page.
func (cg *ChartGenerator) GenerateSnippets(specs []*Spec) ([]ChartSnippet, error) {
	snippets := make([]ChartSnippet, 0, len(specs))
	for _, spec := range specs {
		if spec == nil {
			continue
		}
		snippet, err := Snippet(spec)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", spec.ID, err)
		}
		snippets = append(snippets, snippet)
	}
	return snippets, nil
}

// GeneratePNGs writes one PNG per spec into the output directory and returns
// the file names written. Specs without plottable data are skipped.
func (cg *ChartGenerator) GeneratePNGs(specs []*Spec) ([]string, error) {
	if err := os.MkdirAll(cg.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", cg.outputDir, err)
	}

	var files []string
	for _, spec := range specs {
		if spec == nil {
			continue
		}
		var buf bytes.Buffer
		if err := RenderPNG(spec, &buf); err != nil {
			if errors.Is(err, ErrNothingToRender) {
				cg.log.Info("Skipping chart without data", map[string]interface{}{"chart": spec.ID})
				continue
			}
			return files, err
		}

		name := PNGFileName(spec)
		if err := os.WriteFile(filepath.Join(cg.outputDir, name), buf.Bytes(), 0644); err != nil {
			return files, fmt.Errorf("failed to write chart %s: %w", name, err)
		}
		files = append(files, name)
	}
	return files, nil
}

// PNGFileName is the file name used for a spec's image.
func PNGFileName(spec *Spec) string {
	return strings.TrimPrefix(spec.ID, "chart-") + ".png"
}
