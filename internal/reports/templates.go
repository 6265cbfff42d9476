package reports

import (
	"embed"
	"fmt"
)

//go:embed templates/*.html templates/*.css
var templateFS embed.FS

const (
	pageTemplate  = "page.html"
	errorTemplate = "error.html"
	stylesheet    = "styles.css"
)

// TemplateLoader reads the page templates and the stylesheet compiled into
// the binary
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

// LoadHTMLTemplate returns the named HTML template
func (t *TemplateLoader) LoadHTMLTemplate(name string) (string, error) {
	content, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}
	return string(content), nil
}

// LoadCSSStyles returns the page stylesheet
func (t *TemplateLoader) LoadCSSStyles() (string, error) {
	content, err := templateFS.ReadFile("templates/" + stylesheet)
	if err != nil {
		return "", fmt.Errorf("stylesheet: %w", err)
	}
	return string(content), nil
}
