package reports

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// EChartsURL is the script the page loads to draw interactive charts.
const EChartsURL = "https://cdn.jsdelivr.net/npm/echarts@5.5.1/dist/echarts.min.js"

// HTMLBuilder handles HTML generation with goldmark and html/template
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	goldmark       goldmark.Markdown
	page           *template.Template
	errorPage      *template.Template
	css            string
}

// NewHTMLBuilder parses the embedded templates. It fails only when a
// template is broken, which makes it a startup error.
func NewHTMLBuilder() (*HTMLBuilder, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(), // info texts carry inline HTML
		),
	)

	h := &HTMLBuilder{
		templateLoader: NewTemplateLoader(),
		goldmark:       md,
	}

	var err error
	if h.page, err = h.parse(pageTemplate); err != nil {
		return nil, err
	}
	if h.errorPage, err = h.parse(errorTemplate); err != nil {
		return nil, err
	}
	if h.css, err = h.templateLoader.LoadCSSStyles(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *HTMLBuilder) parse(name string) (*template.Template, error) {
	raw, err := h.templateLoader.LoadHTMLTemplate(name)
	if err != nil {
		return nil, err
	}
	funcs := sprig.FuncMap()
	tmpl, err := template.New(name).Funcs(funcs).Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // markdown comes from the dashboard definitions
}

// Stylesheet returns the page CSS
func (h *HTMLBuilder) Stylesheet() string {
	return h.css
}

// BuildPage renders the dashboard page
func (h *HTMLBuilder) BuildPage(data PageData) (string, error) {
	data.CSS = template.CSS(h.css) //nolint:gosec // embedded stylesheet
	if data.EChartsURL == "" {
		data.EChartsURL = EChartsURL
	}
	return h.execute(h.page, data)
}

// ErrorPageData fills the error template
type ErrorPageData struct {
	Title   string
	Message string
	Version string
	CSS     template.CSS
}

// BuildErrorPage renders a page that shows only message
func (h *HTMLBuilder) BuildErrorPage(title, message, version string) (string, error) {
	return h.execute(h.errorPage, ErrorPageData{
		Title:   title,
		Message: message,
		Version: version,
		CSS:     template.CSS(h.css), //nolint:gosec // embedded stylesheet
	})
}

func (h *HTMLBuilder) execute(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
