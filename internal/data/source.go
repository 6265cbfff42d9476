package data

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Format is the file format of a tabular source.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatOf derives the format from the source's file extension. URLs are
// judged by their path, so query strings do not matter.
func FormatOf(source string) (Format, error) {
	p := source
	if isRemote(source) {
		u, err := url.Parse(source)
		if err != nil {
			return "", fmt.Errorf("invalid source URL %q: %w", source, err)
		}
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported file format %q: must be .csv or .xlsx", path.Ext(p))
	}
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetcher reads source files from local paths or http(s) URLs.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a fetcher whose remote requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	return &Fetcher{client: client}
}

// Fetch returns the raw content of source.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if !isRemote(source) {
		content, err := os.ReadFile(source) //nolint:gosec // operator-configured data source
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}
		return content, nil
	}

	resp, err := f.client.R().
		SetContext(ctx).
		Get(source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%s returned status %d", source, resp.StatusCode())
	}
	return resp.Body(), nil
}

// ReadTable parses content in the given format. sheet only applies to XLSX.
func ReadTable(content []byte, format Format, sheet string) (*Table, error) {
	switch format {
	case FormatXLSX:
		return ReadXLSX(bytes.NewReader(content), sheet)
	case FormatCSV:
		return ReadCSV(content)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
