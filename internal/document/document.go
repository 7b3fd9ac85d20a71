// Package document decodes uploaded files into pages of text lines, the
// input every extractor works on.
package document

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

var (
	// ErrUnreadable is returned when a file cannot be decoded.
	ErrUnreadable = errors.New("document unreadable")
	// ErrUnsupportedType is returned for formats without an extractor.
	ErrUnsupportedType = errors.New("unsupported document type")
)

// Page is one page of extracted text.
type Page struct {
	Number  int      `json:"number"`
	Content []string `json:"content"`
}

// ParsedDocument is the ordered list of pages of an upload.
type ParsedDocument struct {
	Pages []Page `json:"pages"`
}

// Lines flattens the pages into whitespace-normalized, non-empty lines.
func (d *ParsedDocument) Lines() []string {
	if d == nil {
		return nil
	}
	var lines []string
	for _, page := range d.Pages {
		for _, line := range page.Content {
			if clean := textnorm.NormalizeWhitespace(line); clean != "" {
				lines = append(lines, clean)
			}
		}
	}
	return lines
}

// FromLines builds a single page document, mostly for tests and tools.
func FromLines(lines ...string) *ParsedDocument {
	return &ParsedDocument{Pages: []Page{{Number: 1, Content: lines}}}
}

// Extractor turns raw bytes into pages of text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (*ParsedDocument, error)
}

// Format is a supported upload format.
type Format string

const (
	FormatUnknown Format = ""
	FormatPDF     Format = "pdf"
	FormatXLSX    Format = "xlsx"
	FormatHTML    Format = "html"
)

// Content types accepted per format.
var contentTypes = map[Format][]string{
	FormatPDF:  {"application/pdf", "application/x-pdf"},
	FormatXLSX: {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	FormatHTML: {"text/html"},
}

// FormatForContentType maps a declared content type to a format.
func FormatForContentType(contentType string) Format {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	for format, types := range contentTypes {
		for _, t := range types {
			if ct == t {
				return format
			}
		}
	}
	return FormatUnknown
}

// Detect guesses the format from the payload, falling back to the declared
// content type and then the file extension.
func Detect(contentType, filename string, data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return FormatPDF
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return FormatXLSX
	}
	head := bytes.ToLower(bytes.TrimSpace(data[:min(len(data), 512)]))
	if bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html")) || bytes.Contains(head, []byte("<table")) {
		return FormatHTML
	}
	if f := FormatForContentType(contentType); f != FormatUnknown {
		return f
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".xlsx":
		return FormatXLSX
	case ".html", ".htm":
		return FormatHTML
	}
	return FormatUnknown
}

// Registry dispatches extraction by format.
type Registry struct {
	extractors map[Format]Extractor
}

// NewRegistry returns a registry with the PDF, XLSX and HTML extractors.
func NewRegistry() *Registry {
	return &Registry{extractors: map[Format]Extractor{
		FormatPDF:  NewPDFExtractor(),
		FormatXLSX: NewXLSXLoader(),
		FormatHTML: NewHTMLExtractor(),
	}}
}

// Extract decodes data with the extractor registered for format.
func (r *Registry) Extract(ctx context.Context, format Format, data []byte) (*ParsedDocument, error) {
	extractor, ok := r.extractors[format]
	if !ok {
		return nil, ErrUnsupportedType
	}
	return extractor.Extract(ctx, data)
}
