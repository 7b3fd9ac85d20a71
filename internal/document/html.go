package document

import (
	"bytes"
	"context"
	"fmt"

	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
	"github.com/PuerkitoBio/goquery"
)

// HTMLExtractor reads federation web exports: table rows become lines, as
// do headings and paragraphs outside tables.
type HTMLExtractor struct{}

// NewHTMLExtractor returns an HTML extractor.
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

func parseHTML(data []byte) (*goquery.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty html", ErrUnreadable)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return doc, nil
}

// Extract implements Extractor.
func (h *HTMLExtractor) Extract(_ context.Context, data []byte) (*ParsedDocument, error) {
	doc, err := parseHTML(data)
	if err != nil {
		return nil, err
	}

	page := Page{Number: 1, Content: []string{}}
	doc.Find("h1, h2, h3, h4, p, caption, tr, li").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) != "tr" && goquery.NodeName(s) != "caption" && s.Closest("table").Length() > 0 {
			return
		}
		var line string
		if goquery.NodeName(s) == "tr" {
			line = joinCells(rowCells(s))
		} else {
			line = textnorm.NormalizeWhitespace(s.Text())
		}
		if line != "" {
			page.Content = append(page.Content, line)
		}
	})
	return &ParsedDocument{Pages: []Page{page}}, nil
}

// Rows returns every table row as cells, preceded by the text blocks that
// appear before the first table. Used for grid-shaped exports.
func (h *HTMLExtractor) Rows(data []byte) ([][]string, error) {
	doc, err := parseHTML(data)
	if err != nil {
		return nil, err
	}
	var rows [][]string
	doc.Find("h1, h2, h3, h4, p").Each(func(_ int, s *goquery.Selection) {
		if s.Closest("table").Length() > 0 {
			return
		}
		if text := textnorm.NormalizeWhitespace(s.Text()); text != "" {
			rows = append(rows, []string{text})
		}
	})
	doc.Find("tr").Each(func(_ int, s *goquery.Selection) {
		if cells := rowCells(s); len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return rows, nil
}

func rowCells(row *goquery.Selection) []string {
	var cells []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, textnorm.NormalizeWhitespace(cell.Text()))
	})
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return trimLeadingBlank(cells)
}

func trimLeadingBlank(cells []string) []string {
	for _, c := range cells {
		if c != "" {
			return cells
		}
	}
	return nil
}
