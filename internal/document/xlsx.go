package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXLoader reads workbooks into rows of cells. The underlying reader
// drops trailing blank cells, so callers must treat short rows as blank
// on the right.
type XLSXLoader struct{}

// NewXLSXLoader returns a workbook loader.
func NewXLSXLoader() *XLSXLoader {
	return &XLSXLoader{}
}

// Load returns the rows of the first non-empty sheet.
func (l *XLSXLoader) Load(data []byte) ([][]string, error) {
	sheets, err := l.sheets(data)
	if err != nil {
		return nil, err
	}
	for _, rows := range sheets {
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return [][]string{}, nil
}

func (l *XLSXLoader) sheets(data []byte) ([][][]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty workbook", ErrUnreadable)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	var out [][][]string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrUnreadable, sheet, err)
		}
		for i, row := range rows {
			for j, cell := range row {
				rows[i][j] = strings.TrimSpace(cell)
			}
		}
		out = append(out, rows)
	}
	return out, nil
}

// Extract implements Extractor: every sheet becomes a page and every row a
// line of its non-blank cells.
func (l *XLSXLoader) Extract(_ context.Context, data []byte) (*ParsedDocument, error) {
	sheets, err := l.sheets(data)
	if err != nil {
		return nil, err
	}
	doc := &ParsedDocument{}
	for i, rows := range sheets {
		page := Page{Number: i + 1, Content: []string{}}
		for _, row := range rows {
			if line := joinCells(row); line != "" {
				page.Content = append(page.Content, line)
			}
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

func joinCells(cells []string) string {
	var parts []string
	for _, c := range cells {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
