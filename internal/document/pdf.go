package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"
)

// PDFExtractor rebuilds text lines from glyph positions and falls back to
// decoding content stream operators when the layout pass yields nothing.
type PDFExtractor struct {
	// RowTolerance is the vertical distance under which glyphs share a line.
	RowTolerance float64
}

// NewPDFExtractor returns an extractor with the default row tolerance.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{RowTolerance: 2.0}
}

// Extract implements Extractor.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (*ParsedDocument, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty pdf", ErrUnreadable)
	}

	doc, err := e.extractLayout(data)
	if err == nil && hasContent(doc) {
		return doc, nil
	}
	if err != nil {
		log.Debug().Err(err).Msg("pdf layout pass failed, decoding content streams")
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	doc, err = extractContentStreams(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return doc, nil
}

func hasContent(doc *ParsedDocument) bool {
	for _, p := range doc.Pages {
		if len(p.Content) > 0 {
			return true
		}
	}
	return false
}

func (e *PDFExtractor) extractLayout(data []byte) (doc *ParsedDocument, err error) {
	// The reader panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	doc = &ParsedDocument{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		doc.Pages = append(doc.Pages, Page{Number: i, Content: e.pageLines(page.Content().Text)})
	}
	return doc, nil
}

func (e *PDFExtractor) pageLines(texts []pdf.Text) []string {
	var lines []string
	for _, row := range groupRows(texts, e.RowTolerance) {
		if line := strings.TrimSpace(joinRow(row)); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

type rowBucket struct {
	y     float64
	texts []pdf.Text
}

// groupRows buckets glyphs by baseline and orders rows top to bottom.
func groupRows(texts []pdf.Text, tolerance float64) [][]pdf.Text {
	var buckets []*rowBucket
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" && t.S != " " {
			continue
		}
		var bucket *rowBucket
		for _, b := range buckets {
			if math.Abs(b.y-t.Y) <= tolerance {
				bucket = b
				break
			}
		}
		if bucket == nil {
			bucket = &rowBucket{y: t.Y}
			buckets = append(buckets, bucket)
		}
		bucket.texts = append(bucket.texts, t)
	}

	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].y > buckets[j].y })

	rows := make([][]pdf.Text, 0, len(buckets))
	for _, b := range buckets {
		sort.SliceStable(b.texts, func(i, j int) bool { return b.texts[i].X < b.texts[j].X })
		rows = append(rows, b.texts)
	}
	return rows
}

// joinRow concatenates glyphs, inserting a space where the horizontal gap
// is wider than a fraction of the font size.
func joinRow(row []pdf.Text) string {
	var sb strings.Builder
	for i, t := range row {
		if i > 0 {
			prev := row[i-1]
			gap := t.X - (prev.X + prev.W)
			threshold := 0.2 * t.FontSize
			if threshold <= 0 {
				threshold = 1
			}
			if gap > threshold && !strings.HasSuffix(sb.String(), " ") && t.S != " " {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
	}
	return sb.String()
}

func extractContentStreams(data []byte) (*ParsedDocument, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	doc := &ParsedDocument{}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil || r == nil {
			doc.Pages = append(doc.Pages, Page{Number: pageNr, Content: []string{}})
			continue
		}
		stream, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", pageNr, err)
		}
		doc.Pages = append(doc.Pages, Page{Number: pageNr, Content: streamLines(stream)})
	}
	return doc, nil
}

var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// streamLines decodes text showing operators. Line-moving operators (T*, ',
// Td, TD) start a new line so table rows stay separate.
func streamLines(data []byte) []string {
	var lines []string
	var current strings.Builder
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			lines = append(lines, s)
		}
		current.Reset()
	}

	for _, raw := range bytes.Split(data, []byte{'\n'}) {
		line := bytes.TrimSpace(raw)
		switch {
		case len(line) == 0:
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				current.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			flush()
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				current.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if dy := verticalMove(line); dy != 0 {
				flush()
			} else if current.Len() > 0 {
				current.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")), bytes.Equal(line, []byte("ET")):
			flush()
		}
	}
	flush()
	return lines
}

// verticalMove returns the ty operand of a Td/TD operator.
func verticalMove(line []byte) float64 {
	fields := strings.Fields(string(line))
	if len(fields) < 3 {
		return 0
	}
	var ty float64
	if _, err := fmt.Sscanf(fields[len(fields)-2], "%g", &ty); err != nil {
		return 0
	}
	return ty
}

func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteString(latin1(raw[i]))
			continue
		}
		i++
		switch raw[i] {
		case 'n', 'r', 't':
			sb.WriteByte(' ')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] < '0' || raw[i] > '7' {
				sb.WriteByte(raw[i])
				continue
			}
			val := int(raw[i] - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteString(latin1(byte(val)))
		}
	}
	return sb.String()
}

// latin1 maps a WinAnsi/Latin-1 byte to its rune so accented team names
// survive the octal escapes.
func latin1(b byte) string {
	return string(rune(b))
}
