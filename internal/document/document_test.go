package document

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		filename    string
		data        []byte
		want        Format
	}{
		{"pdf magic", "application/octet-stream", "x.bin", []byte("%PDF-1.4 ..."), FormatPDF},
		{"zip magic", "", "", []byte("PK\x03\x04rest"), FormatXLSX},
		{"html body", "", "", []byte("  <!DOCTYPE html><html></html>"), FormatHTML},
		{"content type", "application/x-pdf; charset=binary", "", []byte("???"), FormatPDF},
		{"extension", "", "goleadores.XLSX", []byte("???"), FormatXLSX},
		{"unknown", "text/plain", "a.txt", []byte("hello"), FormatUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.contentType, tc.filename, tc.data); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLinesNormalizesAndDropsBlank(t *testing.T) {
	doc := &ParsedDocument{Pages: []Page{
		{Number: 1, Content: []string{"  Equipos   Puntos ", "", "   "}},
		{Number: 2, Content: []string{"1EQUIPOA 3"}},
	}}
	want := []string{"Equipos Puntos", "1EQUIPOA 3"}
	if got := doc.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestHTMLExtractor(t *testing.T) {
	page := []byte(`<html><body>
<h2>Clasificación</h2>
<p>Liga Aficionados, Temporada 2025-2026</p>
<table>
<tr><th>Equipos</th><th>Puntos</th></tr>
<tr><td>1 REAL TAJO</td><td>3</td><td></td></tr>
</table></body></html>`)

	doc, err := NewHTMLExtractor().Extract(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Clasificación", "Liga Aficionados, Temporada 2025-2026", "Equipos Puntos", "1 REAL TAJO 3"}
	if got := doc.Pages[0].Content; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	rows, err := NewHTMLExtractor().Rows(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 4 || !reflect.DeepEqual(rows[3], []string{"1 REAL TAJO", "3"}) {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestHTMLExtractorEmpty(t *testing.T) {
	if _, err := NewHTMLExtractor().Extract(context.Background(), []byte("  ")); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestXLSXLoader(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetCellValue(sheet, "A1", "Goleadores")
	_ = f.SetSheetRow(sheet, "A3", &[]interface{}{"Jugador", "Equipo", "Grupo", "Partidos", "Goles", "Goles/Partido"})
	_ = f.SetSheetRow(sheet, "A4", &[]interface{}{"PEREZ, Juan", "REAL TAJO", "G1", 2, "4"})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	loader := NewXLSXLoader()
	rows, err := loader.Load(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d: %v", len(rows), rows)
	}
	if len(rows[3]) != 5 || rows[3][0] != "PEREZ, Juan" || rows[3][3] != "2" {
		t.Fatalf("unexpected data row %v", rows[3])
	}

	doc, err := loader.Extract(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Lines(); len(got) != 3 || got[0] != "Goleadores" {
		t.Fatalf("unexpected lines %v", got)
	}
}

func TestXLSXLoaderRejectsGarbage(t *testing.T) {
	if _, err := NewXLSXLoader().Load([]byte("not a workbook")); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestGroupRowsOrdersTopToBottom(t *testing.T) {
	texts := []pdf.Text{
		{S: "TAJO", X: 40, Y: 700, W: 20, FontSize: 10},
		{S: "1", X: 10, Y: 650, W: 5, FontSize: 10},
		{S: "REAL", X: 10, Y: 700.5, W: 22, FontSize: 10},
		{S: "3", X: 16, Y: 650, W: 5, FontSize: 10},
	}
	rows := groupRows(texts, 2)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := joinRow(rows[0]); got != "REAL TAJO" {
		t.Fatalf("unexpected first row %q", got)
	}
	if got := joinRow(rows[1]); got != "13" {
		t.Fatalf("unexpected second row %q", got)
	}
}

func TestStreamLines(t *testing.T) {
	stream := []byte(`BT
/F1 9 Tf
50 700 Td
(Jornada 1 \(11-10-2025\)) Tj
0 -12 Td
[(REAL ) -20 (TAJO)] TJ
(Uni\363n) '
ET`)
	want := []string{"Jornada 1 (11-10-2025)", "REAL TAJO", "Unión"}
	if got := streamLines(stream); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPDFExtractorRejectsGarbage(t *testing.T) {
	if _, err := NewPDFExtractor().Extract(context.Background(), []byte("%PDF-garbage")); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}
