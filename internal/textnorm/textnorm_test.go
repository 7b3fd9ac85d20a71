package textnorm

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := map[string]string{
		"\u00a0REAL\u2007TAJO\u202f ": "REAL TAJO",
		"a   b\t\tc":                   "a b c",
		"":                              "",
		"Jornada   1 (11-10-2025) ":     "Jornada 1 (11-10-2025)",
	}
	for in, want := range cases {
		if got := NormalizeWhitespace(in); got != want {
			t.Fatalf("NormalizeWhitespace(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFold(t *testing.T) {
	if Fold("Equipación") != Fold("EQUIPACION") {
		t.Fatalf("expected accent-insensitive fold, got %q and %q", Fold("Equipación"), Fold("EQUIPACION"))
	}
	if got := Fold("Unión Tajo"); got != "UNION TAJO" {
		t.Fatalf("unexpected fold %q", got)
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("REAL SPORT REAL TAJO", "Real  Tajo") {
		t.Fatal("expected containment")
	}
	if ContainsFold("RACING ARANJUEZ", "REAL TAJO") {
		t.Fatal("unexpected containment")
	}
	if ContainsFold("anything", "  ") {
		t.Fatal("blank needle must not match")
	}
}

func TestFindFoldSkipsSeparators(t *testing.T) {
	haystack := "2 - CELTIC C.F. - Unión Tajo"
	span, ok := FindFold(haystack, "celtic cf")
	if !ok {
		t.Fatal("expected a match")
	}
	if got := haystack[span.Start:span.End]; got != "CELTIC C.F" {
		t.Fatalf("unexpected span text %q", got)
	}

	span, ok = FindFold(haystack, "UNION TAJO")
	if !ok {
		t.Fatal("expected accent-insensitive match")
	}
	if got := haystack[span.Start:span.End]; got != "Unión Tajo" {
		t.Fatalf("unexpected span text %q", got)
	}

	if _, ok := FindFold(haystack, "RAYO"); ok {
		t.Fatal("unexpected match")
	}
}

func TestIndexMatchAt(t *testing.T) {
	idx := NewIndex("REAL TAJO - RACING ARANJUEZ")
	if _, ok := idx.MatchAt(0, Key("REAL TAJO")); !ok {
		t.Fatal("expected match at 0")
	}
	pos := idx.Position(12)
	span, ok := idx.MatchAt(pos, Key("Racing Aranjuez"))
	if !ok || span.Start != 12 || span.End != len(idx.Text()) {
		t.Fatalf("unexpected span %+v ok=%v", span, ok)
	}
}
