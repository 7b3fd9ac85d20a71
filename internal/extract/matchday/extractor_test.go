package matchday

import (
	"errors"
	"testing"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
)

func away(f league.MatchFixture) string {
	if f.AwayTeam == nil {
		return ""
	}
	return *f.AwayTeam
}

func score(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

func nonBye(fixtures []league.MatchFixture) []league.MatchFixture {
	var out []league.MatchFixture
	for _, f := range fixtures {
		if !f.IsBye {
			out = append(out, f)
		}
	}
	return out
}

func assertByeInvariant(t *testing.T, fixtures []league.MatchFixture) {
	t.Helper()
	for _, f := range fixtures {
		if f.IsBye && (f.AwayTeam != nil || f.HomeScore != nil || f.AwayScore != nil) {
			t.Fatalf("bye fixture carries opponent or score: %+v", f)
		}
	}
}

func TestExtractFixturesWithoutScores(t *testing.T) {
	md, err := Extract([]string{
		"LIGA AFICIONADOS F-11, 3ª AFICIONADOS F-11 Temporada 2025-2026",
		"Jornada 1",
		"Resultados",
		"Descansa AMERICA",
		"REAL SPORT 11-10-2025",
		"15:30",
		"REAL TAJO",
		"Campo: ENRIQUE MORENO - B - Hierba Artificial",
		"RACING ARANJUEZ 11-10-2025",
		"20:00",
		"ALBIRROJA",
		"Campo: ENRIQUE MORENO - B - Hierba Artificial",
		"LA VESPA TAPAS-CLUB",
		"ATLETICO DE ARANJUEZ 12-10-2025",
		"09:00",
		"AMG-ASESORIA JURIDICAEXCAVACIONES",
		"TAJO",
		"Campo: ENRIQUE MORENO - B - Hierba Artificial",
		"IRT ARANJUEZ 12-10-2025",
		"09:00",
		"CELTIC C.F.",
		"Campo: ENRIQUE MORENO - F - Hierba Artificial",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.Number != 1 || len(md.Fixtures) != 5 {
		t.Fatalf("unexpected matchday %d with %d fixtures", md.Number, len(md.Fixtures))
	}
	assertByeInvariant(t, md.Fixtures)

	f := md.Fixtures
	if !f[0].IsBye || f[0].HomeTeam != "AMERICA" {
		t.Fatalf("expected AMERICA bye, got %+v", f[0])
	}
	expect := []struct{ home, away, date, time string }{
		{"REAL SPORT", "REAL TAJO", "2025-10-11", "15:30"},
		{"RACING ARANJUEZ", "ALBIRROJA", "2025-10-11", "20:00"},
		{"LA VESPA TAPAS-CLUB ATLETICO DE ARANJUEZ", "AMG-ASESORIA JURIDICAEXCAVACIONES TAJO", "2025-10-12", "09:00"},
		{"IRT ARANJUEZ", "CELTIC C.F.", "2025-10-12", "09:00"},
	}
	for i, want := range expect {
		got := f[i+1]
		if got.IsBye || got.HomeTeam != want.home || away(got) != want.away || got.Date != want.date || got.Time != want.time {
			t.Fatalf("fixture %d: expected %+v, got %+v (away %q)", i+1, want, got, away(got))
		}
		if got.HomeScore != nil || got.AwayScore != nil {
			t.Fatalf("fixture %d should have no score", i+1)
		}
	}
}

func TestExtractScoresAndResults(t *testing.T) {
	md, err := Extract([]string{
		"LIGA AFICIONADOS F-11, 2ª AFICIONADOS F-11 Temporada 2025-2026",
		"Jornada 3",
		"Resultados",
		"C.D. VETERANOS PANTOJA 0 - 1 RAIMON",
		"Descansa UNION CAFETERA",
		"NEW COTTON MEKASO MCS",
		"05-10-2025",
		"10:30",
		"CAFETERIA LA TACITA",
		"Campo: ENRIQUE MORENO - B - Hierba Artificial",
		"SHOTS FC",
		"3 - 2",
		"05-10-2025",
		"10:30",
		"FC. RAYO ARANJUEZ",
		"Campo: ENRIQUE MORENO - F - Hierba Artificial",
		"TABERNA CASARES / MISTER",
		"PIXEL",
		"0 - 0",
		"Campo: ENRIQUE MORENO - C - Hierba Artificial",
		"GOLDEN F.C.",
		"05-10-2025",
		"12:00",
		"ATLETICO PERU",
		"Campo: ENRIQUE MORENO - D - Hierba Artificial",
		"CHESTERFIELD UNITED",
		"ALPHA TEAM",
		"0 - 0",
		"Campo: ENRIQUE MORENO - E - Hierba Artificial",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.Number != 3 || !md.Fixtures[1].IsBye || md.Fixtures[1].HomeTeam != "UNION CAFETERA" {
		t.Fatalf("unexpected matchday %+v", md)
	}
	assertByeInvariant(t, md.Fixtures)

	expect := []struct {
		home, away   string
		homeS, awayS int
	}{
		{"C.D. VETERANOS PANTOJA", "RAIMON", 0, 1},
		{"NEW COTTON MEKASO MCS", "CAFETERIA LA TACITA", -1, -1},
		{"SHOTS FC", "FC. RAYO ARANJUEZ", 3, 2},
		{"TABERNA CASARES / MISTER", "PIXEL", 0, 0},
		{"GOLDEN F.C.", "ATLETICO PERU", -1, -1},
		{"CHESTERFIELD UNITED", "ALPHA TEAM", 0, 0},
	}
	fixtures := nonBye(md.Fixtures)
	if len(fixtures) != len(expect) {
		t.Fatalf("expected %d fixtures, got %d", len(expect), len(fixtures))
	}
	for i, want := range expect {
		got := fixtures[i]
		if got.HomeTeam != want.home || away(got) != want.away || score(got.HomeScore) != want.homeS || score(got.AwayScore) != want.awayS {
			t.Fatalf("fixture %d: expected %+v, got %q %q %d-%d", i, want, got.HomeTeam, away(got), score(got.HomeScore), score(got.AwayScore))
		}
	}
	if fixtures[2].Date != "2025-10-05" || fixtures[2].Time != "10:30" {
		t.Fatalf("unexpected schedule %q %q", fixtures[2].Date, fixtures[2].Time)
	}
}

func TestExtractScoreOnHomeLine(t *testing.T) {
	md, err := Extract([]string{
		"Jornada 1",
		"Descansa AMERICA",
		"REAL SPORT 2 - 1",
		"11-10-2025",
		"15:30",
		"REAL TAJO",
		"Campo: ENRIQUE MORENO - B - Hierba Artificial",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := nonBye(md.Fixtures)[0]
	if f.HomeTeam != "REAL SPORT" || away(f) != "REAL TAJO" || score(f.HomeScore) != 2 || score(f.AwayScore) != 1 {
		t.Fatalf("unexpected fixture %+v", f)
	}
	if f.Date != "2025-10-11" || f.Time != "15:30" {
		t.Fatalf("unexpected schedule %q %q", f.Date, f.Time)
	}
}

func TestExtractPadsSingleDigitHour(t *testing.T) {
	md, err := Extract([]string{
		"Jornada 3",
		"REAL SPORT 0 - 0",
		"25-10-2025",
		"9:30",
		"REAL TAJO",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := nonBye(md.Fixtures)[0]
	if f.Date != "2025-10-25" || f.Time != "09:30" {
		t.Fatalf("unexpected schedule %q %q", f.Date, f.Time)
	}
}

func TestExtractByeSuffixAndAwayAfterScore(t *testing.T) {
	md, err := Extract([]string{
		"Jornada 2",
		"AMG-ASESORIA JURIDICA",
		"EXCAVACIONES",
		"TAJO Descansa",
		"REAL TAJO",
		"3 - 0",
		"19-10-2025",
		"13:40",
		"IRT ARANJUEZ",
		"Campo: ENRIQUE MORENO - F - Hierba Artificial",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(md.Fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(md.Fixtures))
	}
	if bye := md.Fixtures[0]; !bye.IsBye || bye.HomeTeam != "AMG-ASESORIA JURIDICA EXCAVACIONES TAJO" {
		t.Fatalf("unexpected bye %+v", bye)
	}
	f := md.Fixtures[1]
	if f.HomeTeam != "REAL TAJO" || away(f) != "IRT ARANJUEZ" || score(f.HomeScore) != 3 || score(f.AwayScore) != 0 {
		t.Fatalf("unexpected fixture %+v", f)
	}
	if f.Date != "2025-10-19" || f.Time != "13:40" {
		t.Fatalf("unexpected schedule %q %q", f.Date, f.Time)
	}
}

func TestExtractFinalizesFixtureBeforeBye(t *testing.T) {
	md, err := Extract([]string{"Jornada 12", "Resultados", "TEAM A", "TEAM B", "1 - 0", "TEAM X Descansa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(md.Fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(md.Fixtures))
	}
	if f := md.Fixtures[0]; f.IsBye || f.HomeTeam != "TEAM A" || away(f) != "TEAM B" || score(f.HomeScore) != 1 || score(f.AwayScore) != 0 {
		t.Fatalf("unexpected first fixture %+v", f)
	}
	if bye := md.Fixtures[1]; !bye.IsBye || bye.HomeTeam != "TEAM X" {
		t.Fatalf("unexpected bye %+v", bye)
	}
}

func TestExtractByeThenScoredPairing(t *testing.T) {
	md, err := Extract([]string{"Jornada 4", "Descansa AMERICA", "PIXEL", "ALPHA TEAM", "2 - 2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !md.Fixtures[0].IsBye || md.Fixtures[0].HomeTeam != "AMERICA" {
		t.Fatalf("unexpected first fixture %+v", md.Fixtures[0])
	}
	if f := md.Fixtures[1]; score(f.HomeScore) != 2 || score(f.AwayScore) != 2 || f.HomeTeam != "PIXEL" {
		t.Fatalf("unexpected second fixture %+v", f)
	}
}

func TestExtractErrors(t *testing.T) {
	if _, err := Extract([]string{"Resultados", "A 1 - 0 B"}); !errors.Is(err, extract.ErrRoundNumberNotFound) {
		t.Fatalf("expected ErrRoundNumberNotFound, got %v", err)
	}
	if _, err := Extract([]string{"Jornada 3", "Campo: ENRIQUE MORENO"}); !errors.Is(err, extract.ErrNoFixturesFound) {
		t.Fatalf("expected ErrNoFixturesFound, got %v", err)
	}
}

func TestCleanTeamName(t *testing.T) {
	cases := map[string]string{
		"Descansa UNION CAFETERA":     "UNION CAFETERA",
		"TAJO Descansa":               "TAJO",
		"REAL SPORT 11-10-2025 15:30": "REAL SPORT",
		"Campo: ENRIQUE MORENO":       "ENRIQUE MORENO",
		" - PIXEL, ":                  "PIXEL",
	}
	for in, want := range cases {
		if got := CleanTeamName(in); got != want {
			t.Fatalf("CleanTeamName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractResults(t *testing.T) {
	res, err := ExtractResults([]string{
		"LIGA AFICIONADOS F-11, 2ª AFICIONADOS F-11 Temporada 2025-2026",
		"Jornada 3",
		"C.D. VETERANOS PANTOJA 0 - 1 RAIMON",
		"Descansa UNION CAFETERA",
		"GOLDEN F.C.",
		"05-10-2025",
		"ATLETICO PERU",
		"Campo: ENRIQUE MORENO",
		"SHOTS FC",
		"3 - 2",
		"FC. RAYO ARANJUEZ",
		"Campo: ENRIQUE MORENO",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Competition != "LIGA AFICIONADOS F-11, 2ª AFICIONADOS F-11" || res.Season != "2025-2026" || res.Matchday != 3 {
		t.Fatalf("unexpected heading %+v", res)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 played matches, got %+v", res.Matches)
	}
	if m := res.Matches[1]; m.HomeTeam != "SHOTS FC" || m.AwayTeam != "FC. RAYO ARANJUEZ" || m.HomeScore != 3 || m.AwayScore != 2 {
		t.Fatalf("unexpected result %+v", m)
	}

	if _, err := ExtractResults([]string{"Jornada 2", "GOLDEN F.C.", "ATLETICO PERU"}); !errors.Is(err, extract.ErrNoMatchesFound) {
		t.Fatalf("expected ErrNoMatchesFound, got %v", err)
	}
}
