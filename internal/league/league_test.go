package league

import (
	"encoding/json"
	"reflect"
	"testing"
)

func roundTrip[T any](t *testing.T, in T) {
	t.Helper()
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	roundTrip(t, ClassificationTable{
		Headers: []string{"Equipos Puntos", "J G E P F C"},
		Rows: []ClassificationRow{{
			Position:  1,
			Team:      "EQUIPOA",
			Stats:     StatsFromValues([]int{3, 1, 1, 0, 0, 2, 1, 3, 0}),
			Raw:       "1EQUIPOA 3 1 1 0 0 2 1 3 0",
			Validated: true,
		}, {
			Position: 2,
			Team:     "EQUIPOB",
			Stats:    ClassificationStats{Points: Int(0)},
		}},
		LastMatch: &ClassificationLastMatch{
			Matchday: Int(4),
			Date:     "2025-10-11",
			HomeTeam: LastMatchTeam{Name: "REAL TAJO", Score: 2},
			AwayTeam: LastMatchTeam{Name: "AMERICA", Score: 1},
		},
	})

	roundTrip(t, Matchday{Number: 3, Fixtures: []MatchFixture{
		Bye("AMERICA"),
		{HomeTeam: "REAL TAJO", AwayTeam: String("RAIMON"), HomeScore: Int(1), AwayScore: Int(0), Date: "2025-10-11", Time: "15:30"},
		{HomeTeam: "PIXEL", AwayTeam: String("SHOTS FC")},
	}})

	roundTrip(t, MatchdayResults{Competition: "Liga Aficionados", Season: "2025-2026", Matchday: 2,
		Matches: []MatchResult{{HomeTeam: "A", AwayTeam: "B", HomeScore: 3, AwayScore: 2}}})

	first := &Kit{Shirt: "Azul", ShirtType: "Lisa", Socks: "Blancas"}
	roundTrip(t, TeamCalendar{
		Team: "REAL TAJO", Competition: "Liga Aficionados", Season: "2025-2026",
		Matches: []CalendarMatch{
			{Stage: "Primera Vuelta", Matchday: 1, MatchDate: "2025-10-11", Opponent: "RACING ARANJUEZ", IsHome: true, KickoffTime: "16:00", Field: "Campo Municipal"},
			{Stage: "Primera Vuelta", Matchday: 2, Opponent: ByeOpponent},
		},
		TeamInfo: TeamInfo{Name: "REAL TAJO", ContactName: "JUAN", Phone: "620763145", FirstKit: first},
	})

	roundTrip(t, TopScorersTable{Title: "Goleadores", Season: "2025-2026", Scorers: []TopScorerEntry{
		{Player: "PEREZ, Juan", Team: "REAL TAJO", MatchesPlayed: Int(2), GoalsTotal: Int(4),
			GoalsDetails: "4 (1 de penalti)", PenaltyGoals: Int(1), GoalsPerMatch: Float(2), RawLines: []string{"a", "b"}},
		{Player: "LOPEZ, Ana"},
	}})
}

func TestStatsConsistent(t *testing.T) {
	if !StatsFromValues([]int{3, 1, 1, 0, 0, 2, 1, 3, 0}).Consistent() {
		t.Fatal("expected consistent stats")
	}
	if StatsFromValues([]int{4, 1, 1, 0, 0, 2, 1, 3, 0}).Consistent() {
		t.Fatal("points mismatch must be inconsistent")
	}
	if StatsFromValues([]int{3, 1, 1, 0}).Consistent() {
		t.Fatal("missing values must be inconsistent")
	}
	if !StatsFromValues([]int{2, 1, 1, 0, 0, 2, 1, 3, 1}).Consistent() {
		t.Fatal("sanction points reduce the total")
	}
}

func TestMatchdayForTeamSplitsGluedNames(t *testing.T) {
	md := Matchday{Number: 5, Fixtures: []MatchFixture{
		{HomeTeam: "REAL SPORT REAL TAJO", AwayTeam: String("RACING ARANJUEZ ALBIRROJA"), HomeScore: Int(1), AwayScore: Int(2)},
		{HomeTeam: "AMERICA", AwayTeam: String("PIXEL")},
	}}
	got := md.ForTeam("REAL TAJO")
	if len(got.Fixtures) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(got.Fixtures))
	}
	f := got.Fixtures[0]
	if f.HomeTeam != "REAL SPORT" || f.AwayTeam == nil || *f.AwayTeam != "REAL TAJO" {
		t.Fatalf("unexpected split %q / %v", f.HomeTeam, f.AwayTeam)
	}
	if got.Number != 5 {
		t.Fatalf("expected number 5, got %d", got.Number)
	}
}

func TestMatchdayForTeamCollapsesClubSuffix(t *testing.T) {
	md := Matchday{Number: 1, Fixtures: []MatchFixture{
		{HomeTeam: "RACING ARANJUEZ", AwayTeam: String("REAL TAJO C.F.")},
		Bye("Real Tajo"),
	}}
	got := md.ForTeam("REAL TAJO")
	if len(got.Fixtures) != 2 {
		t.Fatalf("expected bye and fixture, got %d", len(got.Fixtures))
	}
	if *got.Fixtures[0].AwayTeam != "REAL TAJO" {
		t.Fatalf("unexpected away %q", *got.Fixtures[0].AwayTeam)
	}
	if !got.Fixtures[1].IsBye || got.Fixtures[1].AwayTeam != nil {
		t.Fatal("bye must keep its shape")
	}
}

func TestMatchdayForTeamNoMatches(t *testing.T) {
	md := Matchday{Number: 1, Fixtures: []MatchFixture{{HomeTeam: "A", AwayTeam: String("B")}}}
	got := md.ForTeam("REAL TAJO")
	if got.Fixtures == nil || len(got.Fixtures) != 0 {
		t.Fatalf("expected empty non-nil fixtures, got %#v", got.Fixtures)
	}
}

func TestSortScorersStable(t *testing.T) {
	entries := []TopScorerEntry{
		{Player: "a", GoalsTotal: Int(2)},
		{Player: "b"},
		{Player: "c", GoalsTotal: Int(5)},
		{Player: "d", GoalsTotal: Int(2)},
		{Player: "e", GoalsTotal: Int(0)},
	}
	SortScorers(entries)
	var order string
	for _, e := range entries {
		order += e.Player
	}
	if order != "cadeb" {
		t.Fatalf("unexpected order %q", order)
	}
}

func TestViews(t *testing.T) {
	table := ClassificationTable{Rows: []ClassificationRow{{Position: 1, Team: "A", Stats: StatsFromValues([]int{3, 1, 1, 0, 0, 2, 1, 3, 0})}}}
	v := table.View()
	if len(v.Teams) != 1 || *v.Teams[0].Goals.For != 2 || *v.Teams[0].RecentForm.Points != 3 {
		t.Fatalf("unexpected view %+v", v.Teams)
	}
	if len(v.Metadata.Columns) != 6 {
		t.Fatalf("expected 6 columns, got %d", len(v.Metadata.Columns))
	}

	scorers := TopScorersTable{Scorers: []TopScorerEntry{{Player: "x"}, {Player: "y", Team: "T"}}}
	sv := scorers.View()
	if sv.Rows[1].Position != 2 || sv.Rows[0].Team != nil || *sv.Rows[1].Team != "T" {
		t.Fatalf("unexpected scorer view %+v", sv.Rows)
	}
}
