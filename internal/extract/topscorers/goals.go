// Package topscorers extracts scorer rankings from spreadsheet grids and
// from the free text of PDF exports.
package topscorers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
)

var (
	firstIntRe = regexp.MustCompile(`\d+`)
	penaltyRe  = regexp.MustCompile(`(?i)(\d+)\s+de\s+penalti`)
	seasonRe   = regexp.MustCompile(`(?i)\btemporada\s+([\w\-/]+)`)
	temporada  = regexp.MustCompile(`(?i)\btemporada\b`)
)

// parseGoals reads a goals cell such as "5 (2 de penalti)": the first
// integer is the total and the whole text is kept as details.
func parseGoals(text string) (total *int, details string, penalties *int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", nil
	}
	if m := firstIntRe.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			total = league.Int(n)
		}
	}
	if m := penaltyRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			penalties = league.Int(n)
		}
	}
	return total, text, penalties
}

// parseDecimal accepts "1,6667", "1.5" and "1.234,5".
func parseDecimal(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if strings.Contains(value, ",") {
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return league.Float(f)
}

// parseCount accepts integer cells, including spreadsheet renderings like
// "3.0".
func parseCount(value string) *int {
	f := parseDecimal(value)
	if f == nil {
		return nil
	}
	return league.Int(int(*f))
}

// completeRatio fills a missing goals-per-match value from the totals.
func completeRatio(e *league.TopScorerEntry) {
	if e.GoalsPerMatch != nil || e.GoalsTotal == nil || e.MatchesPlayed == nil || *e.MatchesPlayed == 0 {
		return
	}
	e.GoalsPerMatch = league.Float(float64(*e.GoalsTotal) / float64(*e.MatchesPlayed))
}

// metadata splits "COMPETITION, CATEGORY Temporada 2025-2026".
func metadata(text string) (competition, category, season string) {
	if m := seasonRe.FindStringSubmatch(text); m != nil {
		season = m[1]
	}
	if loc := temporada.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	text = strings.Trim(strings.TrimSpace(text), ",")
	if head, tail, ok := strings.Cut(text, ","); ok {
		return strings.TrimSpace(head), strings.TrimSpace(tail), season
	}
	return strings.TrimSpace(text), "", season
}

func finish(title, text string, scorers []league.TopScorerEntry) *league.TopScorersTable {
	for i := range scorers {
		completeRatio(&scorers[i])
	}
	league.SortScorers(scorers)
	competition, category, season := metadata(text)
	return &league.TopScorersTable{
		Title:       title,
		Competition: competition,
		Category:    category,
		Season:      season,
		Scorers:     scorers,
	}
}
