package matchday

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
)

var seasonRe = regexp.MustCompile(`(?i)^(.*?)\s*\btemporada\b\s*(.*)$`)

// Heading returns the competition and season named by the first line that
// contains "Temporada".
func Heading(lines []string) (competition, season string) {
	for _, line := range lines {
		if m := seasonRe.FindStringSubmatch(line); m != nil {
			return strings.Trim(m[1], " ,-"), strings.TrimSpace(m[2])
		}
	}
	return "", ""
}

// ExtractResults reads a results bulletin. Only fixtures with both scores
// are reported.
func ExtractResults(lines []string) (*league.MatchdayResults, error) {
	number, err := RoundNumber(lines)
	if err != nil {
		return nil, err
	}
	competition, season := Heading(lines)
	results := &league.MatchdayResults{
		Competition: competition,
		Season:      season,
		Matchday:    number,
		Matches:     []league.MatchResult{},
	}
	for _, f := range Fixtures(lines) {
		if f.IsBye || f.AwayTeam == nil || f.HomeScore == nil || f.AwayScore == nil {
			continue
		}
		results.Matches = append(results.Matches, league.MatchResult{
			HomeTeam:  f.HomeTeam,
			AwayTeam:  *f.AwayTeam,
			HomeScore: *f.HomeScore,
			AwayScore: *f.AwayScore,
		})
	}
	if len(results.Matches) == 0 {
		return nil, fmt.Errorf("results for matchday %d: %w", number, extract.ErrNoMatchesFound)
	}
	return results, nil
}
