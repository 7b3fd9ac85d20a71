// Package calendar extracts one team's season schedule from a federation
// calendar listing every round of the competition.
package calendar

import (
	"fmt"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

// DefaultTeam is tracked when no team is configured.
const DefaultTeam = "REAL TAJO"

// Extractor builds the TeamCalendar of Team.
type Extractor struct {
	Team string
}

// New returns an extractor for team, falling back to DefaultTeam.
func New(team string) *Extractor {
	if strings.TrimSpace(team) == "" {
		team = DefaultTeam
	}
	return &Extractor{Team: team}
}

// Extract reads the competition heading, the roster, every round naming
// the team and the team's contact block.
func (e *Extractor) Extract(lines []string) (*league.TeamCalendar, error) {
	clean := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = textnorm.NormalizeWhitespace(l); l != "" {
			clean = append(clean, l)
		}
	}

	roster := Roster(clean, e.Team)
	matches := Matches(clean, roster, e.Team)
	if len(matches) == 0 {
		return nil, fmt.Errorf("calendar for %s: %w", e.Team, extract.ErrNoMatchesFound)
	}

	competition, season := Heading(clean)
	return &league.TeamCalendar{
		Team:        e.Team,
		Competition: competition,
		Season:      season,
		Matches:     matches,
		TeamInfo:    TeamInfo(clean, e.Team),
	}, nil
}

// Heading splits the first "... Temporada YYYY-YYYY" line into the
// competition name and the season.
func Heading(lines []string) (competition, season string) {
	for _, line := range lines {
		loc := temporadaRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		return strings.TrimRight(line[:loc[0]], ", "), strings.TrimSpace(line[loc[1]:])
	}
	return "", ""
}
