package topscorers

import (
	"fmt"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

type column string

const (
	colPlayer  column = "player"
	colTeam    column = "team"
	colGroup   column = "group"
	colMatches column = "matches"
	colGoals   column = "goals"
	colRatio   column = "ratio"
)

var columnOrder = []column{colPlayer, colTeam, colGroup, colMatches, colGoals, colRatio}

var headerAliases = map[column][]string{
	colPlayer:  {"jugador"},
	colTeam:    {"equipo"},
	colGroup:   {"grupo"},
	colMatches: {"partidos", "partidos jugados"},
	colGoals:   {"goles"},
	colRatio:   {"goles partido", "goles/partido", "goles por partido"},
}

func normalizeHeader(cell string) string {
	return textnorm.NormalizeTeamName(cell)
}

// ExtractGrid reads a scorer table laid out in cells, as loaded from a
// spreadsheet. Rows before the header carry the title.
func ExtractGrid(rows [][]string) (*league.TopScorersTable, error) {
	var meta []string
	header := -1
	for i, row := range rows {
		cells := meaningful(row)
		if len(cells) == 0 {
			continue
		}
		if isHeaderRow(cells) {
			header = i
			break
		}
		meta = append(meta, cells...)
	}
	if header < 0 {
		return nil, fmt.Errorf("top scorers header: %w", extract.ErrSectionNotFound)
	}
	columns, err := resolveColumns(rows[header])
	if err != nil {
		return nil, err
	}

	var scorers []league.TopScorerEntry
	for _, row := range rows[header+1:] {
		get := func(c column) string {
			i := columns[c]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		player := get(colPlayer)
		if player == "" {
			continue
		}
		total, details, penalties := parseGoals(get(colGoals))
		scorers = append(scorers, league.TopScorerEntry{
			Player:        player,
			Team:          get(colTeam),
			Group:         get(colGroup),
			MatchesPlayed: parseCount(get(colMatches)),
			GoalsTotal:    total,
			GoalsDetails:  details,
			PenaltyGoals:  penalties,
			GoalsPerMatch: parseDecimal(get(colRatio)),
			RawLines:      meaningful(row),
		})
	}
	if len(scorers) == 0 {
		return nil, fmt.Errorf("top scorers rows: %w", extract.ErrNoMatchesFound)
	}

	title := strings.TrimSpace(strings.Join(meta, " "))
	return finish(title, title, scorers), nil
}

func meaningful(row []string) []string {
	out := []string{}
	for _, c := range row {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func isHeaderRow(cells []string) bool {
	present := make(map[string]bool, len(cells))
	for _, c := range cells {
		present[normalizeHeader(c)] = true
	}
	return present["jugador"] && present["equipo"] && present["goles"]
}

func resolveColumns(row []string) (map[column]int, error) {
	resolved := make(map[column]int, len(columnOrder))
	for i, cell := range row {
		name := normalizeHeader(cell)
		if name == "" {
			continue
		}
		for _, c := range columnOrder {
			if _, done := resolved[c]; done {
				continue
			}
			for _, alias := range headerAliases[c] {
				if name == alias {
					resolved[c] = i
				}
			}
		}
	}

	var missing []string
	for _, c := range columnOrder {
		if _, ok := resolved[c]; !ok {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("top scorers header missing %s: %w", strings.Join(missing, ", "), extract.ErrSectionNotFound)
	}
	return resolved, nil
}
