// Package classification extracts league standings tables.
package classification

import (
	"fmt"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

// Extractor builds a ClassificationTable from document lines. Team names
// the tracked club for the last-result banner.
type Extractor struct {
	Team string
}

// New returns an extractor tracking team.
func New(team string) *Extractor {
	return &Extractor{Team: team}
}

// Extract locates the standings section and decodes every row.
func (e *Extractor) Extract(lines []string) (*league.ClassificationTable, error) {
	clean := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = textnorm.NormalizeWhitespace(l); l != "" {
			clean = append(clean, l)
		}
	}

	start := sectionStart(clean)
	if start < 0 {
		return nil, fmt.Errorf("classification header: %w", extract.ErrSectionNotFound)
	}
	section := clean[start:sectionEnd(clean, start)]

	headers := []string{section[0]}
	if len(section) > 1 && !IsRowStart(section[1]) {
		headers = append(headers, section[1])
	}

	table := &league.ClassificationTable{Headers: headers, Rows: []league.ClassificationRow{}}
	for _, row := range MergeRows(section[len(headers):]) {
		if decoded, ok := DecodeRow(row); ok {
			table.Rows = append(table.Rows, decoded)
		}
	}
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("classification rows: %w", extract.ErrNoMatchesFound)
	}

	if e.Team != "" {
		table.LastMatch = findLastMatch(clean[:start], e.Team)
	}
	return table, nil
}

func sectionStart(lines []string) int {
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), "equipos") {
			return i
		}
	}
	return -1
}

// sectionEnd returns the index of the closing footnote line, which is
// excluded from the section. The header line itself never ends it.
func sectionEnd(lines []string, start int) int {
	for i := start + 1; i < len(lines); i++ {
		lower := strings.ToLower(lines[i])
		if strings.Contains(lower, "resultado provisional") || strings.HasPrefix(lower, "(*)") {
			return i
		}
	}
	return len(lines)
}
