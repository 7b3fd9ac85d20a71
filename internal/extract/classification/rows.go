package classification

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

var (
	rowRe           = regexp.MustCompile(`^(\d+)\s*(.+)$`)
	trailingStatsRe = regexp.MustCompile(`(?i)[\dGEP\s]+$`)
	leadingDigitsRe = regexp.MustCompile(`^\d+`)
)

// formPoints maps recent-form letters to points.
var formPoints = map[rune]int{'G': 3, 'E': 1, 'P': 0}

// IsRowStart reports whether line opens a standings row: a rank prefix and
// at least one letter somewhere after it.
func IsRowStart(line string) bool {
	return leadingDigitsRe.MatchString(line) && textnorm.HasLetter(line)
}

// MergeRows joins continuation lines onto the row they belong to. Lines
// before the first row start are dropped.
func MergeRows(lines []string) []string {
	var rows []string
	current := ""
	open := false
	for _, line := range lines {
		switch {
		case IsRowStart(line):
			if open && current != "" {
				rows = append(rows, strings.TrimSpace(current))
			}
			current, open = line, true
		case open:
			current = strings.TrimSpace(current + " " + line)
		}
	}
	if open && current != "" {
		rows = append(rows, strings.TrimSpace(current))
	}
	return rows
}

// DecodeRow parses a merged row. It returns false when the line has no rank
// or no team name.
func DecodeRow(line string) (league.ClassificationRow, bool) {
	m := rowRe.FindStringSubmatch(line)
	if m == nil {
		return league.ClassificationRow{}, false
	}
	position, err := strconv.Atoi(m[1])
	if err != nil {
		return league.ClassificationRow{}, false
	}
	body := strings.TrimSpace(m[2])

	team, section := splitStats(body)
	if team == "" {
		return league.ClassificationRow{}, false
	}

	values, ok := DecodeStats(consolidateForm(section))
	return league.ClassificationRow{
		Position:  position,
		Team:      team,
		Stats:     league.StatsFromValues(values),
		Raw:       line,
		Validated: ok,
	}, true
}

// splitStats separates the team name from the trailing stats block. A block
// never starts inside a word, so "GETAFE 1 0" keeps its final E.
func splitStats(body string) (team, section string) {
	loc := trailingStatsRe.FindStringIndex(body)
	if loc == nil {
		return strings.TrimSpace(body), ""
	}
	start := loc[0]
	for start < len(body) && start > 0 && isASCIILetter(body[start]) && isLetterBefore(body, start) {
		start++
	}
	return strings.TrimSpace(body[:start]), body[start:]
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isLetterBefore(s string, i int) bool {
	r := []rune(s[:i])
	return len(r) > 0 && unicode.IsLetter(r[len(r)-1])
}

// consolidateForm replaces recent-form letters with their summed points so
// "3 1 G E P 0" becomes "3 1 4 0".
func consolidateForm(section string) string {
	tokens := strings.Fields(section)
	out := make([]string, 0, len(tokens))
	pending, sum := false, 0
	flush := func() {
		if pending {
			out = append(out, strconv.Itoa(sum))
			pending, sum = false, 0
		}
	}
	for _, tok := range tokens {
		if points, ok := formToken(tok); ok {
			pending = true
			sum += points
			continue
		}
		flush()
		out = append(out, tok)
	}
	flush()
	return strings.Join(out, " ")
}

func formToken(tok string) (int, bool) {
	total := 0
	for _, r := range strings.ToUpper(tok) {
		p, ok := formPoints[r]
		if !ok {
			return 0, false
		}
		total += p
	}
	return total, tok != ""
}
