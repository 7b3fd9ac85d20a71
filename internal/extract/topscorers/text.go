package topscorers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

var (
	rowEndRe  = regexp.MustCompile(`^\d+,\d+$`)
	decimalRe = regexp.MustCompile(`^\d+[,.]\d+$`)
	digitsRe  = regexp.MustCompile(`^\d+$`)
)

var footerPrefixes = []string{"delegacion", "r.f.f.m", "federacion"}

var groupKeywords = map[string]bool{
	"grupo": true, "gr.": true, "gr": true, "preferente": true, "aficionados": true,
	"benjamin": true, "alevin": true, "infantil": true, "cadete": true, "juvenil": true,
	"senior": true, "honor": true, "regional": true, "liga": true, "division": true,
	"primera": true, "segunda": true, "tercera": true, "cuarta": true,
}

var teamKeywords = map[string]bool{
	"REAL": true, "UNION": true, "CLUB": true, "ATLETICO": true, "DEPORTIVO": true,
	"SPORTING": true, "CF": true, "C.F": true, "CD": true, "C.D": true, "UD": true,
	"U.D": true, "AD": true, "A.D": true, "FC": true, "F.C": true, "AC": true, "A.C": true,
	"ESC": true, "ESCOLA": true, "ACADEMIA": true, "ACADEMY": true, "JUVENTUD": true,
	"TABERNA": true, "CAFETERIA": true, "NEW": true, "GOLDEN": true, "CHESTERFIELD": true,
	"JUNIOR": true, "SHOTS": true, "RAIMON": true, "SATIUT": true, "ATLETIC": true,
	"ATHLETIC": true,
}

type rowGroup struct {
	tokens []string
	lines  []string
}

func (g rowGroup) hasStats() bool {
	for _, t := range g.tokens {
		if digitsRe.MatchString(t) {
			return true
		}
	}
	return false
}

// ExtractText reads a scorer table from PDF text lines. A row may wrap
// over several lines and ends with its goals-per-match ratio.
func ExtractText(lines []string) (*league.TopScorersTable, error) {
	clean := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = textnorm.NormalizeWhitespace(l); l != "" {
			clean = append(clean, l)
		}
	}

	title := ""
	for _, l := range clean {
		if temporada.MatchString(l) {
			title = l
			break
		}
	}
	_, defaultGroup, _ := metadata(title)

	start := tableStart(clean)
	if start < 0 {
		return nil, fmt.Errorf("top scorers header: %w", extract.ErrSectionNotFound)
	}

	var scorers []league.TopScorerEntry
	for _, g := range rowGroups(clean[start:]) {
		if entry, ok := parseRow(g, defaultGroup); ok {
			scorers = append(scorers, entry)
		}
	}
	if len(scorers) == 0 {
		return nil, fmt.Errorf("top scorers rows: %w", extract.ErrNoMatchesFound)
	}
	return finish(title, title, scorers), nil
}

// tableStart returns the first line after the header band, or -1.
func tableStart(lines []string) int {
	for i, l := range lines {
		if !textnorm.ContainsFold(l, "jugador") || !textnorm.ContainsFold(l, "equipo") {
			continue
		}
		j := i + 1
		for j < len(lines) && isHeaderContinuation(lines[j]) {
			j++
		}
		return j
	}
	return -1
}

func isHeaderContinuation(line string) bool {
	l := strings.ToLower(line)
	if strings.IndexFunc(l, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0 {
		return false
	}
	return strings.Contains(l, "jugados") || strings.Contains(l, "goles") || strings.Contains(l, "partido")
}

func isFooter(line string) bool {
	for _, p := range footerPrefixes {
		if textnorm.HasPrefixFold(line, p) {
			return true
		}
	}
	return false
}

// isIdentityLine spots a line opening a new player: an upper-case surname
// followed by a comma before any figure.
func isIdentityLine(line string) bool {
	if textnorm.ContainsFold(line, "penalti") {
		return false
	}
	prefix := line
	if i := strings.IndexAny(line, "0123456789"); i >= 0 {
		prefix = line[:i]
	}
	if !strings.Contains(prefix, ",") {
		return false
	}
	first := strings.Fields(line)[0]
	return textnorm.HasLetter(first) && strings.ToUpper(first) == first
}

func rowGroups(lines []string) []rowGroup {
	var (
		groups  []rowGroup
		current rowGroup
	)
	for _, line := range lines {
		if isFooter(line) {
			break
		}
		if isIdentityLine(line) && current.hasStats() {
			groups = append(groups, current)
			current = rowGroup{}
		}
		tokens := strings.Fields(line)
		current.lines = append(current.lines, line)
		current.tokens = append(current.tokens, tokens...)
		if rowEndRe.MatchString(tokens[len(tokens)-1]) {
			groups = append(groups, current)
			current = rowGroup{}
		}
	}
	if current.hasStats() {
		groups = append(groups, current)
	}
	return groups
}

func parseRow(g rowGroup, defaultGroup string) (league.TopScorerEntry, bool) {
	tokens := g.tokens
	entry := league.TopScorerEntry{RawLines: g.lines}

	for i := len(tokens) - 1; i >= 0; i-- {
		if decimalRe.MatchString(tokens[i]) {
			entry.GoalsPerMatch = parseDecimal(tokens[i])
			tokens = append(append([]string(nil), tokens[:i]...), tokens[i+1:]...)
			break
		}
	}

	first := -1
	for i, t := range tokens {
		if digitsRe.MatchString(t) {
			first = i
			break
		}
	}
	if first < 0 {
		return entry, false
	}

	matches, goals := tokens[first], tokens[first+1:]
	if len(goals) == 0 && len(matches) == 2 {
		// Matches and goals glued into one token.
		matches, goals = matches[:1], []string{matches[1:]}
	}
	if n, err := strconv.Atoi(matches); err == nil {
		entry.MatchesPlayed = league.Int(n)
	}
	entry.GoalsTotal, entry.GoalsDetails, entry.PenaltyGoals = parseGoals(strings.Join(goals, " "))

	entry.Player, entry.Team, entry.Group = splitIdentity(tokens[:first])
	if entry.Group == "" {
		entry.Group = defaultGroup
	}
	return entry, entry.Player != ""
}

func splitIdentity(tokens []string) (player, team, group string) {
	nameTeam := tokens
	for i, t := range tokens {
		if isGroupToken(t) {
			nameTeam, group = tokens[:i], strings.Join(tokens[i:], " ")
			break
		}
	}
	p, tm := splitPlayerTeam(nameTeam)
	return strings.Join(p, " "), strings.Join(tm, " "), group
}

func isGroupToken(t string) bool {
	lower := strings.ToLower(t)
	if strings.Contains(lower, "f-") {
		return true
	}
	if strings.ContainsAny(t, "0123456789") && strings.ContainsAny(t, "ªº") {
		return true
	}
	return groupKeywords[strings.ToLower(textnorm.Fold(t))]
}

// splitPlayerTeam separates "SURNAME SURNAME, Given Names TEAM NAME". Once
// the comma is seen, a team keyword, the last token after one given name,
// or any token after two given names opens the team.
func splitPlayerTeam(tokens []string) (player, team []string) {
	seenComma := false
	given := 0
	for i, t := range tokens {
		if !seenComma {
			player = append(player, t)
			seenComma = strings.Contains(t, ",")
			continue
		}
		if len(team) > 0 {
			team = append(team, t)
			continue
		}
		switch {
		case teamKeywords[textnorm.Fold(strings.Trim(t, ",."))]:
			team = append(team, t)
		case given >= 1 && i == len(tokens)-1:
			team = append(team, t)
		case given >= 2:
			team = append(team, t)
		default:
			player = append(player, t)
			given++
		}
	}
	if !seenComma {
		return tokens, nil
	}
	return player, team
}
