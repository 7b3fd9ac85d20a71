// Package matchday extracts the fixtures of one round from a matchday sheet.
package matchday

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
	inlineResultRe  = regexp.MustCompile(`(?i)^(.+?)\s+(\d+)\s*-\s*(\d+)\s+(.+?)$`)
	scoreOnlyRe     = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)
	trailingScoreRe = regexp.MustCompile(`^(.+?)\s+(\d+)\s*-\s*(\d+)$`)
	dateRe          = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	timeRe          = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	roundRe         = regexp.MustCompile(`(?i)jornada\s+(\d+)`)
	spacesRe        = regexp.MustCompile(`\s+`)
)

var headerPrefixes = []string{
	"jornada", "liga", "temporada", "calendario", "resultados", "equipos", "clasificacion", "clasificación",
}

var metadataPrefixes = []string{
	"campo", "delegacion", "delegación", "r.f.f.m", "rffm", "federacion", "federación",
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Extract returns the round described by lines.
func Extract(lines []string) (*league.Matchday, error) {
	number, err := RoundNumber(lines)
	if err != nil {
		return nil, err
	}
	fixtures := Fixtures(lines)
	if len(fixtures) == 0 {
		return nil, fmt.Errorf("matchday %d: %w", number, extract.ErrNoFixturesFound)
	}
	return &league.Matchday{Number: number, Fixtures: fixtures}, nil
}

// RoundNumber returns the number of the first "Jornada N" marker.
func RoundNumber(lines []string) (int, error) {
	for _, line := range lines {
		if m := roundRe.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil && n > 0 {
				return n, nil
			}
		}
	}
	return 0, extract.ErrRoundNumberNotFound
}

// Fixtures runs the line-buffer state machine over lines.
func Fixtures(lines []string) []league.MatchFixture {
	s := &scanner{}
	for _, raw := range lines {
		s.feed(textnorm.NormalizeWhitespace(raw))
	}
	s.consume(false)
	s.finalize()
	return s.fixtures
}

// scanner holds the pending fixture while its pieces arrive over several
// physical lines.
type scanner struct {
	fixtures []league.MatchFixture
	buffer   []string

	home, away   *string
	scores       *[2]int
	date, time   string
	awaitingAway bool
}

func (s *scanner) reset() {
	s.home, s.away, s.scores = nil, nil, nil
	s.date, s.time = "", ""
	s.awaitingAway = false
}

// finalize emits the pending fixture once both sides are known.
func (s *scanner) finalize() {
	if s.home == nil || s.away == nil {
		return
	}
	f := league.MatchFixture{HomeTeam: *s.home, AwayTeam: league.String(*s.away), Date: s.date, Time: s.time}
	if s.scores != nil {
		f.HomeScore, f.AwayScore = league.Int(s.scores[0]), league.Int(s.scores[1])
	}
	s.fixtures = append(s.fixtures, f)
	s.reset()
}

// consume turns buffered fragments into a bye, a side of the pending
// fixture, or both sides when a score line closes a two-fragment buffer.
func (s *scanner) consume(onScoreLine bool) {
	if len(s.buffer) == 0 {
		return
	}
	fragments := s.buffer
	s.buffer = nil

	if strings.Contains(strings.ToLower(strings.Join(fragments, " ")), "descansa") {
		s.finalize()
		if name := CleanTeamName(fragments...); name != "" {
			s.fixtures = append(s.fixtures, league.Bye(name))
		}
		s.reset()
		return
	}

	if onScoreLine && s.home == nil && len(fragments) >= 2 {
		if home := CleanTeamName(fragments[:len(fragments)-1]...); home != "" {
			s.home = &home
		}
		if away := CleanTeamName(fragments[len(fragments)-1]); away != "" {
			s.away = &away
			s.awaitingAway = false
		} else {
			s.awaitingAway = true
		}
		return
	}

	name := CleanTeamName(fragments...)
	if name == "" {
		return
	}
	switch {
	case s.home == nil:
		s.home = &name
		s.awaitingAway = s.awaitingAway || onScoreLine
	case s.away == nil || s.awaitingAway:
		s.away = &name
		s.awaitingAway = false
	default:
		s.finalize()
		s.home = &name
		s.awaitingAway = onScoreLine
	}
}

func (s *scanner) setSide(name string) {
	switch {
	case s.home == nil:
		s.home = &name
	case s.away == nil:
		s.away = &name
	default:
		s.finalize()
		s.home = &name
	}
}

func (s *scanner) feed(line string) {
	if line == "" {
		return
	}
	lower := strings.ToLower(line)
	if hasAnyPrefix(lower, headerPrefixes) {
		return
	}

	if d := dateRe.FindString(line); d != "" {
		s.date = extract.NormalizeDate(d)
	}
	if t := timeRe.FindString(line); t != "" {
		s.time = extract.NormalizeTime(t)
	}

	if m := inlineResultRe.FindStringSubmatch(line); m != nil {
		s.consume(false)
		s.finalize()
		home, away := CleanTeamName(m[1]), CleanTeamName(m[4])
		hs, _ := strconv.Atoi(m[2])
		as, _ := strconv.Atoi(m[3])
		s.fixtures = append(s.fixtures, league.MatchFixture{
			HomeTeam: home, AwayTeam: league.String(away),
			HomeScore: league.Int(hs), AwayScore: league.Int(as),
			Date: s.date, Time: s.time,
		})
		awaiting := s.awaitingAway
		s.reset()
		s.awaitingAway = awaiting
		return
	}

	if m := trailingScoreRe.FindStringSubmatch(line); m != nil {
		s.consume(false)
		if name := CleanTeamName(m[1]); name != "" {
			s.setSide(name)
			hs, _ := strconv.Atoi(m[2])
			as, _ := strconv.Atoi(m[3])
			s.scores = &[2]int{hs, as}
			s.awaitingAway = false
		}
		return
	}

	if strings.Contains(lower, "descansa") {
		s.buffer = append(s.buffer, line)
		s.consume(false)
		return
	}

	if m := scoreOnlyRe.FindStringSubmatch(line); m != nil {
		s.consume(true)
		if s.home == nil && s.away == nil {
			return
		}
		hs, _ := strconv.Atoi(m[1])
		as, _ := strconv.Atoi(m[2])
		s.scores = &[2]int{hs, as}
		s.awaitingAway = s.away == nil
		return
	}

	if isTeamFragment(line) {
		if s.home != nil && s.away != nil && !s.awaitingAway {
			s.finalize()
		}
		s.buffer = append(s.buffer, line)
		return
	}

	s.consume(false)
	s.finalize()
}

func isTeamFragment(line string) bool {
	if hasAnyPrefix(strings.ToLower(line), metadataPrefixes) {
		return false
	}
	if scoreOnlyRe.MatchString(line) {
		return false
	}
	return textnorm.HasLetter(CleanTeamName(line))
}

// CleanTeamName joins fragments and strips dates, times, bye markers and
// venue labels.
func CleanTeamName(fragments ...string) string {
	text := strings.Join(fragments, " ")
	text = dateRe.ReplaceAllString(text, " ")
	text = timeRe.ReplaceAllString(text, " ")
	if strings.HasPrefix(strings.ToLower(text), "descansa") {
		if _, rest, ok := strings.Cut(text, " "); ok {
			text = rest
		} else {
			text = ""
		}
	}
	if strings.HasSuffix(strings.ToLower(text), " descansa") {
		text = text[:len(text)-len(" descansa")]
	}
	text = strings.ReplaceAll(text, "Campo:", " ")
	text = strings.ReplaceAll(text, "Campo", " ")
	text = spacesRe.ReplaceAllString(text, " ")
	return strings.Trim(text, " -,:")
}
