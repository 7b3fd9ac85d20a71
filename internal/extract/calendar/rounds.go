package calendar

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

const (
	FirstLeg  = "Primera Vuelta"
	SecondLeg = "Segunda Vuelta"
)

var (
	stageRe        = regexp.MustCompile(`(?i)\b(primera|segunda)\s+vuelta\b`)
	jornadaRe      = regexp.MustCompile(`(?i)\bjornada\s+(\d+)`)
	jornadaDateRe  = regexp.MustCompile(`^\s*\((\d{2})-(\d{2})-(\d{4})\)`)
	parenDateRe    = regexp.MustCompile(`\((\d{2})-(\d{2})-(\d{4})\)`)
	temporadaRe    = regexp.MustCompile(`(?i)\btemporada\b`)
	footerPrefixes = []string{"calendario de competiciones", "delegacion"}
	haltPrefixes   = []string{"equipos participantes", "datos de interes"}
)

func isStageLine(line string) bool {
	return stageRe.MatchString(line)
}

type markerKind int

const (
	stageMarker markerKind = iota
	roundMarker
)

type marker struct {
	kind   markerKind
	start  int
	end    int
	stage  string
	number int
	date   string
}

// markers returns the stage and round markers of line in reading order. A
// round marker swallows the "(dd-mm-yyyy)" date that follows it.
func markers(line string) []marker {
	var out []marker
	for _, loc := range stageRe.FindAllStringSubmatchIndex(line, -1) {
		stage := FirstLeg
		if strings.EqualFold(line[loc[2]:loc[3]], "segunda") {
			stage = SecondLeg
		}
		out = append(out, marker{kind: stageMarker, start: loc[0], end: loc[1], stage: stage})
	}
	for _, loc := range jornadaRe.FindAllStringSubmatchIndex(line, -1) {
		n, err := strconv.Atoi(line[loc[2]:loc[3]])
		if err != nil || n <= 0 {
			continue
		}
		m := marker{kind: roundMarker, start: loc[0], end: loc[1], number: n}
		if d := jornadaDateRe.FindStringSubmatchIndex(line[loc[1]:]); d != nil {
			rest := line[loc[1]:]
			if iso, ok := extract.ISODate(rest[d[2]:d[3]], rest[d[4]:d[5]], rest[d[6]:d[7]]); ok {
				m.date = iso
			}
			m.end = loc[1] + d[1]
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

// roundScanner walks the schedule and emits one match per round in which
// the tracked team plays or rests.
type roundScanner struct {
	matcher   *matcher
	stage     string
	number    int
	date      string
	pending   bool
	suspended bool
	buffer    []string
	matches   []league.CalendarMatch
}

// Matches scans lines round by round and returns the fixtures of team.
// roster supplies the known participant names used to split pairings.
func Matches(lines []string, roster []string, team string) []league.CalendarMatch {
	s := &roundScanner{matcher: newMatcher(team, roster)}
	for _, line := range lines {
		s.feed(line)
	}
	s.finalize()
	return s.matches
}

func (s *roundScanner) feed(line string) {
	if hasFoldPrefix(line, footerPrefixes) || temporadaRe.MatchString(line) {
		return
	}
	if hasFoldPrefix(line, haltPrefixes) {
		s.finalize()
		s.suspended = true
		return
	}

	pos := 0
	for _, m := range markers(line) {
		if m.start < pos {
			continue
		}
		s.text(line[pos:m.start])
		s.apply(m)
		pos = m.end
	}
	s.text(line[pos:])
}

func (s *roundScanner) apply(m marker) {
	s.finalize()
	s.suspended = false
	switch m.kind {
	case stageMarker:
		s.stage = m.stage
		s.number = 0
		s.date = ""
		s.pending = false
	case roundMarker:
		s.number = m.number
		s.date = m.date
		s.pending = m.date == ""
	}
}

func (s *roundScanner) text(segment string) {
	segment = strings.TrimSpace(segment)
	if segment == "" || s.suspended || s.number == 0 {
		return
	}
	if s.pending {
		if loc := parenDateRe.FindStringSubmatchIndex(segment); loc != nil {
			if iso, ok := extract.ISODate(segment[loc[2]:loc[3]], segment[loc[4]:loc[5]], segment[loc[6]:loc[7]]); ok {
				s.date = iso
				s.pending = false
				for _, part := range []string{segment[:loc[0]], segment[loc[1]:]} {
					if part = strings.TrimSpace(part); part != "" {
						s.buffer = append(s.buffer, part)
					}
				}
				return
			}
		}
	}
	s.buffer = append(s.buffer, segment)
}

func (s *roundScanner) finalize() {
	buffer := s.buffer
	s.buffer = nil
	if s.number == 0 || len(buffer) == 0 {
		return
	}
	p, ok := s.matcher.resolveRound(buffer)
	if !ok {
		return
	}

	stage := s.stage
	if stage == "" {
		stage = FirstLeg
	}
	d := parseDetails(p.trailing)
	match := league.CalendarMatch{
		Stage:       stage,
		Matchday:    s.number,
		MatchDate:   s.date,
		Opponent:    p.opponent,
		IsHome:      p.trackedHome,
		KickoffTime: d.time,
		Field:       d.field,
	}
	if match.MatchDate == "" {
		match.MatchDate = d.date
	}
	s.matches = append(s.matches, match)
}

func hasFoldPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if textnorm.HasPrefixFold(line, p) {
			return true
		}
	}
	return false
}
