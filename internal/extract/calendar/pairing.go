package calendar

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

// occurrence is a roster name located inside a candidate text.
type occurrence struct {
	textnorm.Span
	name string
}

// pairing is the resolved fixture of the tracked team in one candidate.
type pairing struct {
	opponent    string
	trackedHome bool
	// trailing is the text after the pairing up to the next team name.
	trailing string
}

type matcher struct {
	team string
	// listed is the roster spelling of team, which may carry a prefix.
	listed string
	names  []string
	keys   [][]rune
}

func newMatcher(team string, roster []string) *matcher {
	names := append([]string(nil), roster...)
	listed := trackedName(names, team)
	if listed == "" {
		listed = team
	}
	if team != "" && !containsKey(names, team) {
		names = append(names, team)
	}
	if !containsKey(names, league.ByeOpponent) {
		names = append(names, league.ByeOpponent)
	}
	// Longest names first so "REAL SPORT" never shadows a longer entry
	// starting at the same position.
	sort.SliceStable(names, func(i, j int) bool {
		return len(textnorm.Key(names[i])) > len(textnorm.Key(names[j]))
	})

	m := &matcher{team: team, listed: listed, names: names}
	for _, n := range names {
		m.keys = append(m.keys, textnorm.Key(n))
	}
	return m
}

func (m *matcher) isTeam(name string) bool {
	return sameKey(name, m.team) || sameKey(name, m.listed)
}

func isBye(name string) bool { return sameKey(name, league.ByeOpponent) }

// resolveRound tries every candidate window of a round buffer: three lines
// centred on each line naming the tracked team, then the whole buffer.
func (m *matcher) resolveRound(buffer []string) (pairing, bool) {
	var candidates []string
	for i, line := range buffer {
		if _, ok := textnorm.FindFold(line, m.team); !ok {
			continue
		}
		lo, hi := i-1, i+2
		if lo < 0 {
			lo = 0
		}
		if hi > len(buffer) {
			hi = len(buffer)
		}
		candidates = append(candidates, strings.Join(buffer[lo:hi], " "))
	}
	candidates = append(candidates, strings.Join(buffer, " "))

	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		if p, ok := m.resolve(c); ok {
			return p, true
		}
	}
	return pairing{}, false
}

func (m *matcher) occurrences(text string) []occurrence {
	idx := textnorm.NewIndex(text)
	var out []occurrence
	for i := 0; i < idx.Len(); i++ {
		for k, key := range m.keys {
			if span, ok := idx.MatchAt(i, key); ok {
				out = append(out, occurrence{Span: span, name: m.names[k]})
				break
			}
		}
	}
	return out
}

func isDash(r rune) bool {
	return r == '-' || r == '–' || r == '—'
}

// resolve finds the first dash with a team name on each side and the
// tracked team on exactly one of them.
func (m *matcher) resolve(text string) (pairing, bool) {
	if _, ok := textnorm.FindFold(text, m.team); !ok {
		return pairing{}, false
	}
	occ := m.occurrences(text)

	for d, r := range text {
		if !isDash(r) || insideSpan(occ, d) {
			continue
		}
		after := d + utf8.RuneLen(r)
		left, lok := adjacentLeft(occ, text, d)
		right, rok := adjacentRight(occ, text, after)

		switch {
		case lok && rok:
			if p, ok := m.pair(left.name, right.name); ok {
				p.trailing = text[right.End:nextStart(occ, right.End, len(text))]
				return p, true
			}
		case lok && m.isTeam(left.name):
			end := segmentEnd(occ, text, after)
			if name := sanitizeSegment(text[after:end]); name != "" {
				if p, ok := m.pair(left.name, name); ok {
					p.trailing = text[after:end]
					return p, true
				}
			}
		case rok && m.isTeam(right.name):
			start := segmentStart(occ, text, d)
			if name := sanitizeSegment(text[start:d]); name != "" {
				if p, ok := m.pair(name, right.name); ok {
					p.trailing = text[right.End:nextStart(occ, right.End, len(text))]
					return p, true
				}
			}
		}
	}
	return pairing{}, false
}

// pair accepts a pairing when exactly one side is the tracked team.
func (m *matcher) pair(home, away string) (pairing, bool) {
	homeIsTeam, awayIsTeam := m.isTeam(home), m.isTeam(away)
	if homeIsTeam == awayIsTeam {
		return pairing{}, false
	}
	other := away
	if awayIsTeam {
		other = home
	}
	if isBye(other) {
		other = league.ByeOpponent
	}
	return pairing{opponent: other, trackedHome: homeIsTeam}, true
}

func insideSpan(occ []occurrence, offset int) bool {
	for _, o := range occ {
		if o.Start < offset && offset < o.End {
			return true
		}
	}
	return false
}

func adjacentLeft(occ []occurrence, text string, dash int) (occurrence, bool) {
	for i := len(occ) - 1; i >= 0; i-- {
		o := occ[i]
		if o.End > dash || textnorm.HasAlnum(text[o.End:dash]) {
			continue
		}
		return o, true
	}
	return occurrence{}, false
}

func adjacentRight(occ []occurrence, text string, after int) (occurrence, bool) {
	for _, o := range occ {
		if o.Start < after || textnorm.HasAlnum(text[after:o.Start]) {
			continue
		}
		return o, true
	}
	return occurrence{}, false
}

func nextStart(occ []occurrence, from, fallback int) int {
	for _, o := range occ {
		if o.Start >= from {
			return o.Start
		}
	}
	return fallback
}

// segmentEnd bounds an unknown name to the right of a dash by the next
// team name or the next dash.
func segmentEnd(occ []occurrence, text string, after int) int {
	end := nextStart(occ, after, len(text))
	if i := strings.IndexAny(text[after:end], "-–—"); i >= 0 {
		end = after + i
	}
	return end
}

// segmentStart bounds an unknown name to the left of a dash by the
// previous team name or the previous dash.
func segmentStart(occ []occurrence, text string, dash int) int {
	start := 0
	for _, o := range occ {
		if o.End <= dash && o.End > start {
			start = o.End
		}
	}
	if i := strings.LastIndexAny(text[start:dash], "-–—"); i >= 0 {
		start += i + 1
	}
	return start
}

var (
	segmentNoiseRe = regexp.MustCompile(`(?i)\(\d{2}-\d{2}-\d{4}\).*|\bjornada\s+\d+.*|\b(primera|segunda)\s+vuelta.*`)
	segmentStopRe  = regexp.MustCompile(`(?i)\b(fecha|hora|campo)\b|\d{1,2}[:.]\d{2}|\d{2}[-/]\d{2}[-/]\d{4}`)
)

// sanitizeSegment trims schedule noise from a name that is not on the
// roster.
func sanitizeSegment(segment string) string {
	cleaned := segmentNoiseRe.ReplaceAllString(segment, "")
	if loc := segmentStopRe.FindStringIndex(cleaned); loc != nil {
		cleaned = cleaned[:loc[0]]
	}
	cleaned = strings.Trim(cleaned, " -–—,;")
	if !textnorm.HasLetter(cleaned) {
		return ""
	}
	return textnorm.NormalizeWhitespace(cleaned)
}
