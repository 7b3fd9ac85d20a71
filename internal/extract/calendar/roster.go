package calendar

import (
	"regexp"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

var (
	rosterEntryRe = regexp.MustCompile(`^(\d+)\s*\.\s*-\s*(.+)$`)
	rosterIDRe    = regexp.MustCompile(`\s*\(\d+\)\s*$`)
)

// Roster collects the participant names listed after "Equipos
// Participantes". Entries may wrap over several lines; an entry ends with
// its federation id in parentheses. team is appended when no entry
// contains it.
func Roster(lines []string, team string) []string {
	var (
		names   []string
		entry   []string
		capture bool
	)
	flush := func() {
		if len(entry) == 0 {
			return
		}
		name := strings.TrimSpace(rosterIDRe.ReplaceAllString(strings.Join(entry, " "), ""))
		if name != "" {
			names = append(names, name)
		}
		entry = nil
	}

	for _, line := range lines {
		if !capture {
			if textnorm.HasPrefixFold(line, "equipos participantes") {
				capture = true
			}
			continue
		}
		if textnorm.HasPrefixFold(line, "delegacion") || isStageLine(line) || jornadaRe.MatchString(line) {
			break
		}
		if m := rosterEntryRe.FindStringSubmatch(line); m != nil {
			flush()
			entry = []string{strings.TrimSpace(m[2])}
		} else if len(entry) > 0 {
			entry = append(entry, line)
		} else {
			continue
		}
		if rosterIDRe.MatchString(line) {
			flush()
		}
	}
	flush()

	if team != "" && trackedName(names, team) == "" {
		names = append(names, team)
	}
	return names
}

// trackedName returns the first roster entry containing team, so a
// listing such as "C.D. REAL TAJO" stands for "REAL TAJO".
func trackedName(names []string, team string) string {
	for _, n := range names {
		if textnorm.ContainsFold(n, team) {
			return n
		}
	}
	return ""
}

func containsKey(names []string, name string) bool {
	for _, n := range names {
		if sameKey(n, name) {
			return true
		}
	}
	return false
}

func sameKey(a, b string) bool {
	return string(textnorm.Key(a)) == string(textnorm.Key(b))
}
