package classification

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

var (
	jornadaRe     = regexp.MustCompile(`(?i)jornada\s+(\d+)(?:\s*\(\s*(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})\s*\))?`)
	dateRe        = regexp.MustCompile(`\(?\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b\)?`)
	scoreDashRe   = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
	trailingIntRe = regexp.MustCompile(`^(.*?)\s*(\d+)$`)
	leadingIntRe  = regexp.MustCompile(`^(\d+)\s*(.*)$`)
)

// findLastMatch scans the banner above the table for the tracked team's
// most recent result.
func findLastMatch(lines []string, team string) *league.ClassificationLastMatch {
	var (
		matchday *int
		date     string
		result   *league.ClassificationLastMatch
	)
	for _, line := range lines {
		if m := jornadaRe.FindStringSubmatch(line); m != nil && matchday == nil {
			n, _ := strconv.Atoi(m[1])
			matchday = league.Int(n)
			if m[2] != "" {
				date, _ = extract.ISODate(m[2], m[3], m[4])
			}
		}
		if result == nil && textnorm.ContainsFold(line, team) {
			result = parseScoreLine(line, team)
		}
	}
	if result == nil {
		return nil
	}
	result.Matchday = matchday
	result.Date = date
	return result
}

func parseScoreLine(line, team string) *league.ClassificationLastMatch {
	text := jornadaRe.ReplaceAllString(line, " ")
	text = dateRe.ReplaceAllString(text, " ")
	text = textnorm.NormalizeWhitespace(text)

	var home, away league.LastMatchTeam
	if loc := scoreDashRe.FindStringSubmatchIndex(text); loc != nil {
		home.Name = cleanSide(text[:loc[0]])
		home.Score, _ = strconv.Atoi(text[loc[2]:loc[3]])
		away.Score, _ = strconv.Atoi(text[loc[4]:loc[5]])
		away.Name = cleanSide(text[loc[1]:])
	} else {
		left, right, ok := strings.Cut(text, " - ")
		if !ok {
			return nil
		}
		var leftScore, rightScore bool
		home, leftScore = sideWithScore(left, true)
		away, rightScore = sideWithScore(right, false)
		if !leftScore && !rightScore {
			return nil
		}
	}

	if home.Name == "" {
		home.Name = team
	}
	if away.Name == "" {
		away.Name = team
	}
	return &league.ClassificationLastMatch{HomeTeam: home, AwayTeam: away}
}

// sideWithScore pulls a score from one side of "TEAM n - n TEAM". The left
// side prefers a trailing number, the right side a leading one.
func sideWithScore(side string, left bool) (league.LastMatchTeam, bool) {
	side = strings.TrimSpace(side)
	patterns := []*regexp.Regexp{leadingIntRe, trailingIntRe}
	if left {
		patterns = []*regexp.Regexp{trailingIntRe, leadingIntRe}
	}
	for _, re := range patterns {
		m := re.FindStringSubmatch(side)
		if m == nil {
			continue
		}
		name, digits := m[2], m[1]
		if re == trailingIntRe {
			name, digits = m[1], m[2]
		}
		score, _ := strconv.Atoi(digits)
		return league.LastMatchTeam{Name: cleanSide(name), Score: score}, true
	}
	return league.LastMatchTeam{Name: cleanSide(side)}, false
}

func cleanSide(s string) string {
	return strings.Trim(textnorm.NormalizeWhitespace(s), " -:,")
}
