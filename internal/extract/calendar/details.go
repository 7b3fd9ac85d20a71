package calendar

import (
	"regexp"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/extract"
	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

var (
	labelledDateRe = regexp.MustCompile(`(?i)\bfecha[^0-9]*(\d{2})[-/](\d{2})[-/](\d{4})`)
	bareDateRe     = regexp.MustCompile(`(\d{2})[-/](\d{2})[-/](\d{4})`)
	labelledTimeRe = regexp.MustCompile(`(?i)\bhora[^0-9]*(\d{1,2}[:.]\d{2})`)
	bareTimeRe     = regexp.MustCompile(`\b(\d{1,2}[:.]\d{2})\s*[hH]?\b`)
	fieldLabelRe   = regexp.MustCompile(`(?i)\bcampo\b\s*[:\-]?\s*`)
	nextLabelRe    = regexp.MustCompile(`(?i)\s+(fecha|hora|campo)\b`)
	dateOrHourRe   = regexp.MustCompile(`(?i)\b(fecha|hora)\b.*`)
)

type details struct {
	date  string
	time  string
	field string
}

// parseDetails reads the schedule details written next to a pairing.
func parseDetails(text string) details {
	return details{
		date:  detailDate(text),
		time:  detailTime(text),
		field: detailField(text),
	}
}

func detailDate(text string) string {
	m := labelledDateRe.FindStringSubmatch(text)
	if m == nil {
		m = bareDateRe.FindStringSubmatch(text)
	}
	if m == nil {
		return ""
	}
	iso, _ := extract.ISODate(m[1], m[2], m[3])
	return iso
}

func timeLoc(text string) []int {
	if loc := labelledTimeRe.FindStringSubmatchIndex(text); loc != nil {
		return loc
	}
	return bareTimeRe.FindStringSubmatchIndex(text)
}

func detailTime(text string) string {
	loc := timeLoc(text)
	if loc == nil {
		return ""
	}
	return extract.NormalizeTime(text[loc[2]:loc[3]])
}

// detailField prefers a "Campo:" label and otherwise takes whatever
// follows the kickoff time.
func detailField(text string) string {
	if loc := fieldLabelRe.FindStringIndex(text); loc != nil {
		rest := text[loc[1]:]
		if next := nextLabelRe.FindStringIndex(rest); next != nil {
			rest = rest[:next[0]]
		}
		return strings.Trim(rest, " -–—,;.")
	}

	loc := timeLoc(text)
	if loc == nil {
		return ""
	}
	rest := dateOrHourRe.ReplaceAllString(text[loc[1]:], "")
	rest = strings.Trim(rest, " -–—,;.")
	if rest == "" || textnorm.HasPrefixFold(rest, "jornada") {
		return ""
	}
	return rest
}
