// Package textnorm holds the text normalization primitives shared by every
// extractor: whitespace cleanup, accent folding and fold-insensitive search.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var spaceReplacer = strings.NewReplacer("\u00a0", " ", "\u2007", " ", "\u202f", " ")

// NormalizeWhitespace maps non-breaking and narrow spaces to ASCII spaces,
// collapses whitespace runs and trims both ends.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(spaceReplacer.Replace(text)), " ")
}

func stripMarks(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// Fold removes accents and uppercases text so "Equipación" and
// "EQUIPACION" compare equal.
func Fold(text string) string {
	return strings.ToUpper(stripMarks(text))
}

// NormalizeTeamName is the lowercase folded form used for containment checks.
func NormalizeTeamName(name string) string {
	return strings.ToLower(NormalizeWhitespace(stripMarks(name)))
}

// ContainsFold reports whether needle occurs in haystack ignoring case,
// accents and whitespace differences.
func ContainsFold(haystack, needle string) bool {
	n := NormalizeTeamName(needle)
	if n == "" {
		return false
	}
	return strings.Contains(NormalizeTeamName(haystack), n)
}

// EqualFold compares two names after folding and whitespace cleanup.
func EqualFold(a, b string) bool {
	return NormalizeTeamName(a) == NormalizeTeamName(b)
}

// HasPrefixFold reports whether text starts with prefix after folding.
func HasPrefixFold(text, prefix string) bool {
	return strings.HasPrefix(NormalizeTeamName(text), NormalizeTeamName(prefix))
}

// HasLetter reports whether text contains at least one letter.
func HasLetter(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// IsAlnum reports whether r takes part in fold-insensitive matching.
func IsAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
