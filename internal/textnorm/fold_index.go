package textnorm

import (
	"strings"
	"unicode/utf8"
)

// Span is a half-open byte range inside the original text.
type Span struct {
	Start int
	End   int
}

// Key returns the folded alphanumeric runes of text. Separators are dropped
// so that "C.F." and "CF" produce the same key.
func Key(text string) []rune {
	var key []rune
	for _, r := range text {
		if !IsAlnum(r) {
			continue
		}
		key = append(key, []rune(Fold(string(r)))...)
	}
	return key
}

// Index is a folded view of a text that keeps, for every folded rune, the
// byte range of the source rune it came from.
type Index struct {
	text   string
	runes  []rune
	starts []int
	ends   []int
}

// NewIndex folds text for repeated searches.
func NewIndex(text string) *Index {
	idx := &Index{text: text}
	for offset, r := range text {
		if !IsAlnum(r) {
			continue
		}
		end := offset + utf8.RuneLen(r)
		for _, f := range Fold(string(r)) {
			idx.runes = append(idx.runes, f)
			idx.starts = append(idx.starts, offset)
			idx.ends = append(idx.ends, end)
		}
	}
	return idx
}

// Text returns the indexed source text.
func (idx *Index) Text() string { return idx.text }

// Len is the number of folded alphanumeric runes.
func (idx *Index) Len() int { return len(idx.runes) }

// Offset returns the byte offset of the i-th folded rune.
func (idx *Index) Offset(i int) int {
	if i >= len(idx.starts) {
		return len(idx.text)
	}
	return idx.starts[i]
}

// Position returns the index of the first folded rune at or after byte offset.
func (idx *Index) Position(offset int) int {
	for i, start := range idx.starts {
		if start >= offset {
			return i
		}
	}
	return len(idx.starts)
}

// MatchAt reports whether key matches the folded runes starting at i and
// returns the covered byte span.
func (idx *Index) MatchAt(i int, key []rune) (Span, bool) {
	if len(key) == 0 || i < 0 || i+len(key) > len(idx.runes) {
		return Span{}, false
	}
	// A match never starts in the middle of a source rune.
	if i > 0 && idx.starts[i-1] == idx.starts[i] {
		return Span{}, false
	}
	for j, r := range key {
		if idx.runes[i+j] != r {
			return Span{}, false
		}
	}
	return Span{Start: idx.starts[i], End: idx.ends[i+len(key)-1]}, true
}

// Find returns the first occurrence of needle.
func (idx *Index) Find(needle string) (Span, bool) {
	key := Key(needle)
	for i := range idx.runes {
		if span, ok := idx.MatchAt(i, key); ok {
			return span, true
		}
	}
	return Span{}, false
}

// FindFold locates needle inside haystack ignoring case, accents and any
// non-alphanumeric separators. The span refers to haystack bytes.
func FindFold(haystack, needle string) (Span, bool) {
	return NewIndex(haystack).Find(needle)
}

// HasAlnum reports whether text has any alphanumeric rune.
func HasAlnum(text string) bool {
	return strings.IndexFunc(text, IsAlnum) >= 0
}
