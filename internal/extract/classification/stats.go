package classification

import (
	"regexp"
	"strconv"
	"strings"
)

// statCount is the number of statistics per standings row.
const statCount = 9

// widths lists the candidate digit widths per statistic, widest first.
var widths = [statCount][]int{
	{3, 2, 1},
	{2, 1}, {2, 1}, {2, 1}, {2, 1},
	{2, 1}, {2, 1}, {2, 1}, {2, 1},
}

var digitsRe = regexp.MustCompile(`\d+`)

// DecodeStats recovers the nine statistics from a stats section. The
// boolean reports whether the values passed the consistency check; when it
// is false the values come from the padded fallback.
func DecodeStats(section string) ([]int, bool) {
	tokens := digitsRe.FindAllString(section, -1)
	if len(tokens) == 0 {
		return padValues(nil, section), false
	}

	numbers := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		n, _ := strconv.Atoi(tok)
		numbers = append(numbers, n)
	}

	if len(numbers) >= statCount && consistent(numbers[:statCount]) {
		return numbers[:statCount], true
	}

	joined := strings.Join(tokens, "")
	if values := segment(joined); values != nil {
		return values, true
	}

	if len(numbers) >= statCount {
		return numbers[:statCount], false
	}

	// A lone glued run that could not be segmented carries no reliable
	// leading value to pad with.
	if len(tokens) == 1 && len(joined) > 2 {
		return padValues(nil, joined), false
	}
	return padValues(numbers, joined), false
}

// padValues fills missing trailing statistics with the last decoded value,
// or zero when nothing was decoded or every digit is zero.
func padValues(values []int, section string) []int {
	out := append([]int(nil), values...)
	fill := 0
	if len(out) > 0 && !allZeroDigits(section) {
		fill = out[len(out)-1]
	}
	for len(out) < statCount {
		out = append(out, fill)
	}
	return out
}

func allZeroDigits(section string) bool {
	for _, r := range section {
		if r >= '1' && r <= '9' {
			return false
		}
	}
	return true
}

// segment splits a digit run into nine statistics with a depth-first
// search. The first consistent segmentation, widest fields first, wins.
func segment(digits string) []int {
	if digits == "" {
		return nil
	}
	values := make([]int, 0, statCount)
	var walk func(stat, pos int) bool
	walk = func(stat, pos int) bool {
		if stat == statCount {
			return pos == len(digits) && consistent(values)
		}
		if len(digits)-pos < statCount-stat {
			return false
		}
		for _, width := range widths[stat] {
			if pos+width > len(digits) {
				continue
			}
			n, _ := strconv.Atoi(digits[pos : pos+width])
			values = append(values, n)
			if partialValid(values) && walk(stat+1, pos+width) {
				return true
			}
			values = values[:len(values)-1]
		}
		return false
	}
	if walk(0, 0) {
		return values
	}
	return nil
}

// partialValid checks that the results decoded so far never exceed the
// played count.
func partialValid(values []int) bool {
	if len(values) <= 1 {
		return true
	}
	played, sum := values[1], 0
	for i := 2; i < len(values) && i <= 4; i++ {
		sum += values[i]
		if sum > played {
			return false
		}
	}
	return true
}

func consistent(values []int) bool {
	if len(values) < statCount {
		return false
	}
	points, played, wins, draws, losses := values[0], values[1], values[2], values[3], values[4]
	last, sanction := values[7], values[8]
	if played != wins+draws+losses {
		return false
	}
	computed := wins*3 + draws - sanction
	return computed >= 0 && computed == points && last >= 0 && sanction >= 0
}
