package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateTokenRe = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})$`)

// ISODate converts day, month and year parts to YYYY-MM-DD. Two-digit
// years are taken as 20xx.
func ISODate(day, month, year string) (string, bool) {
	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if errD != nil || errM != nil || errY != nil {
		return "", false
	}
	switch len(year) {
	case 2:
		y += 2000
	case 4:
	default:
		return "", false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// NormalizeDate rewrites dd-mm-yyyy, dd/mm/yyyy and two-digit year forms as
// ISO dates. Unparseable input comes back with slashes turned into dashes.
func NormalizeDate(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if m := dateTokenRe.FindStringSubmatch(cleaned); m != nil {
		if iso, ok := ISODate(m[1], m[2], m[3]); ok {
			return iso
		}
	}
	return strings.ReplaceAll(cleaned, "/", "-")
}

var timeTokenRe = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})$`)

// NormalizeTime renders H:MM or H.MM as HH:MM.
func NormalizeTime(raw string) string {
	m := timeTokenRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return strings.TrimSpace(raw)
	}
	h, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%02d:%s", h, m[2])
}
