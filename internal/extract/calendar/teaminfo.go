package calendar

import (
	"regexp"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

var (
	contactRe = regexp.MustCompile(`(?i)\bcontacto\s*:\s*(.*)$`)
	phoneRe   = regexp.MustCompile(`(?i)\btel[eé]fono\s*:?\s*(.*)$`)
	keyJunk   = strings.NewReplacer("º", "", "ª", "", "'", "", ".", "", "-", " ")
)

// TeamInfo reads the contact and kit block of team. A document without
// one yields an info record carrying only the name.
func TeamInfo(lines []string, team string) league.TeamInfo {
	info := league.TeamInfo{Name: team}
	for i, line := range lines {
		if !textnorm.HasPrefixFold(line, team) {
			continue
		}
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}
		if !textnorm.ContainsFold(line, "contacto") && !textnorm.ContainsFold(next, "contacto") {
			continue
		}

		cursor := i + 1
		if m := contactRe.FindStringSubmatch(line); m != nil {
			info.ContactName = cutAtPhone(m[1])
		} else if m := contactRe.FindStringSubmatch(next); m != nil {
			info.ContactName = cutAtPhone(m[1])
			cursor++
		}

		if cursor < len(lines) && !textnorm.HasPrefixFold(lines[cursor], "telefono") && !isKitTitle(lines[cursor]) {
			info.Address = lines[cursor]
			cursor++
		}
		if cursor < len(lines) {
			if m := phoneRe.FindStringSubmatch(lines[cursor]); m != nil {
				info.Phone = strings.TrimSpace(m[1])
				cursor++
			}
		}

		first, used := parseKit(lines, cursor)
		second, _ := parseKit(lines, cursor+used)
		if !first.Empty() {
			info.FirstKit = &first
		}
		if !second.Empty() {
			info.SecondKit = &second
		}
		return info
	}
	return info
}

func cutAtPhone(s string) string {
	if loc := phoneRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.TrimSpace(s)
}

func isKitTitle(line string) bool {
	return textnorm.ContainsFold(line, "equipacion")
}

// parseKit reads a kit section: a title, an optional "Tipo" line and a
// colour line. It returns the number of lines consumed.
func parseKit(lines []string, start int) (league.Kit, int) {
	if start >= len(lines) || !isKitTitle(lines[start]) {
		return league.Kit{}, 0
	}
	used := 1
	var types, colours map[string]string
	if start+used < len(lines) && textnorm.ContainsFold(lines[start+used], "tipo") {
		types = parsePairs(lines[start+used])
		used++
	}
	if start+used < len(lines) && strings.Contains(lines[start+used], ":") && !isKitTitle(lines[start+used]) {
		colours = parsePairs(lines[start+used])
		used++
	}
	return league.Kit{
		Shirt:      colours["camiseta"],
		Shorts:     colours["pantalon"],
		Socks:      colours["medias"],
		ShirtType:  types["tipo_camiseta"],
		ShortsType: types["tipo_pantalon"],
		SocksType:  types["tipo_medias"],
	}, used
}

var kitKeys = map[string]bool{
	"camiseta": true, "pantalon": true, "medias": true,
	"tipo_camiseta": true, "tipo_pantalon": true, "tipo_medias": true,
}

// parsePairs splits "Key: value Other Key: value" lines. The key of each
// pair is the longest run of trailing words of the previous segment that
// names a kit attribute, or its last word otherwise.
func parsePairs(line string) map[string]string {
	parts := strings.Split(line, ":")
	pairs := make(map[string]string, len(parts))
	if len(parts) < 2 {
		return pairs
	}
	key := normalizeKey(parts[0])
	for j := 1; j < len(parts); j++ {
		value, next := parts[j], ""
		if j < len(parts)-1 {
			value, next = splitKey(parts[j])
		}
		if key != "" {
			pairs[key] = cleanValue(value)
		}
		key = next
	}
	return pairs
}

func splitKey(segment string) (value, key string) {
	words := strings.Fields(segment)
	if len(words) == 0 {
		return "", ""
	}
	for n := len(words); n > 0; n-- {
		candidate := normalizeKey(strings.Join(words[len(words)-n:], " "))
		if kitKeys[candidate] {
			return strings.Join(words[:len(words)-n], " "), candidate
		}
	}
	return strings.Join(words[:len(words)-1], " "), normalizeKey(words[len(words)-1])
}

func normalizeKey(key string) string {
	cleaned := strings.ToLower(textnorm.Fold(keyJunk.Replace(key)))
	return strings.Join(strings.Fields(cleaned), "_")
}

func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	if strings.Trim(value, "-–— ") == "" {
		return ""
	}
	return value
}
