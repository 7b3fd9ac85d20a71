package league

import (
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/textnorm"
)

// MatchFixture is a single pairing of a round. A bye has no away team and
// no scores.
type MatchFixture struct {
	HomeTeam  string  `json:"home_team"`
	AwayTeam  *string `json:"away_team"`
	HomeScore *int    `json:"home_score"`
	AwayScore *int    `json:"away_score"`
	IsBye     bool    `json:"is_bye"`
	Date      string  `json:"date,omitempty"`
	Time      string  `json:"time,omitempty"`
}

// Bye builds a bye fixture for team.
func Bye(team string) MatchFixture {
	return MatchFixture{HomeTeam: team, IsBye: true}
}

// Involves reports whether the fixture names team on either side.
func (f MatchFixture) Involves(team string) bool {
	if textnorm.ContainsFold(f.HomeTeam, team) {
		return true
	}
	return f.AwayTeam != nil && textnorm.ContainsFold(*f.AwayTeam, team)
}

// Matchday is one round with its fixtures in source order.
type Matchday struct {
	Number   int            `json:"number"`
	Fixtures []MatchFixture `json:"fixtures"`
}

// FixturesFor returns the fixtures that involve team, byes included.
func (m Matchday) FixturesFor(team string) []MatchFixture {
	var out []MatchFixture
	for _, f := range m.Fixtures {
		if f.Involves(team) {
			out = append(out, f)
		}
	}
	return out
}

// ForTeam returns a copy of the round restricted to team. Fixtures whose
// stored names glue two teams together are split so team stands alone on
// one side.
func (m Matchday) ForTeam(team string) Matchday {
	out := Matchday{Number: m.Number, Fixtures: []MatchFixture{}}
	for _, f := range m.FixturesFor(team) {
		out.Fixtures = append(out.Fixtures, isolateTeam(f, team))
	}
	return out
}

var clubSuffixes = []string{"C.F.", "CF", "C.F", "F.C.", "FC", "F.C", "C.D.", "CD", "U.D.", "UD", "A.D.", "AD"}

func isClubSuffix(text string) bool {
	key := string(textnorm.Key(text))
	if key == "" {
		return true
	}
	for _, suffix := range clubSuffixes {
		if key == string(textnorm.Key(suffix)) {
			return true
		}
	}
	return false
}

// splitAround locates team inside name and returns the text before and
// after the match.
func splitAround(name, team string) (before, after string, ok bool) {
	span, found := textnorm.FindFold(name, team)
	if !found {
		return "", "", false
	}
	before = strings.Trim(name[:span.Start], " -,")
	after = strings.Trim(name[span.End:], " -,")
	return before, after, true
}

func isolateTeam(f MatchFixture, team string) MatchFixture {
	if f.IsBye {
		if _, after, ok := splitAround(f.HomeTeam, team); ok && isClubSuffix(after) {
			f.HomeTeam = team
		}
		return f
	}

	away := ""
	if f.AwayTeam != nil {
		away = *f.AwayTeam
	}

	if before, after, ok := splitAround(f.HomeTeam, team); ok {
		switch {
		case before != "" && isClubSuffix(after):
			// "REAL SPORT REAL TAJO" is really both sides of the pairing.
			f.HomeTeam = before
			f.AwayTeam = String(team)
		case before == "" && !isClubSuffix(after):
			f.HomeTeam = team
			f.AwayTeam = String(after)
		case before == "":
			f.HomeTeam = team
		}
		return f
	}

	if before, after, ok := splitAround(away, team); ok && (before == "" || isClubSuffix(after)) {
		f.AwayTeam = String(team)
	}
	return f
}

// MatchResult is a played fixture of a results bulletin.
type MatchResult struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

// MatchdayResults is the results-only shape of a round.
type MatchdayResults struct {
	Competition string        `json:"competition"`
	Season      string        `json:"season"`
	Matchday    int           `json:"matchday"`
	Matches     []MatchResult `json:"matches"`
}
