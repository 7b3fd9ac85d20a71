package league

import "sort"

// TopScorerEntry is one player row of a top-scorers table.
type TopScorerEntry struct {
	Player        string   `json:"player"`
	Team          string   `json:"team,omitempty"`
	Group         string   `json:"group,omitempty"`
	MatchesPlayed *int     `json:"matches_played"`
	GoalsTotal    *int     `json:"goals_total"`
	GoalsDetails  string   `json:"goals_details,omitempty"`
	PenaltyGoals  *int     `json:"penalty_goals"`
	GoalsPerMatch *float64 `json:"goals_per_match"`
	RawLines      []string `json:"raw_lines"`
}

func (e TopScorerEntry) goalsKey() int {
	if e.GoalsTotal == nil {
		return -1
	}
	return *e.GoalsTotal
}

// TopScorersTable is a ranked scorer list.
type TopScorersTable struct {
	Title       string           `json:"title,omitempty"`
	Competition string           `json:"competition,omitempty"`
	Category    string           `json:"category,omitempty"`
	Season      string           `json:"season,omitempty"`
	Scorers     []TopScorerEntry `json:"scorers"`
}

// SortScorers orders entries by goals descending, keeping source order for
// ties. Entries without a goal count go last.
func SortScorers(entries []TopScorerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].goalsKey() > entries[j].goalsKey()
	})
}
