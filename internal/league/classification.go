package league

// ClassificationStats holds the nine decoded statistics of a standings row.
// A nil field means the decoder could not recover the value.
type ClassificationStats struct {
	Points         *int `json:"points"`
	Played         *int `json:"played"`
	Wins           *int `json:"wins"`
	Draws          *int `json:"draws"`
	Losses         *int `json:"losses"`
	GoalsFor       *int `json:"goals_for"`
	GoalsAgainst   *int `json:"goals_against"`
	LastPoints     *int `json:"last_points"`
	SanctionPoints *int `json:"sanction_points"`
}

// StatsFromValues maps values in column order onto the stats fields.
func StatsFromValues(values []int) ClassificationStats {
	var stats ClassificationStats
	fields := stats.fields()
	for i := 0; i < len(values) && i < len(fields); i++ {
		*fields[i] = Int(values[i])
	}
	return stats
}

func (s *ClassificationStats) fields() []**int {
	return []**int{
		&s.Points, &s.Played, &s.Wins, &s.Draws, &s.Losses,
		&s.GoalsFor, &s.GoalsAgainst, &s.LastPoints, &s.SanctionPoints,
	}
}

// Consistent reports whether the stats satisfy the standings invariants:
// played equals wins+draws+losses and points equals wins*3+draws-sanction.
func (s ClassificationStats) Consistent() bool {
	for _, f := range s.fields() {
		if *f == nil {
			return false
		}
	}
	if *s.Played != *s.Wins+*s.Draws+*s.Losses {
		return false
	}
	computed := *s.Wins*3 + *s.Draws - *s.SanctionPoints
	return computed >= 0 && computed == *s.Points && *s.LastPoints >= 0 && *s.SanctionPoints >= 0
}

// ClassificationRow is one team entry of a standings table.
type ClassificationRow struct {
	Position  int                 `json:"position"`
	Team      string              `json:"team"`
	Stats     ClassificationStats `json:"stats"`
	Raw       string              `json:"raw"`
	Validated bool                `json:"validated"`
}

// LastMatchTeam is one side of the last-result banner.
type LastMatchTeam struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ClassificationLastMatch is the most recent result printed above the table.
type ClassificationLastMatch struct {
	Matchday *int          `json:"matchday"`
	Date     string        `json:"date,omitempty"`
	HomeTeam LastMatchTeam `json:"home_team"`
	AwayTeam LastMatchTeam `json:"away_team"`
}

// ClassificationTable is a full standings table.
type ClassificationTable struct {
	Headers   []string                 `json:"headers"`
	Rows      []ClassificationRow      `json:"rows"`
	LastMatch *ClassificationLastMatch `json:"last_match,omitempty"`
}
