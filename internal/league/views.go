package league

// Column is a presentation column, optionally grouping child columns.
type Column struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Children []Column `json:"children,omitempty"`
}

var classificationColumns = []Column{
	{Key: "team", Label: "Equipos"},
	{Key: "points", Label: "Puntos"},
	{Key: "matches", Label: "Partidos", Children: []Column{
		{Key: "played", Label: "J."},
		{Key: "wins", Label: "G."},
		{Key: "draws", Label: "E."},
		{Key: "losses", Label: "P."},
	}},
	{Key: "goals", Label: "Goles", Children: []Column{
		{Key: "for", Label: "F."},
		{Key: "against", Label: "C."},
	}},
	{Key: "recent_form", Label: "Últimos", Children: []Column{{Key: "points", Label: "Puntos"}}},
	{Key: "sanction", Label: "Sanción", Children: []Column{{Key: "points", Label: "Puntos"}}},
}

var topScorerColumns = []Column{
	{Key: "position", Label: "#"},
	{Key: "player", Label: "Jugador"},
	{Key: "team", Label: "Equipo"},
	{Key: "group", Label: "Grupo"},
	{Key: "matches_played", Label: "Partidos"},
	{Key: "goals", Label: "Goles"},
	{Key: "goals_per_match", Label: "Goles/Partido"},
}

// ClassificationRowView is the grouped shape of a standings row.
type ClassificationRowView struct {
	Position int    `json:"position"`
	Team     string `json:"team"`
	Points   *int   `json:"points"`
	Matches  struct {
		Played *int `json:"played"`
		Wins   *int `json:"wins"`
		Draws  *int `json:"draws"`
		Losses *int `json:"losses"`
	} `json:"matches"`
	Goals struct {
		For     *int `json:"for"`
		Against *int `json:"against"`
	} `json:"goals"`
	RecentForm struct {
		Points *int `json:"points"`
	} `json:"recent_form"`
	Sanction struct {
		Points *int `json:"points"`
	} `json:"sanction"`
	Raw string `json:"raw"`
}

// ClassificationView is the presentation shape returned by the API.
type ClassificationView struct {
	Metadata struct {
		Headers []string `json:"headers"`
		Columns []Column `json:"columns"`
	} `json:"metadata"`
	LastMatch *ClassificationLastMatch `json:"last_match,omitempty"`
	Teams     []ClassificationRowView  `json:"teams"`
}

// View returns the grouped presentation of the table.
func (t ClassificationTable) View() ClassificationView {
	var v ClassificationView
	v.Metadata.Headers = t.Headers
	v.Metadata.Columns = classificationColumns
	v.LastMatch = t.LastMatch
	v.Teams = make([]ClassificationRowView, 0, len(t.Rows))
	for _, row := range t.Rows {
		var r ClassificationRowView
		r.Position = row.Position
		r.Team = row.Team
		r.Points = row.Stats.Points
		r.Matches.Played = row.Stats.Played
		r.Matches.Wins = row.Stats.Wins
		r.Matches.Draws = row.Stats.Draws
		r.Matches.Losses = row.Stats.Losses
		r.Goals.For = row.Stats.GoalsFor
		r.Goals.Against = row.Stats.GoalsAgainst
		r.RecentForm.Points = row.Stats.LastPoints
		r.Sanction.Points = row.Stats.SanctionPoints
		r.Raw = row.Raw
		v.Teams = append(v.Teams, r)
	}
	return v
}

// TopScorerRowView is the presentation shape of a scorer entry.
type TopScorerRowView struct {
	Position      int      `json:"position"`
	Player        string   `json:"player"`
	Team          *string  `json:"team"`
	Group         *string  `json:"group"`
	MatchesPlayed *int     `json:"matches_played"`
	Goals         struct {
		Total     *int    `json:"total"`
		Details   *string `json:"details"`
		Penalties *int    `json:"penalties"`
	} `json:"goals"`
	GoalsPerMatch *float64 `json:"goals_per_match"`
	Raw           []string `json:"raw"`
}

// TopScorersView is the presentation shape returned by the API.
type TopScorersView struct {
	Metadata struct {
		Title       string   `json:"title,omitempty"`
		Competition string   `json:"competition,omitempty"`
		Category    string   `json:"category,omitempty"`
		Season      string   `json:"season,omitempty"`
		Columns     []Column `json:"columns"`
	} `json:"metadata"`
	Rows []TopScorerRowView `json:"rows"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// View returns the ranked presentation of the table.
func (t TopScorersTable) View() TopScorersView {
	var v TopScorersView
	v.Metadata.Title = t.Title
	v.Metadata.Competition = t.Competition
	v.Metadata.Category = t.Category
	v.Metadata.Season = t.Season
	v.Metadata.Columns = topScorerColumns
	v.Rows = make([]TopScorerRowView, 0, len(t.Scorers))
	for i, e := range t.Scorers {
		var r TopScorerRowView
		r.Position = i + 1
		r.Player = e.Player
		r.Team = optional(e.Team)
		r.Group = optional(e.Group)
		r.MatchesPlayed = e.MatchesPlayed
		r.Goals.Total = e.GoalsTotal
		r.Goals.Details = optional(e.GoalsDetails)
		r.Goals.Penalties = e.PenaltyGoals
		r.GoalsPerMatch = e.GoalsPerMatch
		r.Raw = append([]string{}, e.RawLines...)
		v.Rows = append(v.Rows, r)
	}
	return v
}
