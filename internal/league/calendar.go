package league

// Kit describes one team kit.
type Kit struct {
	Shirt      string `json:"shirt,omitempty"`
	Shorts     string `json:"shorts,omitempty"`
	Socks      string `json:"socks,omitempty"`
	ShirtType  string `json:"shirt_type,omitempty"`
	ShortsType string `json:"shorts_type,omitempty"`
	SocksType  string `json:"socks_type,omitempty"`
}

// Empty reports whether no kit attribute was recovered.
func (k Kit) Empty() bool {
	return k == Kit{}
}

// TeamInfo is the contact and kit block of the tracked team.
type TeamInfo struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	FirstKit    *Kit   `json:"first_kit,omitempty"`
	SecondKit   *Kit   `json:"second_kit,omitempty"`
}

// CalendarMatch is one round of the tracked team's season.
type CalendarMatch struct {
	Stage       string `json:"stage"`
	Matchday    int    `json:"matchday"`
	MatchDate   string `json:"match_date,omitempty"`
	Opponent    string `json:"opponent"`
	IsHome      bool   `json:"is_home"`
	KickoffTime string `json:"kickoff_time,omitempty"`
	Field       string `json:"field,omitempty"`
}

// IsBye reports whether the tracked team rests this round.
func (m CalendarMatch) IsBye() bool {
	return m.Opponent == ByeOpponent
}

// ByeOpponent is the opponent recorded for a bye round.
const ByeOpponent = "Descansa"

// TeamCalendar is the season schedule of one team.
type TeamCalendar struct {
	Team        string          `json:"team"`
	Competition string          `json:"competition"`
	Season      string          `json:"season"`
	Matches     []CalendarMatch `json:"matches"`
	TeamInfo    TeamInfo        `json:"team_info"`
}
