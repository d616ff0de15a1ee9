package models

// SwissTeamStatus — состояние команды в швейцарском этапе.
type SwissTeamStatus string

const (
	SwissActive     SwissTeamStatus = "active"
	SwissQualified  SwissTeamStatus = "qualified"
	SwissEliminated SwissTeamStatus = "eliminated"
)

// SwissTeamRecord — турнирная запись команды в швейцарском этапе.
type SwissTeamRecord struct {
	TeamID      string          `json:"team_id"`
	Wins        int             `json:"wins"`
	Losses      int             `json:"losses"`
	RoundDiff   int             `json:"round_diff"`
	OpponentIDs []string        `json:"opponent_ids"`
	Status      SwissTeamStatus `json:"status"`
	Seed        int             `json:"seed"`
}

// SwissMatch — матч швейцарского раунда. Обе команды известны при создании.
type SwissMatch struct {
	MatchID string             `json:"match_id"`
	TeamAID string             `json:"team_a_id"`
	TeamBID string             `json:"team_b_id"`
	Status  BracketMatchStatus `json:"status"`

	WinnerID string       `json:"winner_id,omitempty"`
	LoserID  string       `json:"loser_id,omitempty"`
	Result   *MatchResult `json:"result,omitempty"`
}

// SwissRoundStatus — статус швейцарского раунда.
type SwissRoundStatus string

const (
	SwissRoundInProgress SwissRoundStatus = "in_progress"
	SwissRoundCompleted  SwissRoundStatus = "completed"
)

// SwissRound — один раунд швейцарского этапа.
type SwissRound struct {
	RoundID     string           `json:"round_id"`
	RoundNumber int              `json:"round_number"`
	Matches     []SwissMatch     `json:"matches"`
	Status      SwissRoundStatus `json:"status"`
}

// SwissStage — состояние швейцарского этапа целиком.
type SwissStage struct {
	Rounds            []SwissRound      `json:"rounds"`
	Standings         []SwissTeamRecord `json:"standings"`
	QualifiedTeamIDs  []string          `json:"qualified_team_ids"`
	EliminatedTeamIDs []string          `json:"eliminated_team_ids"`
	CurrentRound      int               `json:"current_round"`
	TotalRounds       int               `json:"total_rounds"`
	WinsToQualify     int               `json:"wins_to_qualify"`
	LossesToEliminate int               `json:"losses_to_eliminate"`
}

// Clone возвращает глубокую копию этапа.
func (s SwissStage) Clone() SwissStage {
	out := s
	out.Rounds = make([]SwissRound, len(s.Rounds))
	for i, r := range s.Rounds {
		out.Rounds[i] = r
		out.Rounds[i].Matches = make([]SwissMatch, len(r.Matches))
		copy(out.Rounds[i].Matches, r.Matches)
	}
	out.Standings = make([]SwissTeamRecord, len(s.Standings))
	for i, rec := range s.Standings {
		out.Standings[i] = rec
		out.Standings[i].OpponentIDs = append([]string(nil), rec.OpponentIDs...)
	}
	out.QualifiedTeamIDs = append([]string(nil), s.QualifiedTeamIDs...)
	out.EliminatedTeamIDs = append([]string(nil), s.EliminatedTeamIDs...)
	return out
}
