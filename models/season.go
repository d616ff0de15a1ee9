package models

import "time"

// SeasonPhase — фаза соревновательного календаря.
type SeasonPhase string

const (
	PhaseOffseason      SeasonPhase = "offseason"
	PhaseKickoff        SeasonPhase = "kickoff"
	PhaseMasters1       SeasonPhase = "masters1"
	PhaseStage1         SeasonPhase = "stage1"
	PhaseStage1Playoffs SeasonPhase = "stage1_playoffs"
	PhaseMasters2       SeasonPhase = "masters2"
	PhaseStage2         SeasonPhase = "stage2"
	PhaseStage2Playoffs SeasonPhase = "stage2_playoffs"
	PhaseChampions      SeasonPhase = "champions"
)

// Season представляет один сезон лиги.
type Season struct {
	ID           string      `json:"id" db:"id"`
	Year         int         `json:"year" db:"year"`
	CurrentPhase SeasonPhase `json:"current_phase" db:"current_phase"`
	StartDate    time.Time   `json:"start_date" db:"start_date"`
	TeamIDs      []string    `json:"team_ids" db:"team_ids"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

// SeasonStanding — строка сезонной таблицы команды.
type SeasonStanding struct {
	TeamID    string `json:"team_id"`
	TeamName  string `json:"team_name,omitempty"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	RoundDiff int    `json:"round_diff"`
	Placement int    `json:"placement"`
}

// PhaseWindow — окно дат одной фазы в расписании сезона.
type PhaseWindow struct {
	Phase     SeasonPhase `json:"phase"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
}
