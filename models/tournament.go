package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	TournamentUpcoming   TournamentStatus = "upcoming"
	TournamentInProgress TournamentStatus = "in_progress"
	TournamentCompleted  TournamentStatus = "completed"
)

// TournamentType — вид соревнования в календаре сезона.
type TournamentType string

const (
	TypeKickoff       TournamentType = "kickoff"
	TypeMasters       TournamentType = "masters"
	TypeStage         TournamentType = "stage"
	TypeStagePlayoffs TournamentType = "stage_playoffs"
	TypeChampions     TournamentType = "champions"
)

// TournamentStage — текущая стадия многостадийного турнира.
type TournamentStage string

const (
	StageSwiss   TournamentStage = "swiss"
	StagePlayoff TournamentStage = "playoff"
)

// Tournament представляет турнир.
type Tournament struct {
	ID        string           `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Type      TournamentType   `json:"type" db:"type"`
	Format    BracketFormat    `json:"format" db:"format"`
	Region    Region           `json:"region" db:"region"`
	SeasonID  string           `json:"season_id,omitempty" db:"season_id"`
	TeamIDs   []string         `json:"team_ids" db:"team_ids"`
	StartDate time.Time        `json:"start_date" db:"start_date"`
	EndDate   time.Time        `json:"end_date" db:"end_date"`
	PrizePool map[int]int      `json:"prize_pool" db:"-"`
	Bracket   BracketStructure `json:"bracket" db:"-"`
	Status    TournamentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`

	// Поля многостадийного турнира (Swiss → playoff). SwissStage
	// присутствует только у турниров формата swiss_to_playoff.
	SwissStage         *SwissStage     `json:"swiss_stage,omitempty" db:"-"`
	CurrentStage       TournamentStage `json:"current_stage,omitempty" db:"current_stage"`
	SwissTeamIDs       []string        `json:"swiss_team_ids,omitempty" db:"swiss_team_ids"`
	PlayoffOnlyTeamIDs []string        `json:"playoff_only_team_ids,omitempty" db:"playoff_only_team_ids"`
}

// IsMultiStage сообщает, является ли турнир многостадийным.
func (t *Tournament) IsMultiStage() bool {
	return t.Format == FormatSwissToPlayoff
}

// ValidationResult — структурированный результат проверки параметров турнира.
// Единственная поверхность валидации: ошибки возвращаются значением, не паникой.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
