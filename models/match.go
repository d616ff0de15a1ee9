package models

import "time"

// MapScore хранит счёт одной карты в матче, со стороны победителя.
type MapScore struct {
	MapName      string `json:"map_name,omitempty"`
	WinnerRounds int    `json:"winner_rounds"`
	LoserRounds  int    `json:"loser_rounds"`
}

// MatchResult — результат одного матча, поступающий от симулятора.
// Для движка сетки это непрозрачное значение: используются только
// winner/loser и счёт по картам для раундовой разницы.
type MatchResult struct {
	WinnerID string     `json:"winner_id"`
	LoserID  string     `json:"loser_id"`
	Maps     []MapScore `json:"maps"`
	PlayedAt time.Time  `json:"played_at,omitempty"`
}

// RoundDiff возвращает суммарную раундовую разницу матча со стороны победителя.
func (r MatchResult) RoundDiff() int {
	diff := 0
	for _, m := range r.Maps {
		diff += m.WinnerRounds - m.LoserRounds
	}
	return diff
}

// RoundsFor возвращает (выигранные, проигранные) раунды для указанной команды.
func (r MatchResult) RoundsFor(teamID string) (won, lost int) {
	for _, m := range r.Maps {
		if teamID == r.WinnerID {
			won += m.WinnerRounds
			lost += m.LoserRounds
		} else if teamID == r.LoserID {
			won += m.LoserRounds
			lost += m.WinnerRounds
		}
	}
	return won, lost
}

// StoredMatchResult — строка журнала результатов в БД.
type StoredMatchResult struct {
	ID           int         `json:"id" db:"id"`
	TournamentID string      `json:"tournament_id" db:"tournament_id"`
	MatchUID     string      `json:"match_uid" db:"match_uid"`
	Result       MatchResult `json:"result" db:"-"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}
