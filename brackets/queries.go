package brackets

import (
	"github.com/Nosajool/vct-manager-sub005/models"
)

// GetReadyMatches возвращает все матчи в статусе ready в порядке обхода
// upper → middle → lower → grand final.
func GetReadyMatches(b models.BracketStructure) []models.BracketMatch {
	var ready []models.BracketMatch
	forEachMatch(&b, func(m *models.BracketMatch) {
		if m.Status == models.MatchReady {
			ready = append(ready, *m)
		}
	})
	return ready
}

// GetNextMatch возвращает первый ready-матч в порядке обхода; приоритетов
// сверх порядка обнаружения нет.
func GetNextMatch(b models.BracketStructure) (models.BracketMatch, bool) {
	ready := GetReadyMatches(b)
	if len(ready) == 0 {
		return models.BracketMatch{}, false
	}
	return ready[0], true
}

// GetBracketStatus возвращает агрегированный статус сетки. Правило
// завершения зависит от формата: round robin завершён, когда не осталось
// несыгранных матчей; single elim — когда завершён финал; triple elim —
// когда завершены финалы всех трёх веток; double elim (и по умолчанию) —
// когда завершён гранд-финал.
func GetBracketStatus(b models.BracketStructure) models.BracketStatus {
	if bracketComplete(b) {
		return models.BracketCompleted
	}
	anyCompleted := false
	forEachMatch(&b, func(m *models.BracketMatch) {
		if m.Status == models.MatchCompleted {
			anyCompleted = true
		}
	})
	if anyCompleted {
		return models.BracketInProgress
	}
	return models.BracketNotStarted
}

func bracketComplete(b models.BracketStructure) bool {
	switch b.Format {
	case models.FormatRoundRobin:
		unplayed := false
		forEachMatch(&b, func(m *models.BracketMatch) {
			if m.Status != models.MatchCompleted {
				unplayed = true
			}
		})
		return !unplayed
	case models.FormatSingleElim:
		final := lastRoundSoleMatch(b.Upper)
		return final != nil && final.Status == models.MatchCompleted
	case models.FormatTripleElim:
		upperFinal := lastRoundSoleMatch(b.Upper)
		middleFinal := lastRoundSoleMatch(b.Middle)
		lowerFinal := lastRoundSoleMatch(b.Lower)
		return upperFinal != nil && upperFinal.Status == models.MatchCompleted &&
			middleFinal != nil && middleFinal.Status == models.MatchCompleted &&
			lowerFinal != nil && lowerFinal.Status == models.MatchCompleted
	default:
		return b.GrandFinal != nil && b.GrandFinal.Status == models.MatchCompleted
	}
}

// GetChampion возвращает победителя турнира по правилу формата. Round robin
// единственного чемпиона не имеет: итог определяется таблицей.
func GetChampion(b models.BracketStructure) (string, bool) {
	switch b.Format {
	case models.FormatSingleElim, models.FormatTripleElim:
		final := lastRoundSoleMatch(b.Upper)
		if final != nil && final.Status == models.MatchCompleted && final.WinnerID != "" {
			return final.WinnerID, true
		}
	case models.FormatRoundRobin:
		return "", false
	default:
		if b.GrandFinal != nil && b.GrandFinal.Status == models.MatchCompleted && b.GrandFinal.WinnerID != "" {
			return b.GrandFinal.WinnerID, true
		}
	}
	return "", false
}

// Qualifiers — квалификанты трёх веток triple elimination. Каждое поле
// заполнено только после завершения соответствующего финала.
type Qualifiers struct {
	Alpha string `json:"alpha,omitempty"`
	Beta  string `json:"beta,omitempty"`
	Omega string `json:"omega,omitempty"`
}

// GetQualifiers возвращает квалификантов веток triple elimination.
func GetQualifiers(b models.BracketStructure) Qualifiers {
	var q Qualifiers
	if b.Format != models.FormatTripleElim {
		return q
	}
	if final := lastRoundSoleMatch(b.Upper); final != nil && final.Status == models.MatchCompleted {
		q.Alpha = final.WinnerID
	}
	if final := lastRoundSoleMatch(b.Middle); final != nil && final.Status == models.MatchCompleted {
		q.Beta = final.WinnerID
	}
	if final := lastRoundSoleMatch(b.Lower); final != nil && final.Status == models.MatchCompleted {
		q.Omega = final.WinnerID
	}
	return q
}

// GetFinalPlacements собирает итоговые места из завершённых матчей:
// маршрут проигравшего placement:N даёт место N, маршрут champion —
// место 1 победителю и место 2 второй стороне матча.
func GetFinalPlacements(b models.BracketStructure) map[int]string {
	placements := make(map[int]string)
	forEachMatch(&b, func(m *models.BracketMatch) {
		if m.Status != models.MatchCompleted {
			return
		}
		if m.LoserDestination.Kind == models.DestPlacement && m.LoserDestination.Placement > 0 && m.LoserID != "" {
			placements[m.LoserDestination.Placement] = m.LoserID
		}
		if m.WinnerDestination.Kind == models.DestPlacement && m.WinnerDestination.Placement > 0 && m.WinnerID != "" {
			placements[m.WinnerDestination.Placement] = m.WinnerID
		}
		if m.WinnerDestination.Kind == models.DestChampion {
			if m.WinnerID != "" {
				placements[1] = m.WinnerID
			}
			if m.LoserID != "" {
				placements[2] = m.LoserID
			}
		}
	})
	return placements
}

func lastRoundSoleMatch(rounds []models.BracketRound) *models.BracketMatch {
	if len(rounds) == 0 {
		return nil
	}
	last := rounds[len(rounds)-1]
	if len(last.Matches) == 0 {
		return nil
	}
	return &last.Matches[0]
}
