package brackets

import (
	"log"

	"github.com/Nosajool/vct-manager-sub005/models"
)

// CompleteMatch фиксирует результат матча и продвигает победителя и
// проигравшего по их маршрутам. Возвращает новую структуру, исходная не
// изменяется. Неизвестный matchID не считается ошибкой: структура
// возвращается без изменений, чтобы повтор устаревшего результата не срывал
// симуляцию сезона.
func CompleteMatch(b models.BracketStructure, matchID, winnerID, loserID string, result *models.MatchResult) models.BracketStructure {
	out := b.Clone()

	match := findMatch(&out, matchID)
	if match == nil {
		log.Printf("brackets: complete match: unknown match %q, bracket unchanged", matchID)
		return out
	}

	match.WinnerID = winnerID
	match.LoserID = loserID
	match.Result = result
	match.Status = models.MatchCompleted

	if match.WinnerDestination.Kind == models.DestMatch {
		propagateTeam(&out, matchID, winnerID, match.WinnerDestination, models.SourceWinner)
	}
	if match.LoserDestination.Kind == models.DestMatch {
		propagateTeam(&out, matchID, loserID, match.LoserDestination, models.SourceLoser)
	}

	// пропагация могла заполнить слот напротив bye
	processByes(&out)
	refreshStatuses(&out)
	return out
}

// propagateTeam назначает команду в слот матча назначения. Сначала ищется
// слот, чей источник ожидает winner/loser именно этого матча; если такого
// нет — первый пустой слот с подходящим типом источника. Если и это не
// удалось, команда отбрасывается с предупреждением (терпимое поведение:
// одна нерешённая пропагация не должна останавливать сезон).
func propagateTeam(b *models.BracketStructure, fromMatchID, teamID string, dest models.Destination, kind models.SlotSourceKind) {
	if teamID == "" {
		return
	}
	target := findMatch(b, dest.MatchID)
	if target == nil {
		log.Printf("brackets: propagate from %s: destination match %q not found, team %s dropped", fromMatchID, dest.MatchID, teamID)
		return
	}

	if target.TeamASource.Kind == kind && target.TeamASource.MatchID == fromMatchID {
		target.TeamAID = teamID
		return
	}
	if target.TeamBSource.Kind == kind && target.TeamBSource.MatchID == fromMatchID {
		target.TeamBID = teamID
		return
	}

	// запасной вариант: первый свободный слот, ожидающий этот тип источника
	if target.TeamASource.Kind == kind && target.TeamAID == "" {
		target.TeamAID = teamID
		return
	}
	if target.TeamBSource.Kind == kind && target.TeamBID == "" {
		target.TeamBID = teamID
		return
	}

	log.Printf("brackets: propagate from %s: no %s slot in match %s, team %s dropped", fromMatchID, kind, target.MatchID, teamID)
}

// refreshStatuses пересчитывает статус каждого матча с нуля: ready тогда и
// только тогда, когда оба слота заполнены и матч ещё не завершён.
// Идемпотентна: повторный вызов ничего не меняет.
func refreshStatuses(b *models.BracketStructure) {
	forEachMatch(b, func(m *models.BracketMatch) {
		if m.Status == models.MatchCompleted {
			return
		}
		if m.TeamAID != "" && m.TeamBID != "" {
			m.Status = models.MatchReady
		} else {
			m.Status = models.MatchPending
		}
	})
}

// findMatch ищет матч по ID по всем веткам: upper → middle → lower →
// grand final.
func findMatch(b *models.BracketStructure, matchID string) *models.BracketMatch {
	if matchID == "" {
		return nil
	}
	for _, rounds := range [][]models.BracketRound{b.Upper, b.Middle, b.Lower} {
		for i := range rounds {
			for j := range rounds[i].Matches {
				if rounds[i].Matches[j].MatchID == matchID {
					return &rounds[i].Matches[j]
				}
			}
		}
	}
	if b.GrandFinal != nil && b.GrandFinal.MatchID == matchID {
		return b.GrandFinal
	}
	return nil
}

// forEachMatch обходит все матчи структуры в порядке upper → middle →
// lower → grand final.
func forEachMatch(b *models.BracketStructure, fn func(*models.BracketMatch)) {
	for _, rounds := range [][]models.BracketRound{b.Upper, b.Middle, b.Lower} {
		for i := range rounds {
			for j := range rounds[i].Matches {
				fn(&rounds[i].Matches[j])
			}
		}
	}
	if b.GrandFinal != nil {
		fn(b.GrandFinal)
	}
}
