package brackets

import (
	"fmt"
	"math"

	"github.com/Nosajool/vct-manager-sub005/models"
)

// GenerateSingleElimination строит сетку single elimination для teamIDs.
// Количество раундов = ceil(log2(n)); сетка дополняется до ближайшей степени
// двойки, недостающие слоты становятся bye. seeding — опциональная
// перестановка слотов (см. applySeeding), nil — тождественная раскладка.
func GenerateSingleElimination(teamIDs []string, seeding []int) models.BracketStructure {
	n := len(teamIDs)
	numRounds := 1
	if n > 1 {
		numRounds = int(math.Ceil(math.Log2(float64(n))))
	}
	bracketSize := 1 << uint(numRounds)

	slots := applySeeding(teamIDs, seeding, bracketSize)

	structure := models.BracketStructure{Format: models.FormatSingleElim}
	structure.Upper = buildEliminationRounds(numRounds, bracketSize, slots, "r", finalToChampion)

	processByes(&structure)
	refreshStatuses(&structure)
	return structure
}

// finalRouting определяет, куда уходят победитель и проигравший последнего
// раунда ветки.
type finalRouting int

const (
	// финал ветки решает чемпиона напрямую
	finalToChampion finalRouting = iota
	// финал ветки отправляет победителя в гранд-финал
	finalToGrandFinal
)

// buildEliminationRounds строит раунды олимпийской ветки с указанным
// префиксом идентификаторов ("r" или "ur"). Раунд 1 заполняется из slots,
// каждый следующий собирает победителей двух матчей снизу.
func buildEliminationRounds(numRounds, bracketSize int, slots []string, idPrefix string, routing finalRouting) []models.BracketRound {
	rounds := make([]models.BracketRound, 0, numRounds)

	for r := 1; r <= numRounds; r++ {
		matchCount := bracketSize >> uint(r)
		round := models.BracketRound{
			RoundID:     fmt.Sprintf("%s%d", idPrefix, r),
			RoundNumber: r,
			BracketType: models.BracketUpper,
			Matches:     make([]models.BracketMatch, 0, matchCount),
		}

		for m := 1; m <= matchCount; m++ {
			match := models.BracketMatch{
				MatchID: fmt.Sprintf("%s%d-m%d", idPrefix, r, m),
				RoundID: round.RoundID,
				Status:  models.MatchPending,
			}

			if r == 1 {
				slotA, slotB := 2*m-2, 2*m-1
				if slots[slotA] != "" {
					match.TeamASource = models.SeedSource(slotA + 1)
					match.TeamAID = slots[slotA]
				} else {
					match.TeamASource = models.ByeSource()
				}
				if slots[slotB] != "" {
					match.TeamBSource = models.SeedSource(slotB + 1)
					match.TeamBID = slots[slotB]
				} else {
					match.TeamBSource = models.ByeSource()
				}
			} else {
				match.TeamASource = models.WinnerSource(fmt.Sprintf("%s%d-m%d", idPrefix, r-1, 2*m-1))
				match.TeamBSource = models.WinnerSource(fmt.Sprintf("%s%d-m%d", idPrefix, r-1, 2*m))
			}

			if r == numRounds {
				switch routing {
				case finalToGrandFinal:
					match.WinnerDestination = models.MatchDestination(grandFinalID)
					match.LoserDestination = models.EliminatedDestination()
				default:
					match.WinnerDestination = models.ChampionDestination()
					match.LoserDestination = models.PlacementDestination(2)
				}
			} else {
				match.WinnerDestination = models.MatchDestination(fmt.Sprintf("%s%d-m%d", idPrefix, r+1, (m+1)/2))
				match.LoserDestination = models.EliminatedDestination()
			}

			round.Matches = append(round.Matches, match)
		}
		rounds = append(rounds, round)
	}
	return rounds
}

// processByes автоматически проводит матчи, в которых заполнен только один
// слот, а второй источник — bye: присутствующая команда объявляется
// победителем и продвигается дальше. Покрывает и первый раунд с неполной
// сеткой, и гранд-финал вырожденной double elimination, куда bye попадает
// при отсутствии нижней ветки. Матч с двумя пустыми слотами (возможен
// только при противоречивом seeding) закрывается без победителя.
func processByes(b *models.BracketStructure) {
	forEachMatch(b, func(m *models.BracketMatch) {
		if m.Status == models.MatchCompleted {
			return
		}
		hasA, hasB := m.TeamAID != "", m.TeamBID != ""
		switch {
		case hasA && !hasB && m.TeamBSource.Kind == models.SourceBye:
			m.Status = models.MatchCompleted
			m.WinnerID = m.TeamAID
		case hasB && !hasA && m.TeamASource.Kind == models.SourceBye:
			m.Status = models.MatchCompleted
			m.WinnerID = m.TeamBID
		case !hasA && !hasB && m.TeamASource.Kind == models.SourceBye && m.TeamBSource.Kind == models.SourceBye:
			// мёртвая пара bye: закрываем слот без победителя
			m.Status = models.MatchCompleted
			return
		default:
			return
		}
		if m.WinnerDestination.Kind == models.DestMatch {
			propagateTeam(b, m.MatchID, m.WinnerID, m.WinnerDestination, models.SourceWinner)
		}
	})
}
