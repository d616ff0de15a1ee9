package brackets

import (
	"fmt"
	"math"

	"github.com/Nosajool/vct-manager-sub005/models"
)

const grandFinalID = "grandfinal"

// GenerateDoubleElimination строит сетку double elimination. Верхняя ветка
// повторяет single elimination, но каждый проигравший уходит в нижнюю
// ветку, а победитель верхнего финала — в гранд-финал. Нижняя ветка состоит
// из 2×(U−1) раундов, чередующих выбывание из верхней ветки и внутренние
// раунды победителей.
func GenerateDoubleElimination(teamIDs []string, seeding []int) models.BracketStructure {
	n := len(teamIDs)
	numRounds := 1
	if n > 1 {
		numRounds = int(math.Ceil(math.Log2(float64(n))))
	}
	bracketSize := 1 << uint(numRounds)

	slots := applySeeding(teamIDs, seeding, bracketSize)

	structure := models.BracketStructure{Format: models.FormatDoubleElim}
	structure.Upper = buildEliminationRounds(numRounds, bracketSize, slots, "ur", finalToGrandFinal)

	if numRounds >= 2 {
		structure.Lower = buildLowerRounds(numRounds, bracketSize)
		rerouteUpperLosers(structure.Upper, numRounds)
	}

	lowerFinalID := fmt.Sprintf("lr%d-m1", 2*(numRounds-1))
	gf := models.BracketMatch{
		MatchID:           grandFinalID,
		RoundID:           grandFinalID,
		TeamASource:       models.WinnerSource(fmt.Sprintf("ur%d-m1", numRounds)),
		TeamBSource:       models.WinnerSource(lowerFinalID),
		Status:            models.MatchPending,
		WinnerDestination: models.ChampionDestination(),
		LoserDestination:  models.PlacementDestination(2),
	}
	if numRounds < 2 {
		// вырожденная сетка из двух команд: нижней ветки нет
		gf.TeamBSource = models.ByeSource()
	}
	structure.GrandFinal = &gf

	processByes(&structure)
	refreshStatuses(&structure)
	return structure
}

// buildLowerRounds строит нижнюю ветку. Раунд 1 сводит проигравших первого
// верхнего раунда друг с другом; чётные раунды 2k подмешивают проигравших
// верхнего раунда k+1 к победителям предыдущего нижнего раунда; нечётные
// раунды сводят победителей нижней ветки между собой. Победитель последнего
// раунда уходит в гранд-финал, все проигравшие нижней ветки выбывают.
func buildLowerRounds(numUpperRounds, bracketSize int) []models.BracketRound {
	totalRounds := 2 * (numUpperRounds - 1)
	rounds := make([]models.BracketRound, 0, totalRounds)

	for r := 1; r <= totalRounds; r++ {
		matchCount := lowerRoundMatchCount(r, bracketSize)
		round := models.BracketRound{
			RoundID:     fmt.Sprintf("lr%d", r),
			RoundNumber: r,
			BracketType: models.BracketLower,
			Matches:     make([]models.BracketMatch, 0, matchCount),
		}

		for m := 1; m <= matchCount; m++ {
			match := models.BracketMatch{
				MatchID: fmt.Sprintf("lr%d-m%d", r, m),
				RoundID: round.RoundID,
				Status:  models.MatchPending,
			}

			switch {
			case r == 1:
				match.TeamASource = models.LoserSource(fmt.Sprintf("ur1-m%d", 2*m-1))
				match.TeamBSource = models.LoserSource(fmt.Sprintf("ur1-m%d", 2*m))
			case r%2 == 0:
				match.TeamASource = models.LoserSource(fmt.Sprintf("ur%d-m%d", r/2+1, m))
				match.TeamBSource = models.WinnerSource(fmt.Sprintf("lr%d-m%d", r-1, m))
			default:
				match.TeamASource = models.WinnerSource(fmt.Sprintf("lr%d-m%d", r-1, 2*m-1))
				match.TeamBSource = models.WinnerSource(fmt.Sprintf("lr%d-m%d", r-1, 2*m))
			}

			if r == totalRounds {
				match.WinnerDestination = models.MatchDestination(grandFinalID)
			} else if r%2 == 0 {
				match.WinnerDestination = models.MatchDestination(fmt.Sprintf("lr%d-m%d", r+1, (m+1)/2))
			} else {
				match.WinnerDestination = models.MatchDestination(fmt.Sprintf("lr%d-m%d", r+1, m))
			}
			match.LoserDestination = models.EliminatedDestination()

			round.Matches = append(round.Matches, match)
		}
		rounds = append(rounds, round)
	}
	return rounds
}

// lowerRoundMatchCount возвращает количество матчей нижнего раунда r при
// полном размере сетки bracketSize.
func lowerRoundMatchCount(r, bracketSize int) int {
	if r == 1 {
		return bracketSize / 4
	}
	k := r / 2
	if r%2 == 0 {
		return bracketSize >> uint(k+1)
	}
	return bracketSize >> uint(k+2)
}

// rerouteUpperLosers перенаправляет проигравших верхней ветки в нижнюю.
func rerouteUpperLosers(upper []models.BracketRound, numUpperRounds int) {
	for i := range upper {
		r := upper[i].RoundNumber
		for j := range upper[i].Matches {
			m := &upper[i].Matches[j]
			switch {
			case r == 1:
				m.LoserDestination = models.MatchDestination(fmt.Sprintf("lr1-m%d", (j+2)/2))
			case r < numUpperRounds:
				m.LoserDestination = models.MatchDestination(fmt.Sprintf("lr%d-m%d", 2*(r-1), j+1))
			default:
				m.LoserDestination = models.MatchDestination(fmt.Sprintf("lr%d-m1", 2*(numUpperRounds-1)))
			}
		}
	}
}
