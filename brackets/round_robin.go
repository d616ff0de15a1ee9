package brackets

import (
	"fmt"

	"github.com/Nosajool/vct-manager-sub005/models"
)

// GenerateRoundRobin строит круговой этап: команды делятся на groups
// последовательных корзин (по умолчанию одна), каждая неупорядоченная пара
// внутри корзины играет один матч. Обе команды известны сразу, поэтому все
// матчи создаются в статусе ready. Места здесь не разыгрываются сеткой —
// оба маршрута ведут в placement 0, итог определяется таблицей.
func GenerateRoundRobin(teamIDs []string, groups int) models.BracketStructure {
	if groups < 1 {
		groups = 1
	}
	if groups > len(teamIDs) {
		groups = len(teamIDs)
	}

	structure := models.BracketStructure{Format: models.FormatRoundRobin}

	groupSize := len(teamIDs) / groups
	remainder := len(teamIDs) % groups
	start := 0

	for g := 1; g <= groups; g++ {
		size := groupSize
		if g <= remainder {
			size++
		}
		bucket := teamIDs[start : start+size]
		start += size

		round := models.BracketRound{
			RoundID:     fmt.Sprintf("group%d", g),
			RoundNumber: g,
			BracketType: models.BracketUpper,
		}

		matchNum := 0
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				matchNum++
				round.Matches = append(round.Matches, models.BracketMatch{
					MatchID:           fmt.Sprintf("group%d-m%d", g, matchNum),
					RoundID:           round.RoundID,
					TeamASource:       models.SeedSource(i + 1),
					TeamBSource:       models.SeedSource(j + 1),
					TeamAID:           bucket[i],
					TeamBID:           bucket[j],
					Status:            models.MatchReady,
					WinnerDestination: models.PlacementDestination(0),
					LoserDestination:  models.PlacementDestination(0),
				})
			}
		}
		structure.Upper = append(structure.Upper, round)
	}

	return structure
}
