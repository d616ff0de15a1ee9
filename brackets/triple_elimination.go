package brackets

import (
	"fmt"
	"log"

	"github.com/Nosajool/vct-manager-sub005/models"
)

// GenerateTripleElimination строит фиксированную сетку triple elimination на
// 12 команд (16 слотов): три параллельные ветки Alpha (0 поражений), Beta
// (1 поражение) и Omega (2 поражения), каждая со своим квалификантом,
// гранд-финала нет. Сиды 1–4 получают bye сразу во второй верхний раунд,
// сиды 5–12 играют первый. Формат намеренно не параметризован — это
// контракт Kickoff.
func GenerateTripleElimination(teamIDs []string, seeding []int) models.BracketStructure {
	if len(teamIDs) != 12 {
		log.Printf("brackets: triple elimination expects 12 teams, got %d", len(teamIDs))
	}
	slots := applySeeding(teamIDs, seeding, 12)

	structure := models.BracketStructure{Format: models.FormatTripleElim}
	structure.Upper = buildTripleUpper(slots)
	structure.Middle = buildTripleMiddle()
	structure.Lower = buildTripleLower()

	refreshStatuses(&structure)
	return structure
}

// buildTripleUpper строит верхнюю ветку: UR1 — сиды 5–12 (пары 5–12, 6–11,
// 7–10, 8–9), UR2 — bye-команды против победителей UR1, UR3 —
// полуфиналы, UR4 — верхний финал. Bye-команды занимают слот A второго
// раунда уже при построении, отдельного прохода по bye не требуется.
func buildTripleUpper(slots []string) []models.BracketRound {
	ur1 := models.BracketRound{RoundID: "ur1", RoundNumber: 1, BracketType: models.BracketUpper}
	ur1Pairs := [4][2]int{{5, 12}, {6, 11}, {7, 10}, {8, 9}}
	for i, pair := range ur1Pairs {
		m := i + 1
		ur1.Matches = append(ur1.Matches, models.BracketMatch{
			MatchID:           fmt.Sprintf("ur1-m%d", m),
			RoundID:           "ur1",
			TeamASource:       models.SeedSource(pair[0]),
			TeamAID:           slotTeam(slots, pair[0]),
			TeamBSource:       models.SeedSource(pair[1]),
			TeamBID:           slotTeam(slots, pair[1]),
			Status:            models.MatchPending,
			WinnerDestination: models.MatchDestination(fmt.Sprintf("ur2-m%d", m)),
			LoserDestination:  models.MatchDestination(fmt.Sprintf("mr1-m%d", m)),
		})
	}

	ur2 := models.BracketRound{RoundID: "ur2", RoundNumber: 2, BracketType: models.BracketUpper}
	for m := 1; m <= 4; m++ {
		ur2.Matches = append(ur2.Matches, models.BracketMatch{
			MatchID:           fmt.Sprintf("ur2-m%d", m),
			RoundID:           "ur2",
			TeamASource:       models.SeedSource(m),
			TeamAID:           slotTeam(slots, m),
			TeamBSource:       models.WinnerSource(fmt.Sprintf("ur1-m%d", m)),
			Status:            models.MatchPending,
			WinnerDestination: models.MatchDestination(fmt.Sprintf("ur3-m%d", (m+1)/2)),
			LoserDestination:  models.MatchDestination(fmt.Sprintf("mr1-m%d", m)),
		})
	}

	ur3 := models.BracketRound{RoundID: "ur3", RoundNumber: 3, BracketType: models.BracketUpper}
	for m := 1; m <= 2; m++ {
		ur3.Matches = append(ur3.Matches, models.BracketMatch{
			MatchID:           fmt.Sprintf("ur3-m%d", m),
			RoundID:           "ur3",
			TeamASource:       models.WinnerSource(fmt.Sprintf("ur2-m%d", 2*m-1)),
			TeamBSource:       models.WinnerSource(fmt.Sprintf("ur2-m%d", 2*m)),
			Status:            models.MatchPending,
			WinnerDestination: models.MatchDestination("ur4-m1"),
			LoserDestination:  models.MatchDestination(fmt.Sprintf("mr3-m%d", m)),
		})
	}

	ur4 := models.BracketRound{RoundID: "ur4", RoundNumber: 4, BracketType: models.BracketUpper}
	ur4.Matches = append(ur4.Matches, models.BracketMatch{
		MatchID:           "ur4-m1",
		RoundID:           "ur4",
		TeamASource:       models.WinnerSource("ur3-m1"),
		TeamBSource:       models.WinnerSource("ur3-m2"),
		Status:            models.MatchPending,
		WinnerDestination: models.PlacementDestination(1), // квалификант Alpha
		LoserDestination:  models.MatchDestination("mr5-m1"),
	})

	return []models.BracketRound{ur1, ur2, ur3, ur4}
}

// buildTripleMiddle строит ветку Beta: MR1 сводит проигравших UR1 и UR2
// (попарно, тот же индекс матча), MR2 — победителей MR1, MR3 подмешивает
// проигравших UR3, MR4 — полуфинал ветки, MR5 — средний финал против
// проигравшего верхнего финала.
func buildTripleMiddle() []models.BracketRound {
	mr1 := models.BracketRound{RoundID: "mr1", RoundNumber: 1, BracketType: models.BracketMiddle}
	for m := 1; m <= 4; m++ {
		mr1.Matches = append(mr1.Matches, models.BracketMatch{
			MatchID:           fmt.Sprintf("mr1-m%d", m),
			RoundID:           "mr1",
			TeamASource:       models.LoserSource(fmt.Sprintf("ur1-m%d", m)),
			TeamBSource:       models.LoserSource(fmt.Sprintf("ur2-m%d", m)),
			Status:            models.MatchPending,
			WinnerDestination: models.MatchDestination(fmt.Sprintf("mr2-m%d", (m+1)/2)),
			LoserDestination:  models.MatchDestination(fmt.Sprintf("lr1-m%d", (m+1)/2)),
		})
	}

	mr2 := models.BracketRound{RoundID: "mr2", RoundNumber: 2, BracketType: models.BracketMiddle}
	for m := 1; m <= 2; m++ {
		mr2.Matches = append(mr2.Matches, models.BracketMatch{
			MatchID:           fmt.Sprintf("mr2-m%d", m),
			RoundID:           "mr2",
			TeamASource:       models.WinnerSource(fmt.Sprintf("mr1-m%d", 2*m-1)),
			TeamBSource:       models.WinnerSource(fmt.Sprintf("mr1-m%d", 2*m)),
			Status:            models.MatchPending,
			WinnerDestination: models.MatchDestination(fmt.Sprintf("mr3-m%d", m)),
			LoserDestination:  models.MatchDestination(fmt.Sprintf("lr2-m%d", m)),
		})
	}

	mr3 := models.BracketRound{RoundID: "mr3", RoundNumber: 3, BracketType: models.BracketMiddle}
	for m := 1; m <= 2; m++ {
		mr3.Matches = append(mr3.Matches, models.BracketMatch{
			MatchID:           fmt.Sprintf("mr3-m%d", m),
			RoundID:           "mr3",
			TeamASource:       models.LoserSource(fmt.Sprintf("ur3-m%d", m)),
			TeamBSource:       models.WinnerSource(fmt.Sprintf("mr2-m%d", m)),
			Status:            models.MatchPending,
			WinnerDestination: models.MatchDestination("mr4-m1"),
			LoserDestination:  models.MatchDestination(fmt.Sprintf("lr3-m%d", m)),
		})
	}

	mr4 := models.BracketRound{RoundID: "mr4", RoundNumber: 4, BracketType: models.BracketMiddle}
	mr4.Matches = append(mr4.Matches, models.BracketMatch{
		MatchID:           "mr4-m1",
		RoundID:           "mr4",
		TeamASource:       models.WinnerSource("mr3-m1"),
		TeamBSource:       models.WinnerSource("mr3-m2"),
		Status:            models.MatchPending,
		WinnerDestination: models.MatchDestination("mr5-m1"),
		LoserDestination:  models.MatchDestination("lr5-m1"),
	})

	mr5 := models.BracketRound{RoundID: "mr5", RoundNumber: 5, BracketType: models.BracketMiddle}
	mr5.Matches = append(mr5.Matches, models.BracketMatch{
		MatchID:           "mr5-m1",
		RoundID:           "mr5",
		TeamASource:       models.LoserSource("ur4-m1"),
		TeamBSource:       models.WinnerSource("mr4-m1"),
		Status:            models.MatchPending,
		WinnerDestination: models.PlacementDestination(2), // квалификант Beta
		LoserDestination:  models.MatchDestination("lr6-m1"),
	})

	return []models.BracketRound{mr1, mr2, mr3, mr4, mr5}
}

// buildTripleLower строит ветку Omega из проигравших средней ветки; все её
// проигравшие выбывают, кроме финалистов (места 3 и 4).
func buildTripleLower() []models.BracketRound {
	lr1 := models.BracketRound{RoundID: "lr1", RoundNumber: 1, BracketType: models.BracketLower}
	for m := 1; m <= 2; m++ {
		lr1.Matches = append(lr1.Matches, models.BracketMatch{
			MatchID:           fmt.Sprintf("lr1-m%d", m),
			RoundID:           "lr1",
			TeamASource:       models.LoserSource(fmt.Sprintf("mr1-m%d", 2*m-1)),
			TeamBSource:       models.LoserSource(fmt.Sprintf("mr1-m%d", 2*m)),
			Status:            models.MatchPending,
			WinnerDestination: models.MatchDestination(fmt.Sprintf("lr2-m%d", m)),
			LoserDestination:  models.EliminatedDestination(),
		})
	}

	lr2 := models.BracketRound{RoundID: "lr2", RoundNumber: 2, BracketType: models.BracketLower}
	for m := 1; m <= 2; m++ {
		lr2.Matches = append(lr2.Matches, models.BracketMatch{
			MatchID:           fmt.Sprintf("lr2-m%d", m),
			RoundID:           "lr2",
			TeamASource:       models.LoserSource(fmt.Sprintf("mr2-m%d", m)),
			TeamBSource:       models.WinnerSource(fmt.Sprintf("lr1-m%d", m)),
			Status:            models.MatchPending,
			WinnerDestination: models.MatchDestination(fmt.Sprintf("lr3-m%d", m)),
			LoserDestination:  models.EliminatedDestination(),
		})
	}

	lr3 := models.BracketRound{RoundID: "lr3", RoundNumber: 3, BracketType: models.BracketLower}
	for m := 1; m <= 2; m++ {
		lr3.Matches = append(lr3.Matches, models.BracketMatch{
			MatchID:           fmt.Sprintf("lr3-m%d", m),
			RoundID:           "lr3",
			TeamASource:       models.LoserSource(fmt.Sprintf("mr3-m%d", m)),
			TeamBSource:       models.WinnerSource(fmt.Sprintf("lr2-m%d", m)),
			Status:            models.MatchPending,
			WinnerDestination: models.MatchDestination("lr4-m1"),
			LoserDestination:  models.EliminatedDestination(),
		})
	}

	lr4 := models.BracketRound{RoundID: "lr4", RoundNumber: 4, BracketType: models.BracketLower}
	lr4.Matches = append(lr4.Matches, models.BracketMatch{
		MatchID:           "lr4-m1",
		RoundID:           "lr4",
		TeamASource:       models.WinnerSource("lr3-m1"),
		TeamBSource:       models.WinnerSource("lr3-m2"),
		Status:            models.MatchPending,
		WinnerDestination: models.MatchDestination("lr5-m1"),
		LoserDestination:  models.EliminatedDestination(),
	})

	lr5 := models.BracketRound{RoundID: "lr5", RoundNumber: 5, BracketType: models.BracketLower}
	lr5.Matches = append(lr5.Matches, models.BracketMatch{
		MatchID:           "lr5-m1",
		RoundID:           "lr5",
		TeamASource:       models.LoserSource("mr4-m1"),
		TeamBSource:       models.WinnerSource("lr4-m1"),
		Status:            models.MatchPending,
		WinnerDestination: models.MatchDestination("lr6-m1"),
		LoserDestination:  models.EliminatedDestination(),
	})

	lr6 := models.BracketRound{RoundID: "lr6", RoundNumber: 6, BracketType: models.BracketLower}
	lr6.Matches = append(lr6.Matches, models.BracketMatch{
		MatchID:           "lr6-m1",
		RoundID:           "lr6",
		TeamASource:       models.LoserSource("mr5-m1"),
		TeamBSource:       models.WinnerSource("lr5-m1"),
		Status:            models.MatchPending,
		WinnerDestination: models.PlacementDestination(3), // квалификант Omega
		LoserDestination:  models.PlacementDestination(4),
	})

	return []models.BracketRound{lr1, lr2, lr3, lr4, lr5, lr6}
}

// slotTeam возвращает команду слота seed (1-based) или пустую строку.
func slotTeam(slots []string, seed int) string {
	if seed < 1 || seed > len(slots) {
		return ""
	}
	return slots[seed-1]
}
