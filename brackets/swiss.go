package brackets

import (
	"fmt"
	"log"
	"sort"

	"github.com/Nosajool/vct-manager-sub005/models"
)

// SwissConfig — параметры швейцарского этапа.
type SwissConfig struct {
	TotalRounds       int
	WinsToQualify     int
	LossesToEliminate int
	TournamentID      string
}

// InitializeSwissStage создаёт швейцарский этап и первый раунд. Все
// команды стартуют активными со счётом 0-0, сид равен позиции во входном
// списке. Пары первого раунда межрегиональные по построению: для каждой
// непарной команды берётся первая следующая команда из другого региона;
// оставшиеся без межрегионального соперника (при неравных регионах)
// сводятся между собой по порядку.
func InitializeSwissStage(teamIDs []string, teamRegions map[string]models.Region, cfg SwissConfig) models.SwissStage {
	stage := models.SwissStage{
		CurrentRound:      1,
		TotalRounds:       cfg.TotalRounds,
		WinsToQualify:     cfg.WinsToQualify,
		LossesToEliminate: cfg.LossesToEliminate,
		QualifiedTeamIDs:  []string{},
		EliminatedTeamIDs: []string{},
	}

	for i, id := range teamIDs {
		stage.Standings = append(stage.Standings, models.SwissTeamRecord{
			TeamID:      id,
			Status:      models.SwissActive,
			Seed:        i + 1,
			OpponentIDs: []string{},
		})
	}

	paired := make(map[string]bool, len(teamIDs))
	var pairs [][2]string
	for i, a := range teamIDs {
		if paired[a] {
			continue
		}
		for j := i + 1; j < len(teamIDs); j++ {
			b := teamIDs[j]
			if paired[b] || teamRegions[b] == teamRegions[a] {
				continue
			}
			pairs = append(pairs, [2]string{a, b})
			paired[a], paired[b] = true, true
			break
		}
	}
	var leftover []string
	for _, id := range teamIDs {
		if !paired[id] {
			leftover = append(leftover, id)
		}
	}
	for i := 0; i+1 < len(leftover); i += 2 {
		pairs = append(pairs, [2]string{leftover[i], leftover[i+1]})
	}

	stage.Rounds = append(stage.Rounds, buildSwissRound(cfg.TournamentID, 1, pairs))
	return stage
}

// GenerateNextSwissRound формирует следующий раунд по текущим результатам.
// За пределами totalRounds — no-op. Активные команды группируются по
// точному счёту W-L, группы обрабатываются от лучшей к худшей; внутри
// группы пары собираются сид сверху против сида снизу с пропуском уже
// сыгранных пар. Оставшиеся без пары команды сводятся межгрупповым
// проходом по сидам, с попыткой уклониться от реванша, пока в пуле есть
// альтернатива.
func GenerateNextSwissRound(stage models.SwissStage, tournamentID string) models.SwissStage {
	out := stage.Clone()
	if out.CurrentRound >= out.TotalRounds {
		log.Printf("brackets: swiss stage already at round %d of %d, not generating", out.CurrentRound, out.TotalRounds)
		return out
	}

	var active []*models.SwissTeamRecord
	for i := range out.Standings {
		if out.Standings[i].Status == models.SwissActive {
			active = append(active, &out.Standings[i])
		}
	}

	groups := make(map[string][]*models.SwissTeamRecord)
	for _, rec := range active {
		key := fmt.Sprintf("%d-%d", rec.Wins, rec.Losses)
		groups[key] = append(groups[key], rec)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		gi, gj := groups[keys[i]][0], groups[keys[j]][0]
		if gi.Wins != gj.Wins {
			return gi.Wins > gj.Wins
		}
		return gi.Losses < gj.Losses
	})

	var pairs [][2]string
	var leftover []*models.SwissTeamRecord

	for _, key := range keys {
		group := groups[key]
		sort.Slice(group, func(i, j int) bool { return group[i].Seed < group[j].Seed })

		for len(group) >= 2 {
			top := group[0]
			matchedIdx := -1
			for j := len(group) - 1; j >= 1; j-- {
				if !hasPlayed(top, group[j].TeamID) {
					matchedIdx = j
					break
				}
			}
			if matchedIdx == -1 {
				leftover = append(leftover, top)
				group = group[1:]
				continue
			}
			pairs = append(pairs, [2]string{top.TeamID, group[matchedIdx].TeamID})
			group = append(group[1:matchedIdx], group[matchedIdx+1:]...)
		}
		leftover = append(leftover, group...)
	}

	// межгрупповой проход: по сидам, последовательными парами, с
	// наилучшей попыткой избежать реванша; реванш допустим, если
	// альтернативы не осталось
	sort.Slice(leftover, func(i, j int) bool { return leftover[i].Seed < leftover[j].Seed })
	for len(leftover) >= 2 {
		a := leftover[0]
		idx := 1
		if hasPlayed(a, leftover[idx].TeamID) {
			for j := 2; j < len(leftover); j++ {
				if !hasPlayed(a, leftover[j].TeamID) {
					idx = j
					break
				}
			}
		}
		pairs = append(pairs, [2]string{a.TeamID, leftover[idx].TeamID})
		leftover = append(leftover[1:idx], leftover[idx+1:]...)
	}
	if len(leftover) == 1 {
		log.Printf("brackets: swiss round %d leaves team %s unpaired", out.CurrentRound+1, leftover[0].TeamID)
	}

	out.CurrentRound++
	out.Rounds = append(out.Rounds, buildSwissRound(tournamentID, out.CurrentRound, pairs))
	return out
}

// CompleteSwissMatch фиксирует результат швейцарского матча: обновляет
// счёт сторон, раундовую разницу (модуль разницы матча прибавляется
// победителю и вычитается у проигравшего) и историю соперников, затем
// проверяет пороги квалификации и вылета. Неизвестный matchID — лог и
// исходный этап без изменений.
func CompleteSwissMatch(stage models.SwissStage, matchID string, result models.MatchResult) models.SwissStage {
	out := stage.Clone()

	var match *models.SwissMatch
	var round *models.SwissRound
	for i := range out.Rounds {
		for j := range out.Rounds[i].Matches {
			if out.Rounds[i].Matches[j].MatchID == matchID {
				round = &out.Rounds[i]
				match = &out.Rounds[i].Matches[j]
			}
		}
	}
	if match == nil {
		log.Printf("brackets: complete swiss match: unknown match %q, stage unchanged", matchID)
		return out
	}

	res := result
	match.Result = &res
	match.WinnerID = result.WinnerID
	match.LoserID = result.LoserID
	match.Status = models.MatchCompleted

	diff := result.RoundDiff()
	if diff < 0 {
		diff = -diff
	}

	winner := findSwissRecord(&out, result.WinnerID)
	loser := findSwissRecord(&out, result.LoserID)
	if winner != nil {
		winner.Wins++
		winner.RoundDiff += diff
		winner.OpponentIDs = append(winner.OpponentIDs, result.LoserID)
		if winner.Wins >= out.WinsToQualify {
			winner.Status = models.SwissQualified
			out.QualifiedTeamIDs = append(out.QualifiedTeamIDs, winner.TeamID)
		}
	}
	if loser != nil {
		loser.Losses++
		loser.RoundDiff -= diff
		loser.OpponentIDs = append(loser.OpponentIDs, result.WinnerID)
		if loser.Losses >= out.LossesToEliminate {
			loser.Status = models.SwissEliminated
			out.EliminatedTeamIDs = append(out.EliminatedTeamIDs, loser.TeamID)
		}
	}

	allDone := true
	for _, m := range round.Matches {
		if m.Status != models.MatchCompleted {
			allDone = false
			break
		}
	}
	if allDone {
		round.Status = models.SwissRoundCompleted
	}
	return out
}

// GetSwissStandings возвращает таблицу этапа, отсортированную по цепочке
// тай-брейков: победы по убыванию, поражения по возрастанию, раундовая
// разница по убыванию, сид по возрастанию.
func GetSwissStandings(stage models.SwissStage) []models.SwissTeamRecord {
	standings := make([]models.SwissTeamRecord, len(stage.Standings))
	copy(standings, stage.Standings)
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Losses != b.Losses {
			return a.Losses < b.Losses
		}
		if a.RoundDiff != b.RoundDiff {
			return a.RoundDiff > b.RoundDiff
		}
		return a.Seed < b.Seed
	})
	return standings
}

// IsSwissStageComplete — истина, когда активных команд не осталось.
func IsSwissStageComplete(stage models.SwissStage) bool {
	for _, rec := range stage.Standings {
		if rec.Status == models.SwissActive {
			return false
		}
	}
	return true
}

// IsSwissRoundComplete сообщает, завершён ли текущий раунд этапа.
func IsSwissRoundComplete(stage models.SwissStage) bool {
	if len(stage.Rounds) == 0 {
		return false
	}
	return stage.Rounds[len(stage.Rounds)-1].Status == models.SwissRoundCompleted
}

func buildSwissRound(tournamentID string, roundNumber int, pairs [][2]string) models.SwissRound {
	prefix := ""
	if tournamentID != "" {
		prefix = IDPrefix(tournamentID) + "_"
	}
	round := models.SwissRound{
		RoundID:     fmt.Sprintf("%sswiss-r%d", prefix, roundNumber),
		RoundNumber: roundNumber,
		Status:      models.SwissRoundInProgress,
	}
	for i, pair := range pairs {
		round.Matches = append(round.Matches, models.SwissMatch{
			MatchID: fmt.Sprintf("%sswiss-r%d-m%d", prefix, roundNumber, i+1),
			TeamAID: pair[0],
			TeamBID: pair[1],
			Status:  models.MatchReady,
		})
	}
	return round
}

func findSwissRecord(stage *models.SwissStage, teamID string) *models.SwissTeamRecord {
	for i := range stage.Standings {
		if stage.Standings[i].TeamID == teamID {
			return &stage.Standings[i]
		}
	}
	return nil
}

func hasPlayed(rec *models.SwissTeamRecord, opponentID string) bool {
	for _, id := range rec.OpponentIDs {
		if id == opponentID {
			return true
		}
	}
	return false
}
