package brackets

import (
	"testing"

	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swissConfig() SwissConfig {
	return SwissConfig{TotalRounds: 3, WinsToQualify: 2, LossesToEliminate: 2}
}

func TestInitializeSwissStageCrossRegionalPairing(t *testing.T) {
	teams := []string{"am1", "em1", "pc1", "ch1", "am2", "em2", "pc2", "ch2"}
	regions := map[string]models.Region{
		"am1": models.RegionAmericas, "am2": models.RegionAmericas,
		"em1": models.RegionEMEA, "em2": models.RegionEMEA,
		"pc1": models.RegionPacific, "pc2": models.RegionPacific,
		"ch1": models.RegionChina, "ch2": models.RegionChina,
	}

	stage := InitializeSwissStage(teams, regions, swissConfig())

	require.Len(t, stage.Rounds, 1)
	require.Len(t, stage.Rounds[0].Matches, 4)
	assert.Equal(t, 1, stage.CurrentRound)
	assert.Equal(t, "swiss-r1-m1", stage.Rounds[0].Matches[0].MatchID)

	for _, m := range stage.Rounds[0].Matches {
		assert.NotEqual(t, regions[m.TeamAID], regions[m.TeamBID],
			"round 1 pair %s vs %s must be cross-regional", m.TeamAID, m.TeamBID)
		assert.Equal(t, models.MatchReady, m.Status)
	}

	for i, rec := range stage.Standings {
		assert.Equal(t, teams[i], rec.TeamID)
		assert.Equal(t, i+1, rec.Seed)
		assert.Equal(t, models.SwissActive, rec.Status)
		assert.Zero(t, rec.Wins)
	}
}

func TestCompleteSwissMatchUpdatesRecords(t *testing.T) {
	teams := []string{"a", "b", "c", "d"}
	regions := map[string]models.Region{} // один регион: пары по порядку
	stage := InitializeSwissStage(teams, regions, swissConfig())

	result := models.MatchResult{
		WinnerID: "a",
		LoserID:  "b",
		Maps: []models.MapScore{
			{MapName: "Bind", WinnerRounds: 13, LoserRounds: 5},
			{MapName: "Haven", WinnerRounds: 13, LoserRounds: 10},
		},
	}
	out := CompleteSwissMatch(stage, "swiss-r1-m1", result)

	// исходный этап не изменился
	assert.Zero(t, stage.Standings[0].Wins)

	winner := findSwissRecord(&out, "a")
	loser := findSwissRecord(&out, "b")
	require.NotNil(t, winner)
	require.NotNil(t, loser)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 11, winner.RoundDiff)
	assert.Equal(t, []string{"b"}, winner.OpponentIDs)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, -11, loser.RoundDiff)

	// раунд завершается, когда сыграны все его матчи
	assert.False(t, IsSwissRoundComplete(out))
	out = CompleteSwissMatch(out, "swiss-r1-m2", resultFor("c", "d"))
	assert.True(t, IsSwissRoundComplete(out))
}

func TestCompleteSwissMatchUnknownIDIsAbsorbed(t *testing.T) {
	stage := InitializeSwissStage([]string{"a", "b"}, nil, swissConfig())

	out := CompleteSwissMatch(stage, "no-such-match", resultFor("a", "b"))

	assert.Equal(t, stage, out)
}

func TestSwissQualificationAndElimination(t *testing.T) {
	teams := []string{"a", "b", "c", "d"}
	stage := InitializeSwissStage(teams, nil, swissConfig())

	// раунд 1: a > b, c > d
	stage = CompleteSwissMatch(stage, "swiss-r1-m1", resultFor("a", "b"))
	stage = CompleteSwissMatch(stage, "swiss-r1-m2", resultFor("c", "d"))

	// раунд 2: группы 1-0 {a,c} и 0-1 {b,d}
	stage = GenerateNextSwissRound(stage, "")
	require.Len(t, stage.Rounds, 2)
	r2 := stage.Rounds[1]
	require.Len(t, r2.Matches, 2)
	assert.Equal(t, "a", r2.Matches[0].TeamAID)
	assert.Equal(t, "c", r2.Matches[0].TeamBID)
	assert.Equal(t, "b", r2.Matches[1].TeamAID)
	assert.Equal(t, "d", r2.Matches[1].TeamBID)

	// a достигает порога побед, d — порога поражений
	stage = CompleteSwissMatch(stage, "swiss-r2-m1", resultFor("a", "c"))
	stage = CompleteSwissMatch(stage, "swiss-r2-m2", resultFor("b", "d"))

	assert.Equal(t, []string{"a"}, stage.QualifiedTeamIDs)
	assert.Equal(t, []string{"d"}, stage.EliminatedTeamIDs)
	assert.Equal(t, models.SwissQualified, findSwissRecord(&stage, "a").Status)
	assert.Equal(t, models.SwissEliminated, findSwissRecord(&stage, "d").Status)
	assert.False(t, IsSwissStageComplete(stage))

	// раунд 3: активны только b и c
	stage = GenerateNextSwissRound(stage, "")
	r3 := stage.Rounds[2]
	require.Len(t, r3.Matches, 1)
	assert.ElementsMatch(t, []string{"b", "c"}, []string{r3.Matches[0].TeamAID, r3.Matches[0].TeamBID})

	stage = CompleteSwissMatch(stage, "swiss-r3-m1", resultFor("c", "b"))
	assert.True(t, IsSwissStageComplete(stage))
	assert.Equal(t, []string{"a", "c"}, stage.QualifiedTeamIDs)
	assert.Equal(t, []string{"d", "b"}, stage.EliminatedTeamIDs)
}

func TestGenerateNextSwissRoundAvoidsRematch(t *testing.T) {
	// четыре команды с одинаковым счётом 1-1: вершина группы уже играла со
	// следующим сидом, пара собирается со сканом снизу
	stage := models.SwissStage{
		CurrentRound: 1,
		TotalRounds:  3,
		Standings: []models.SwissTeamRecord{
			{TeamID: "a", Seed: 1, Wins: 1, Losses: 1, Status: models.SwissActive, OpponentIDs: []string{"d"}},
			{TeamID: "b", Seed: 2, Wins: 1, Losses: 1, Status: models.SwissActive, OpponentIDs: []string{"c"}},
			{TeamID: "c", Seed: 3, Wins: 1, Losses: 1, Status: models.SwissActive, OpponentIDs: []string{"b"}},
			{TeamID: "d", Seed: 4, Wins: 1, Losses: 1, Status: models.SwissActive, OpponentIDs: []string{"a"}},
		},
		Rounds: []models.SwissRound{{RoundID: "swiss-r1", RoundNumber: 1, Status: models.SwissRoundCompleted}},
	}

	out := GenerateNextSwissRound(stage, "")

	require.Len(t, out.Rounds, 2)
	matches := out.Rounds[1].Matches
	require.Len(t, matches, 2)
	// a не может снова играть с d: скан снизу даёт пару a-c, остаток b-d
	assert.Equal(t, "a", matches[0].TeamAID)
	assert.Equal(t, "c", matches[0].TeamBID)
	assert.Equal(t, "b", matches[1].TeamAID)
	assert.Equal(t, "d", matches[1].TeamBID)
}

func TestGenerateNextSwissRoundEightTeamSchedule(t *testing.T) {
	// восемь команд после двух раундов: r1 a>f, b>h, c>g, d>e;
	// r2 a>h, b>d, c>f, e>g. Третий раунд должен развести группу 1-1,
	// где d и e уже играли, и увернуться от реванша b-d в межгрупповом
	// проходе.
	stage := models.SwissStage{
		CurrentRound: 2,
		TotalRounds:  3,
		Standings: []models.SwissTeamRecord{
			{TeamID: "a", Seed: 1, Wins: 2, Losses: 0, Status: models.SwissActive, OpponentIDs: []string{"f", "h"}},
			{TeamID: "b", Seed: 2, Wins: 2, Losses: 0, Status: models.SwissActive, OpponentIDs: []string{"h", "d"}},
			{TeamID: "c", Seed: 3, Wins: 2, Losses: 0, Status: models.SwissActive, OpponentIDs: []string{"g", "f"}},
			{TeamID: "d", Seed: 4, Wins: 1, Losses: 1, Status: models.SwissActive, OpponentIDs: []string{"e", "b"}},
			{TeamID: "e", Seed: 5, Wins: 1, Losses: 1, Status: models.SwissActive, OpponentIDs: []string{"d", "g"}},
			{TeamID: "f", Seed: 6, Wins: 0, Losses: 2, Status: models.SwissActive, OpponentIDs: []string{"a", "c"}},
			{TeamID: "g", Seed: 7, Wins: 0, Losses: 2, Status: models.SwissActive, OpponentIDs: []string{"c", "e"}},
			{TeamID: "h", Seed: 8, Wins: 0, Losses: 2, Status: models.SwissActive, OpponentIDs: []string{"b", "a"}},
		},
		Rounds: []models.SwissRound{
			{RoundID: "swiss-r1", RoundNumber: 1, Status: models.SwissRoundCompleted},
			{RoundID: "swiss-r2", RoundNumber: 2, Status: models.SwissRoundCompleted},
		},
	}

	out := GenerateNextSwissRound(stage, "")

	assert.Equal(t, 3, out.CurrentRound)
	require.Len(t, out.Rounds, 3)
	matches := out.Rounds[2].Matches
	require.Len(t, matches, 4)

	// группа 2-0: a-c в паре, b уходит в остаток
	assert.Equal(t, "a", matches[0].TeamAID)
	assert.Equal(t, "c", matches[0].TeamBID)
	// группа 0-2: f-h, g в остаток
	assert.Equal(t, "f", matches[1].TeamAID)
	assert.Equal(t, "h", matches[1].TeamBID)
	// остаток [b, d, e, g]: b уже играл с d, скан вперёд даёт b-e
	assert.Equal(t, "b", matches[2].TeamAID)
	assert.Equal(t, "e", matches[2].TeamBID)
	assert.Equal(t, "d", matches[3].TeamAID)
	assert.Equal(t, "g", matches[3].TeamBID)
}

func TestGenerateNextSwissRoundPastTotalIsNoop(t *testing.T) {
	stage := InitializeSwissStage([]string{"a", "b"}, nil, SwissConfig{TotalRounds: 1, WinsToQualify: 1, LossesToEliminate: 1})

	out := GenerateNextSwissRound(stage, "")

	assert.Equal(t, stage, out)
}

func TestGetSwissStandingsOrdering(t *testing.T) {
	stage := models.SwissStage{
		Standings: []models.SwissTeamRecord{
			{TeamID: "low-seed", Seed: 4, Wins: 1, Losses: 1, RoundDiff: 5},
			{TeamID: "leader", Seed: 3, Wins: 2, Losses: 0, RoundDiff: 2},
			{TeamID: "high-seed", Seed: 1, Wins: 1, Losses: 1, RoundDiff: 5},
			{TeamID: "trailer", Seed: 2, Wins: 1, Losses: 1, RoundDiff: -3},
		},
	}

	standings := GetSwissStandings(stage)

	ids := make([]string, len(standings))
	for i, s := range standings {
		ids[i] = s.TeamID
	}
	assert.Equal(t, []string{"leader", "high-seed", "low-seed", "trailer"}, ids)
}
