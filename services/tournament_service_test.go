package services

import (
	"math/rand"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/Nosajool/vct-manager-sub005/brackets"
	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePrizePoolDefaults(t *testing.T) {
	pool := ComputePrizePool(models.TypeKickoff, 0)

	assert.Equal(t, map[int]int{1: 125_000, 2: 62_500, 3: 37_500, 4: 25_000}, pool)
}

func TestComputePrizePoolCustomTotal(t *testing.T) {
	pool := ComputePrizePool(models.TypeChampions, 1_000_000)

	assert.Equal(t, 400_000, pool[1])
	assert.Equal(t, 180_000, pool[2])
	// 5.5% делится поровну между пятым и шестым местом
	assert.Equal(t, 55_000, pool[5])
	assert.Equal(t, 55_000, pool[6])
	assert.Len(t, pool, 8)
}

func TestValidateTournament(t *testing.T) {
	manyTeams := make([]string, 65)
	for i := range manyTeams {
		manyTeams[i] = string(rune('a' + i%26))
	}

	assert.False(t, ValidateTournament([]string{"solo"}, models.TypeStage, models.FormatSingleElim).Valid)
	assert.False(t, ValidateTournament(manyTeams, models.TypeStage, models.FormatSingleElim).Valid)
	assert.False(t, ValidateTournament([]string{"a", "b", "a"}, models.TypeStage, models.FormatSingleElim).Valid)
	assert.True(t, ValidateTournament([]string{"a", "b"}, models.TypeStage, models.FormatSingleElim).Valid)
}

func TestValidateTournamentRoundRobinCap(t *testing.T) {
	teams := make([]string, 21)
	for i := range teams {
		teams[i] = string(rune('a'+i/10)) + string(rune('0'+i%10))
	}

	result := ValidateTournament(teams, models.TypeStage, models.FormatRoundRobin)

	require.False(t, result.Valid)
	assert.Contains(t, result.Error, "round robin")

	// тот же состав проходит для single elimination
	assert.True(t, ValidateTournament(teams, models.TypeStage, models.FormatSingleElim).Valid)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, 3, FormatDuration(models.FormatSingleElim))
	assert.Equal(t, 14, FormatDuration(models.FormatTripleElim))
	assert.Equal(t, 35, FormatDuration(models.FormatRoundRobin))
	assert.Equal(t, 18, FormatDuration(models.FormatSwissToPlayoff))
	assert.Equal(t, 7, FormatDuration(models.BracketFormat("unknown")))
}

func TestGenerateKickoffSeedingAmericasIsCanonical(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	seeding := GenerateKickoffSeeding(models.RegionAmericas, 12, rng)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, seeding)
}

func TestGenerateKickoffSeedingShufflesTailOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	seeding := GenerateKickoffSeeding(models.RegionEMEA, 12, rng)

	require.Len(t, seeding, 12)
	assert.Equal(t, []int{1, 2, 3, 4}, seeding[:4])

	tail := append([]int(nil), seeding[4:]...)
	sort.Ints(tail)
	assert.Equal(t, []int{5, 6, 7, 8, 9, 10, 11, 12}, tail)

	// при том же seed результат воспроизводим
	again := GenerateKickoffSeeding(models.RegionEMEA, 12, rand.New(rand.NewSource(42)))
	assert.Equal(t, seeding, again)
}

func TestGenerateKickoffSeedingSmallFieldNotShuffled(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Equal(t, []int{1, 2, 3, 4, 5}, GenerateKickoffSeeding(models.RegionPacific, 5, rng))
}

func TestBuildTournamentNameRequired(t *testing.T) {
	_, err := BuildTournament(CreateTournamentParams{
		TeamIDs: []string{"a", "b"},
		Type:    models.TypeStage,
		Format:  models.FormatSingleElim,
	}, rand.New(rand.NewSource(1)))

	assert.ErrorIs(t, err, ErrTournamentNameRequired)
}

func TestBuildTournamentValidationError(t *testing.T) {
	_, err := BuildTournament(CreateTournamentParams{
		Name:    "Broken",
		TeamIDs: []string{"a"},
		Type:    models.TypeStage,
		Format:  models.FormatSingleElim,
	}, rand.New(rand.NewSource(1)))

	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestBuildTournamentAssemblesBracketAndDates(t *testing.T) {
	start := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	tournament, err := BuildTournament(CreateTournamentParams{
		Name:      "VCT 2026 Stage 1 Playoffs",
		Type:      models.TypeStagePlayoffs,
		Format:    models.FormatDoubleElim,
		Region:    models.RegionAmericas,
		SeasonID:  "season-1",
		TeamIDs:   []string{"a", "b", "c", "d"},
		StartDate: start,
	}, rand.New(rand.NewSource(1)))

	require.NoError(t, err)
	assert.NotEmpty(t, tournament.ID)
	assert.Equal(t, "season-1", tournament.SeasonID)
	assert.Equal(t, models.TournamentUpcoming, tournament.Status)
	assert.Equal(t, start.AddDate(0, 0, 7), tournament.EndDate)
	assert.Equal(t, 60_000, tournament.PrizePool[1])

	// все ID матчей переписаны с префиксом турнира
	prefix := brackets.IDPrefix(tournament.ID) + "_"
	require.NotEmpty(t, tournament.Bracket.Upper)
	for _, round := range tournament.Bracket.Upper {
		for _, m := range round.Matches {
			assert.True(t, strings.HasPrefix(m.MatchID, prefix), m.MatchID)
		}
	}
	require.NotNil(t, tournament.Bracket.GrandFinal)
	assert.True(t, strings.HasPrefix(tournament.Bracket.GrandFinal.MatchID, prefix))
}

func TestBuildTournamentUnsupportedFormat(t *testing.T) {
	_, err := BuildTournament(CreateTournamentParams{
		Name:    "Oops",
		TeamIDs: []string{"a", "b"},
		Type:    models.TypeStage,
		Format:  models.BracketFormat("ladder"),
	}, rand.New(rand.NewSource(1)))

	assert.ErrorIs(t, err, ErrValidationFailed)
}

func mastersParams() CreateMastersParams {
	return CreateMastersParams{
		Name:               "VCT 2026 Masters Santiago",
		SeasonID:           "season-1",
		SwissTeamIDs:       []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8"},
		PlayoffOnlyTeamIDs: []string{"p1", "p2", "p3", "p4"},
		StartDate:          time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildMastersSantiago(t *testing.T) {
	params := mastersParams()

	tournament, err := BuildMastersSantiago(params, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, models.TypeMasters, tournament.Type)
	assert.Equal(t, models.FormatSwissToPlayoff, tournament.Format)
	assert.Equal(t, models.StageSwiss, tournament.CurrentStage)
	assert.Equal(t, params.SwissTeamIDs, tournament.SwissTeamIDs)
	assert.Equal(t, params.PlayoffOnlyTeamIDs, tournament.PlayoffOnlyTeamIDs)
	assert.Equal(t, params.StartDate.AddDate(0, 0, 18), tournament.EndDate)

	// плей-офф пока пустая заглушка
	assert.Equal(t, models.FormatDoubleElim, tournament.Bracket.Format)
	assert.Empty(t, tournament.Bracket.Upper)

	require.NotNil(t, tournament.SwissStage)
	stage := tournament.SwissStage
	assert.Equal(t, 3, stage.TotalRounds)
	require.Len(t, stage.Rounds, 1)
	require.Len(t, stage.Rounds[0].Matches, 4)
	prefix := brackets.IDPrefix(tournament.ID) + "_"
	assert.True(t, strings.HasPrefix(stage.Rounds[0].Matches[0].MatchID, prefix))
}

func TestBuildMastersSantiagoNameRequired(t *testing.T) {
	params := mastersParams()
	params.Name = ""

	_, err := BuildMastersSantiago(params, nil, nil)

	assert.ErrorIs(t, err, ErrTournamentNameRequired)
}

func TestBuildMastersSantiagoRejectsDuplicates(t *testing.T) {
	params := mastersParams()
	params.PlayoffOnlyTeamIDs[0] = "s1"

	_, err := BuildMastersSantiago(params, nil, nil)

	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestGenerateMastersPlayoffBracketSeedingOrder(t *testing.T) {
	qualifiers := []string{"q1", "q2", "q3", "q4"}
	direct := []string{"p1", "p2", "p3", "p4"}

	bracket := GenerateMastersPlayoffBracket(qualifiers, direct, "123e4567-e89b-12d3-a456-426614174000")

	// прямые участники занимают сиды 1-4, квалифицировавшиеся — 5-8
	require.Len(t, bracket.Upper, 3)
	first := bracket.Upper[0].Matches
	require.Len(t, first, 4)
	assert.Equal(t, "p1", first[0].TeamAID)
	assert.Equal(t, "p2", first[0].TeamBID)
	assert.Equal(t, "q3", first[3].TeamAID)
	assert.Equal(t, "q4", first[3].TeamBID)
	assert.Equal(t, "426614174000_ur1-m1", first[0].MatchID)
}
