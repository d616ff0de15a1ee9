package services

import (
	"testing"

	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNextPhase(t *testing.T) {
	assert.Equal(t, models.PhaseKickoff, GetNextPhase(models.PhaseOffseason))
	assert.Equal(t, models.PhaseMasters1, GetNextPhase(models.PhaseKickoff))
	assert.Equal(t, models.PhaseChampions, GetNextPhase(models.PhaseStage2Playoffs))
	// после Champions календарь сворачивается
	assert.Equal(t, models.PhaseOffseason, GetNextPhase(models.PhaseChampions))
	assert.Equal(t, models.PhaseOffseason, GetNextPhase(models.SeasonPhase("bogus")))
}

func TestGetPreviousPhase(t *testing.T) {
	prev, ok := GetPreviousPhase(models.PhaseKickoff)
	require.True(t, ok)
	assert.Equal(t, models.PhaseOffseason, prev)

	_, ok = GetPreviousPhase(models.PhaseOffseason)
	assert.False(t, ok)

	_, ok = GetPreviousPhase(models.SeasonPhase("bogus"))
	assert.False(t, ok)
}

func seasonResult(winnerID, loserID string, maps ...models.MapScore) models.MatchResult {
	return models.MatchResult{WinnerID: winnerID, LoserID: loserID, Maps: maps}
}

func TestCalculateSeasonStandings(t *testing.T) {
	teams := []string{"a", "b", "c"}
	results := []models.MatchResult{
		seasonResult("a", "b",
			models.MapScore{WinnerRounds: 13, LoserRounds: 7},
			models.MapScore{WinnerRounds: 13, LoserRounds: 5}),
		seasonResult("c", "b",
			models.MapScore{WinnerRounds: 13, LoserRounds: 11}),
	}
	names := map[string]string{"a": "Alpha", "b": "Bravo", "c": "Charlie"}

	standings := CalculateSeasonStandings(teams, results, names)

	require.Len(t, standings, 3)
	assert.Equal(t, "a", standings[0].TeamID)
	assert.Equal(t, "Alpha", standings[0].TeamName)
	assert.Equal(t, 1, standings[0].Wins)
	assert.Equal(t, 14, standings[0].RoundDiff)
	assert.Equal(t, 1, standings[0].Placement)

	assert.Equal(t, "c", standings[1].TeamID)
	assert.Equal(t, 2, standings[1].RoundDiff)

	assert.Equal(t, "b", standings[2].TeamID)
	assert.Equal(t, 2, standings[2].Losses)
	assert.Equal(t, -16, standings[2].RoundDiff)
	assert.Equal(t, 3, standings[2].Placement)
}

func TestCalculateSeasonStandingsLossesTiebreak(t *testing.T) {
	// a и b: по одной победе и одинаковая раундовая разница, но у b есть
	// поражение — b стоит выше, меньше сыгранных матчей хуже
	teams := []string{"a", "b", "c", "d"}
	results := []models.MatchResult{
		seasonResult("a", "c", models.MapScore{WinnerRounds: 13, LoserRounds: 11}),
		seasonResult("b", "c", models.MapScore{WinnerRounds: 13, LoserRounds: 9}),
		seasonResult("d", "b", models.MapScore{WinnerRounds: 13, LoserRounds: 11}),
	}

	standings := CalculateSeasonStandings(teams, results, nil)

	require.Len(t, standings, 4)
	assert.Equal(t, "b", standings[0].TeamID)
	assert.Equal(t, 1, standings[0].Wins)
	assert.Equal(t, 1, standings[0].Losses)
	assert.Equal(t, 2, standings[0].RoundDiff)

	assert.Equal(t, "a", standings[1].TeamID)
	assert.Equal(t, 2, standings[1].RoundDiff)
	assert.Equal(t, "d", standings[2].TeamID)
	assert.Equal(t, "c", standings[3].TeamID)
}

func TestCalculateSeasonStandingsIgnoresUnknownTeams(t *testing.T) {
	teams := []string{"a", "b"}
	results := []models.MatchResult{
		seasonResult("ghost", "a", models.MapScore{WinnerRounds: 13, LoserRounds: 2}),
	}

	standings := CalculateSeasonStandings(teams, results, nil)

	require.Len(t, standings, 2)
	// победа призрака не учтена, поражение a учтено
	assert.Equal(t, 0, standings[0].Wins+standings[1].Wins)
	for _, s := range standings {
		if s.TeamID == "a" {
			assert.Equal(t, 1, s.Losses)
			assert.Equal(t, -11, s.RoundDiff)
		}
	}
}

func TestIsTeamQualified(t *testing.T) {
	standings := []models.SeasonStanding{
		{TeamID: "a", Placement: 1},
		{TeamID: "b", Placement: 2},
		{TeamID: "c", Placement: 3},
		{TeamID: "d", Placement: 4},
	}

	// Masters — три слота, Champions — два
	assert.True(t, IsTeamQualified("c", standings, models.TypeMasters))
	assert.False(t, IsTeamQualified("d", standings, models.TypeMasters))
	assert.True(t, IsTeamQualified("b", standings, models.TypeChampions))
	assert.False(t, IsTeamQualified("c", standings, models.TypeChampions))

	// у стадий нет квоты, незнакомая команда не квалифицирована
	assert.False(t, IsTeamQualified("a", standings, models.TypeStage))
	assert.False(t, IsTeamQualified("ghost", standings, models.TypeMasters))
}

func TestCanMakeRosterChanges(t *testing.T) {
	assert.True(t, CanMakeRosterChanges(models.PhaseOffseason))
	assert.False(t, CanMakeRosterChanges(models.PhaseKickoff))
	assert.False(t, CanMakeRosterChanges(models.PhaseChampions))
}
