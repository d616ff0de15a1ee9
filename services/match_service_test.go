package services

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/Nosajool/vct-manager-sub005/brackets"
	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Лёгкие in-memory заглушки персистентности для сервисных тестов.

type fakeTournamentRepo struct {
	tournaments   map[string]*models.Tournament
	stale         []*models.Tournament
	statusUpdates map[string]models.TournamentStatus
	updateCalls   int
}

func newFakeTournamentRepo(ts ...*models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{
		tournaments:   make(map[string]*models.Tournament),
		statusUpdates: make(map[string]models.TournamentStatus),
	}
	for _, t := range ts {
		repo.tournaments[t.ID] = t
	}
	return repo
}

func (r *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	r.tournaments[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return t, nil
}

func (r *fakeTournamentRepo) List(_ context.Context) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	r.updateCalls++
	r.tournaments[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) UpdateStatus(_ context.Context, id string, status models.TournamentStatus) error {
	r.statusUpdates[id] = status
	return nil
}

func (r *fakeTournamentRepo) ListForAutoStatusUpdate(_ context.Context) ([]*models.Tournament, error) {
	return r.stale, nil
}

type fakeResultRepo struct {
	created []models.StoredMatchResult
}

func (r *fakeResultRepo) Create(_ context.Context, result *models.StoredMatchResult) error {
	r.created = append(r.created, *result)
	return nil
}

func (r *fakeResultRepo) ListByTournament(_ context.Context, _ string) ([]models.StoredMatchResult, error) {
	return r.created, nil
}

func (r *fakeResultRepo) ListBySeason(_ context.Context, _ string) ([]models.StoredMatchResult, error) {
	return r.created, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func singleElimTournament(t *testing.T, teamIDs []string) *models.Tournament {
	t.Helper()
	tournament, err := BuildTournament(CreateTournamentParams{
		Name:      "Test Cup",
		Type:      models.TypeStage,
		Format:    models.FormatSingleElim,
		TeamIDs:   teamIDs,
		StartDate: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
	}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	tournament.Status = models.TournamentInProgress
	return tournament
}

func TestRecordResultCompletesBracketTournament(t *testing.T) {
	tournament := singleElimTournament(t, []string{"a", "b"})
	repo := newFakeTournamentRepo(tournament)
	results := &fakeResultRepo{}
	svc := NewMatchService(repo, results, nil, nil, discardLogger())

	finalID := tournament.Bracket.Upper[0].Matches[0].MatchID
	out, err := svc.RecordResult(context.Background(), tournament.ID, finalID, models.MatchResult{
		WinnerID: "a",
		LoserID:  "b",
		Maps:     []models.MapScore{{WinnerRounds: 13, LoserRounds: 7}},
	})

	require.NoError(t, err)
	assert.Equal(t, models.TournamentCompleted, out.Status)
	assert.Equal(t, "a", out.Bracket.Upper[0].Matches[0].WinnerID)
	assert.Equal(t, 1, repo.updateCalls)

	require.Len(t, results.created, 1)
	assert.Equal(t, finalID, results.created[0].MatchUID)
	assert.Equal(t, "a", results.created[0].Result.WinnerID)
}

func TestRecordResultRejectsCompletedTournament(t *testing.T) {
	tournament := singleElimTournament(t, []string{"a", "b"})
	tournament.Status = models.TournamentCompleted
	repo := newFakeTournamentRepo(tournament)
	svc := NewMatchService(repo, &fakeResultRepo{}, nil, nil, discardLogger())

	_, err := svc.RecordResult(context.Background(), tournament.ID, "whatever", models.MatchResult{
		WinnerID: "a", LoserID: "b",
	})

	assert.ErrorIs(t, err, ErrTournamentNotInProgress)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestRecordResultUnknownTournament(t *testing.T) {
	svc := NewMatchService(newFakeTournamentRepo(), &fakeResultRepo{}, nil, nil, discardLogger())

	_, err := svc.RecordResult(context.Background(), "missing", "m1", models.MatchResult{})

	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestRecordResultAdvancesSwissRound(t *testing.T) {
	params := mastersParams()
	tournament, err := BuildMastersSantiago(params, nil, nil)
	require.NoError(t, err)
	tournament.Status = models.TournamentInProgress

	repo := newFakeTournamentRepo(tournament)
	svc := NewMatchService(repo, &fakeResultRepo{}, nil, nil, discardLogger())

	// закрываем все матчи первого раунда победами стороны A
	firstRound := tournament.SwissStage.Rounds[0].Matches
	for _, m := range firstRound {
		_, err := svc.RecordResult(context.Background(), tournament.ID, m.MatchID, models.MatchResult{
			WinnerID: m.TeamAID,
			LoserID:  m.TeamBID,
			Maps:     []models.MapScore{{WinnerRounds: 13, LoserRounds: 7}},
		})
		require.NoError(t, err)
	}

	stored := repo.tournaments[tournament.ID]
	require.NotNil(t, stored.SwissStage)
	assert.Equal(t, 2, stored.SwissStage.CurrentRound)
	require.Len(t, stored.SwissStage.Rounds, 2)
	assert.Equal(t, models.StageSwiss, stored.CurrentStage)
	assert.Equal(t, models.TournamentInProgress, stored.Status)
}

func TestRecordResultBuildsPlayoffWhenSwissCompletes(t *testing.T) {
	params := mastersParams()
	tournament, err := BuildMastersSantiago(params, nil, nil)
	require.NoError(t, err)
	tournament.Status = models.TournamentInProgress

	repo := newFakeTournamentRepo(tournament)
	svc := NewMatchService(repo, &fakeResultRepo{}, nil, nil, discardLogger())

	// три раунда подряд, в каждом матче побеждает сторона A
	for round := 0; round < 3; round++ {
		stored := repo.tournaments[tournament.ID]
		require.Greater(t, len(stored.SwissStage.Rounds), round)
		for _, m := range stored.SwissStage.Rounds[round].Matches {
			_, err := svc.RecordResult(context.Background(), tournament.ID, m.MatchID, models.MatchResult{
				WinnerID: m.TeamAID,
				LoserID:  m.TeamBID,
				Maps:     []models.MapScore{{WinnerRounds: 13, LoserRounds: 7}},
			})
			require.NoError(t, err)
		}
	}

	stored := repo.tournaments[tournament.ID]
	assert.Equal(t, models.StagePlayoff, stored.CurrentStage)
	assert.Equal(t, models.TournamentInProgress, stored.Status)

	// s1 и s3 закрывают две победы во втором раунде, s2 и s4 — в третьем
	assert.Equal(t, []string{"s1", "s3", "s2", "s4"}, stored.SwissStage.QualifiedTeamIDs)
	assert.Equal(t, []string{"s8", "s6", "s7", "s5"}, stored.SwissStage.EliminatedTeamIDs)

	// плей-офф: прямые участники на сидах 1-4, квалифицировавшиеся в
	// порядке квалификации на сидах 5-8
	require.Len(t, stored.Bracket.Upper, 3)
	first := stored.Bracket.Upper[0].Matches
	require.Len(t, first, 4)
	assert.Equal(t, "p1", first[0].TeamAID)
	assert.Equal(t, "p2", first[0].TeamBID)
	assert.Equal(t, "p3", first[1].TeamAID)
	assert.Equal(t, "p4", first[1].TeamBID)
	assert.Equal(t, "s1", first[2].TeamAID)
	assert.Equal(t, "s3", first[2].TeamBID)
	assert.Equal(t, "s2", first[3].TeamAID)
	assert.Equal(t, "s4", first[3].TeamBID)

	prefix := brackets.IDPrefix(tournament.ID) + "_"
	assert.True(t, strings.HasPrefix(first[0].MatchID, prefix), first[0].MatchID)
}

func TestAutoUpdateStatusesByDates(t *testing.T) {
	now := time.Now()
	shouldStart := &models.Tournament{
		ID: "t-start", Status: models.TournamentUpcoming,
		StartDate: now.Add(-time.Hour), EndDate: now.Add(48 * time.Hour),
	}
	shouldFinish := &models.Tournament{
		ID: "t-finish", Status: models.TournamentInProgress,
		StartDate: now.Add(-72 * time.Hour), EndDate: now.Add(-time.Hour),
	}
	notYet := &models.Tournament{
		ID: "t-future", Status: models.TournamentUpcoming,
		StartDate: now.Add(24 * time.Hour), EndDate: now.Add(72 * time.Hour),
	}
	repo := newFakeTournamentRepo()
	repo.stale = []*models.Tournament{shouldStart, shouldFinish, notYet}

	svc := NewTournamentService(repo, nil, &fakeResultRepo{}, rand.New(rand.NewSource(1)), discardLogger())
	err := svc.AutoUpdateStatusesByDates(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.TournamentInProgress, repo.statusUpdates["t-start"])
	assert.Equal(t, models.TournamentCompleted, repo.statusUpdates["t-finish"])
	_, touched := repo.statusUpdates["t-future"]
	assert.False(t, touched)
}
