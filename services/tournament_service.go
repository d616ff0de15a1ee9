package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Nosajool/vct-manager-sub005/brackets"
	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/Nosajool/vct-manager-sub005/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Продолжительность турнира в днях по формату сетки.
var formatDurations = map[models.BracketFormat]int{
	models.FormatSingleElim:     3,
	models.FormatDoubleElim:     7,
	models.FormatTripleElim:     14,
	models.FormatRoundRobin:     35,
	models.FormatSwissToPlayoff: 18,
}

// Призовой фонд по умолчанию для каждого вида соревнования.
var defaultPrizePools = map[models.TournamentType]int{
	models.TypeKickoff:       250_000,
	models.TypeMasters:       1_000_000,
	models.TypeStage:         100_000,
	models.TypeStagePlayoffs: 150_000,
	models.TypeChampions:     2_250_000,
}

// Доля призового фонда (в процентах) по местам для каждого вида соревнования.
var prizeDistributions = map[models.TournamentType]map[int]float64{
	models.TypeKickoff:       {1: 50, 2: 25, 3: 15, 4: 10},
	models.TypeMasters:       {1: 40, 2: 22, 3: 12, 4: 8, 5: 5, 6: 5, 7: 4, 8: 4},
	models.TypeStage:         {1: 45, 2: 27, 3: 18, 4: 10},
	models.TypeStagePlayoffs: {1: 40, 2: 25, 3: 20, 4: 15},
	models.TypeChampions:     {1: 40, 2: 18, 3: 12, 4: 8, 5: 5.5, 6: 5.5, 7: 3, 8: 3},
}

const (
	minTeams           = 2
	maxTeams           = 64
	maxRoundRobinTeams = 20
)

// ComputePrizePool распределяет общий фонд по местам согласно таблице вида
// соревнования, округляя до целых денежных единиц. totalPrizePool <= 0 —
// берётся фонд по умолчанию.
func ComputePrizePool(ttype models.TournamentType, totalPrizePool int) map[int]int {
	if totalPrizePool <= 0 {
		totalPrizePool = defaultPrizePools[ttype]
	}
	dist := prizeDistributions[ttype]
	pool := make(map[int]int, len(dist))
	for placement, pct := range dist {
		pool[placement] = int(math.Round(float64(totalPrizePool) * pct / 100))
	}
	return pool
}

// FormatDuration возвращает продолжительность турнира данного формата в днях.
func FormatDuration(format models.BracketFormat) int {
	if d, ok := formatDurations[format]; ok {
		return d
	}
	return 7
}

// ValidateTournament проверяет параметры турнира. Ошибки возвращаются
// структурой, а не исключением: это единственная строгая поверхность
// валидации движка.
func ValidateTournament(teamIDs []string, ttype models.TournamentType, format models.BracketFormat) models.ValidationResult {
	if len(teamIDs) < minTeams || len(teamIDs) > maxTeams {
		return models.ValidationResult{Error: fmt.Sprintf("team count must be between %d and %d, got %d", minTeams, maxTeams, len(teamIDs))}
	}
	if format == models.FormatRoundRobin && len(teamIDs) > maxRoundRobinTeams {
		return models.ValidationResult{Error: fmt.Sprintf("round robin supports at most %d teams, got %d", maxRoundRobinTeams, len(teamIDs))}
	}
	seen := make(map[string]bool, len(teamIDs))
	for _, id := range teamIDs {
		if seen[id] {
			return models.ValidationResult{Error: fmt.Sprintf("duplicate team id %q", id)}
		}
		seen[id] = true
	}
	return models.ValidationResult{Valid: true}
}

// GenerateKickoffSeeding возвращает seeding-перестановку для Kickoff.
// Americas играет по фиксированному каноническому порядку (команды уже
// отсортированы вызывающей стороной); остальные регионы сохраняют топ-4
// на местах 1–4, а сиды 5..N тасуются Фишером–Йетсом. Перемешивание —
// единственный источник недетерминизма движка, поэтому rng инъецируется.
func GenerateKickoffSeeding(region models.Region, teamCount int, rng *rand.Rand) []int {
	seeding := make([]int, teamCount)
	for i := range seeding {
		seeding[i] = i + 1
	}
	if region == models.RegionAmericas || teamCount <= 5 {
		return seeding
	}
	tail := seeding[4:]
	for i := len(tail) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		tail[i], tail[j] = tail[j], tail[i]
	}
	return seeding
}

// CreateTournamentParams — параметры создания обычного (одностадийного)
// турнира.
type CreateTournamentParams struct {
	Name           string
	Type           models.TournamentType
	Format         models.BracketFormat
	Region         models.Region
	SeasonID       string
	TeamIDs        []string
	StartDate      time.Time
	TotalPrizePool int
	Groups         int // только для round robin, 0 = одна группа
}

// BuildTournament собирает турнир: даты по формату, призовой фонд, сетка
// соответствующего формата и согласованная перепись идентификаторов с
// префиксом турнира, чтобы параллельные турниры не пересекались по ID
// матчей. Для Kickoff triple elimination применяется региональный seeding.
func BuildTournament(params CreateTournamentParams, rng *rand.Rand) (*models.Tournament, error) {
	if params.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	if v := ValidateTournament(params.TeamIDs, params.Type, params.Format); !v.Valid {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, v.Error)
	}

	t := &models.Tournament{
		ID:        uuid.NewString(),
		Name:      params.Name,
		Type:      params.Type,
		Format:    params.Format,
		Region:    params.Region,
		SeasonID:  params.SeasonID,
		TeamIDs:   append([]string(nil), params.TeamIDs...),
		StartDate: params.StartDate,
		EndDate:   params.StartDate.AddDate(0, 0, FormatDuration(params.Format)),
		PrizePool: ComputePrizePool(params.Type, params.TotalPrizePool),
		Status:    models.TournamentUpcoming,
	}

	var bracket models.BracketStructure
	switch params.Format {
	case models.FormatSingleElim:
		bracket = brackets.GenerateSingleElimination(params.TeamIDs, nil)
	case models.FormatDoubleElim:
		bracket = brackets.GenerateDoubleElimination(params.TeamIDs, nil)
	case models.FormatTripleElim:
		var seeding []int
		if params.Type == models.TypeKickoff {
			seeding = GenerateKickoffSeeding(params.Region, len(params.TeamIDs), rng)
		}
		bracket = brackets.GenerateTripleElimination(params.TeamIDs, seeding)
	case models.FormatRoundRobin:
		bracket = brackets.GenerateRoundRobin(params.TeamIDs, params.Groups)
	default:
		return nil, fmt.Errorf("%w: unsupported bracket format %q", ErrValidationFailed, params.Format)
	}

	t.Bracket = brackets.ApplyIDPrefix(bracket, brackets.IDPrefix(t.ID))
	return t, nil
}

// CreateMastersParams — параметры создания многостадийного турнира Masters.
type CreateMastersParams struct {
	Name               string
	SeasonID           string
	SwissTeamIDs       []string
	PlayoffOnlyTeamIDs []string
	StartDate          time.Time
	TotalPrizePool     int
}

// BuildMastersSantiago собирает многостадийный турнир Masters: 8 участников
// швейцарского этапа (3 раунда, 2 победы до квалификации, 2 поражения до
// вылета) и 4 прямых участника плей-офф. Сетка плей-офф остаётся пустой
// заглушкой до завершения швейцарского этапа. Неожиданные количества
// участников — предупреждение, не отказ.
func BuildMastersSantiago(params CreateMastersParams, teamRegions map[string]models.Region, logger *slog.Logger) (*models.Tournament, error) {
	if params.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	swissTeamIDs, playoffOnlyTeamIDs := params.SwissTeamIDs, params.PlayoffOnlyTeamIDs
	if logger != nil {
		if len(swissTeamIDs) != 8 {
			logger.Warn("masters expects 8 swiss entrants", slog.Int("got", len(swissTeamIDs)))
		}
		if len(playoffOnlyTeamIDs) != 4 {
			logger.Warn("masters expects 4 direct playoff seeds", slog.Int("got", len(playoffOnlyTeamIDs)))
		}
	}

	allTeams := append(append([]string(nil), swissTeamIDs...), playoffOnlyTeamIDs...)
	if v := ValidateTournament(allTeams, models.TypeMasters, models.FormatSwissToPlayoff); !v.Valid {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, v.Error)
	}

	t := &models.Tournament{
		ID:                 uuid.NewString(),
		Name:               params.Name,
		Type:               models.TypeMasters,
		Format:             models.FormatSwissToPlayoff,
		SeasonID:           params.SeasonID,
		TeamIDs:            allTeams,
		StartDate:          params.StartDate,
		EndDate:            params.StartDate.AddDate(0, 0, FormatDuration(models.FormatSwissToPlayoff)),
		PrizePool:          ComputePrizePool(models.TypeMasters, params.TotalPrizePool),
		Status:             models.TournamentUpcoming,
		CurrentStage:       models.StageSwiss,
		SwissTeamIDs:       append([]string(nil), swissTeamIDs...),
		PlayoffOnlyTeamIDs: append([]string(nil), playoffOnlyTeamIDs...),
		// пустая заглушка: настоящая сетка строится после швейцарского этапа
		Bracket: models.BracketStructure{Format: models.FormatDoubleElim},
	}

	stage := brackets.InitializeSwissStage(swissTeamIDs, teamRegions, brackets.SwissConfig{
		TotalRounds:       3,
		WinsToQualify:     2,
		LossesToEliminate: 2,
		TournamentID:      t.ID,
	})
	t.SwissStage = &stage
	return t, nil
}

// GenerateMastersPlayoffBracket строит плей-офф Masters: сиды 1–4 — прямые
// участники в заданном порядке, сиды 5–8 — квалифицировавшиеся из
// швейцарского этапа в порядке квалификации.
func GenerateMastersPlayoffBracket(swissQualifiers, playoffOnlyTeamIDs []string, tournamentID string) models.BracketStructure {
	seededTeams := append(append([]string(nil), playoffOnlyTeamIDs...), swissQualifiers...)
	bracket := brackets.GenerateDoubleElimination(seededTeams, nil)
	return brackets.ApplyIDPrefix(bracket, brackets.IDPrefix(tournamentID))
}

// TournamentService — операции над турнирами, обёрнутые в персистентность.
type TournamentService interface {
	CreateTournament(ctx context.Context, params CreateTournamentParams) (*models.Tournament, error)
	CreateMasters(ctx context.Context, params CreateMastersParams) (*models.Tournament, error)
	GetTournament(ctx context.Context, id string) (*models.Tournament, []models.StoredMatchResult, error)
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	GetStandings(ctx context.Context, id string) (interface{}, error)
	AutoUpdateStatusesByDates(ctx context.Context) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	resultRepo     repositories.MatchResultRepository
	logger         *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	resultRepo repositories.MatchResultRepository,
	rng *rand.Rand,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		resultRepo:     resultRepo,
		rng:            rng,
		logger:         logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, params CreateTournamentParams) (*models.Tournament, error) {
	if err := s.checkTeamsExist(ctx, params.TeamIDs); err != nil {
		return nil, err
	}

	s.rngMu.Lock()
	t, err := BuildTournament(params, s.rng)
	s.rngMu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}
	s.logger.Info("tournament created",
		slog.String("id", t.ID),
		slog.String("name", t.Name),
		slog.String("format", string(t.Format)))
	return t, nil
}

func (s *tournamentService) CreateMasters(ctx context.Context, params CreateMastersParams) (*models.Tournament, error) {
	allIDs := append(append([]string(nil), params.SwissTeamIDs...), params.PlayoffOnlyTeamIDs...)
	if err := s.checkTeamsExist(ctx, allIDs); err != nil {
		return nil, err
	}
	regions, err := s.teamRegions(ctx, allIDs)
	if err != nil {
		return nil, err
	}

	t, err := BuildMastersSantiago(params, regions, s.logger)
	if err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save masters tournament: %w", err)
	}
	s.logger.Info("masters tournament created", slog.String("id", t.ID), slog.String("name", t.Name))
	return t, nil
}

// GetTournament загружает турнир и журнал его результатов параллельно.
func (s *tournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, []models.StoredMatchResult, error) {
	var (
		tournament *models.Tournament
		results    []models.StoredMatchResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gctx, id)
		if err != nil {
			return err
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		r, err := s.resultRepo.ListByTournament(gctx, id)
		if err != nil {
			return err
		}
		results = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return tournament, results, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx)
}

// GetStandings возвращает таблицу швейцарского этапа для многостадийного
// турнира в швейцарской стадии, иначе — итоговые места сетки.
func (s *tournamentService) GetStandings(ctx context.Context, id string) (interface{}, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.IsMultiStage() && t.CurrentStage == models.StageSwiss && t.SwissStage != nil {
		return brackets.GetSwissStandings(*t.SwissStage), nil
	}
	return brackets.GetFinalPlacements(t.Bracket), nil
}

// AutoUpdateStatusesByDates переводит статусы турниров по датам:
// upcoming с наступившим стартом — в in_progress, in_progress с прошедшим
// концом — в completed. Завершение по сетке важнее дат, поэтому сюда
// попадают только турниры, чей статус отстал от календаря.
func (s *tournamentService) AutoUpdateStatusesByDates(ctx context.Context) error {
	stale, err := s.tournamentRepo.ListForAutoStatusUpdate(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tournaments for status update: %w", err)
	}

	now := time.Now()
	for _, t := range stale {
		var next models.TournamentStatus
		switch {
		case t.Status == models.TournamentUpcoming && !t.StartDate.After(now):
			next = models.TournamentInProgress
		case t.Status == models.TournamentInProgress && t.EndDate.Before(now):
			next = models.TournamentCompleted
		default:
			continue
		}
		if err := s.tournamentRepo.UpdateStatus(ctx, t.ID, next); err != nil {
			s.logger.Error("failed to auto-update tournament status",
				slog.String("id", t.ID), slog.Any("error", err))
			continue
		}
		s.logger.Info("tournament status updated by dates",
			slog.String("id", t.ID),
			slog.String("from", string(t.Status)),
			slog.String("to", string(next)))
	}
	return nil
}

func (s *tournamentService) checkTeamsExist(ctx context.Context, teamIDs []string) error {
	teams, err := s.teamRepo.GetByIDs(ctx, teamIDs)
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}
	if len(teams) != len(teamIDs) {
		return fmt.Errorf("%w: %d of %d teams exist", ErrTeamNotFound, len(teams), len(teamIDs))
	}
	return nil
}

func (s *tournamentService) teamRegions(ctx context.Context, teamIDs []string) (map[string]models.Region, error) {
	teams, err := s.teamRepo.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load team regions: %w", err)
	}
	regions := make(map[string]models.Region, len(teams))
	for _, t := range teams {
		regions[t.ID] = t.Region
	}
	return regions, nil
}
