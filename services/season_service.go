package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/Nosajool/vct-manager-sub005/repositories"
	"github.com/google/uuid"
)

// phaseOrder — строгий линейный порядок фаз сезона, без ветвлений и
// пропусков. Следующая фаза после последней — снова offseason.
var phaseOrder = []models.SeasonPhase{
	models.PhaseOffseason,
	models.PhaseKickoff,
	models.PhaseMasters1,
	models.PhaseStage1,
	models.PhaseStage1Playoffs,
	models.PhaseMasters2,
	models.PhaseStage2,
	models.PhaseStage2Playoffs,
	models.PhaseChampions,
}

// Количество квалификационных слотов по виду события: placement <= slots
// означает квалификацию, независимо от абсолютного числа побед.
var qualificationCounts = map[models.TournamentType]int{
	models.TypeMasters:   3,
	models.TypeChampions: 2,
}

// GetNextPhase возвращает следующую фазу календаря; после последней фазы
// календарь сворачивается в offseason.
func GetNextPhase(phase models.SeasonPhase) models.SeasonPhase {
	for i, p := range phaseOrder {
		if p == phase {
			if i == len(phaseOrder)-1 {
				return models.PhaseOffseason
			}
			return phaseOrder[i+1]
		}
	}
	return models.PhaseOffseason
}

// GetPreviousPhase возвращает предыдущую фазу; у первой фазы предыдущей нет.
func GetPreviousPhase(phase models.SeasonPhase) (models.SeasonPhase, bool) {
	for i, p := range phaseOrder {
		if p == phase {
			if i == 0 {
				return "", false
			}
			return phaseOrder[i-1], true
		}
	}
	return "", false
}

// CalculateSeasonStandings строит сезонную таблицу: каждой команде —
// нулевая запись, затем по каждому результату победителю плюс победа,
// проигравшему поражение, обеим — накопленная раундовая разница.
// Сортировка: победы по убыванию, раундовая разница по убыванию, поражения
// по убыванию — при равных победах и разнице выше стоит команда с БОЛЬШИМ
// числом поражений. Это намеренный контракт (меньше сыгранных матчей —
// хуже), его нельзя «чинить».
func CalculateSeasonStandings(teamIDs []string, results []models.MatchResult, teamNames map[string]string) []models.SeasonStanding {
	index := make(map[string]int, len(teamIDs))
	standings := make([]models.SeasonStanding, len(teamIDs))
	for i, id := range teamIDs {
		standings[i] = models.SeasonStanding{TeamID: id, TeamName: teamNames[id]}
		index[id] = i
	}

	for _, r := range results {
		diff := r.RoundDiff()
		if i, ok := index[r.WinnerID]; ok {
			standings[i].Wins++
			standings[i].RoundDiff += diff
		}
		if i, ok := index[r.LoserID]; ok {
			standings[i].Losses++
			standings[i].RoundDiff -= diff
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.RoundDiff != b.RoundDiff {
			return a.RoundDiff > b.RoundDiff
		}
		return a.Losses > b.Losses
	})
	for i := range standings {
		standings[i].Placement = i + 1
	}
	return standings
}

// IsTeamQualified — квалификация чисто позиционная: место в таблице не
// хуже квоты события.
func IsTeamQualified(teamID string, standings []models.SeasonStanding, eventType models.TournamentType) bool {
	slots, ok := qualificationCounts[eventType]
	if !ok {
		return false
	}
	for _, s := range standings {
		if s.TeamID == teamID {
			return s.Placement <= slots
		}
	}
	return false
}

// CanMakeRosterChanges — изменения ростера разрешены только в offseason.
func CanMakeRosterChanges(phase models.SeasonPhase) bool {
	return phase == models.PhaseOffseason
}

// SeasonService — state machine сезона поверх персистентности.
type SeasonService interface {
	CreateSeason(ctx context.Context, year int, startDate time.Time) (*models.Season, error)
	GetCurrentSeason(ctx context.Context) (*models.Season, error)
	GetStandings(ctx context.Context, seasonID string) ([]models.SeasonStanding, error)
	AdvancePhase(ctx context.Context, seasonID string) (*models.Season, *models.Tournament, error)
}

type seasonService struct {
	seasonRepo repositories.SeasonRepository
	teamRepo   repositories.TeamRepository
	resultRepo repositories.MatchResultRepository
	schedule   ScheduleService
	logger     *slog.Logger
}

func NewSeasonService(
	seasonRepo repositories.SeasonRepository,
	teamRepo repositories.TeamRepository,
	resultRepo repositories.MatchResultRepository,
	schedule ScheduleService,
	logger *slog.Logger,
) SeasonService {
	return &seasonService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		resultRepo: resultRepo,
		schedule:   schedule,
		logger:     logger,
	}
}

func (s *seasonService) CreateSeason(ctx context.Context, year int, startDate time.Time) (*models.Season, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for season: %w", err)
	}
	teamIDs := make([]string, len(teams))
	for i, t := range teams {
		teamIDs[i] = t.ID
	}

	season := &models.Season{
		ID:           uuid.NewString(),
		Year:         year,
		CurrentPhase: models.PhaseOffseason,
		StartDate:    startDate,
		TeamIDs:      teamIDs,
	}
	if err := s.seasonRepo.Create(ctx, season); err != nil {
		return nil, fmt.Errorf("failed to save season: %w", err)
	}
	s.logger.Info("season created", slog.String("id", season.ID), slog.Int("year", year))
	return season, nil
}

func (s *seasonService) GetCurrentSeason(ctx context.Context) (*models.Season, error) {
	return s.seasonRepo.GetCurrent(ctx)
}

func (s *seasonService) GetStandings(ctx context.Context, seasonID string) ([]models.SeasonStanding, error) {
	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	results, err := s.resultRepo.ListBySeason(ctx, season.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load season results: %w", err)
	}
	teams, err := s.teamRepo.GetByIDs(ctx, season.TeamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load season teams: %w", err)
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	plain := make([]models.MatchResult, len(results))
	for i, r := range results {
		plain[i] = r.Result
	}
	return CalculateSeasonStandings(season.TeamIDs, plain, names), nil
}

// AdvancePhase переводит сезон в следующую фазу и создаёт её турнир через
// планировщик расписания. Для offseason турнир не создаётся.
func (s *seasonService) AdvancePhase(ctx context.Context, seasonID string) (*models.Season, *models.Tournament, error) {
	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, nil, err
	}

	next := GetNextPhase(season.CurrentPhase)
	season.CurrentPhase = next
	if err := s.seasonRepo.Update(ctx, season); err != nil {
		return nil, nil, fmt.Errorf("failed to advance season phase: %w", err)
	}
	s.logger.Info("season phase advanced",
		slog.String("season_id", season.ID),
		slog.String("phase", string(next)))

	if next == models.PhaseOffseason {
		return season, nil, nil
	}

	standings, err := s.GetStandings(ctx, season.ID)
	if err != nil {
		return nil, nil, err
	}
	tournament, err := s.schedule.CreatePhaseTournament(ctx, season, next, standings)
	if err != nil {
		return nil, nil, err
	}
	return season, tournament, nil
}
