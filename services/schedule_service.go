package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nosajool/vct-manager-sub005/models"
)

// Формат сетки и вид соревнования для каждой фазы календаря.
var phaseFormats = map[models.SeasonPhase]models.BracketFormat{
	models.PhaseKickoff:        models.FormatTripleElim,
	models.PhaseMasters1:       models.FormatSwissToPlayoff,
	models.PhaseStage1:         models.FormatRoundRobin,
	models.PhaseStage1Playoffs: models.FormatDoubleElim,
	models.PhaseMasters2:       models.FormatSwissToPlayoff,
	models.PhaseStage2:         models.FormatRoundRobin,
	models.PhaseStage2Playoffs: models.FormatDoubleElim,
	models.PhaseChampions:      models.FormatDoubleElim,
}

var phaseTypes = map[models.SeasonPhase]models.TournamentType{
	models.PhaseKickoff:        models.TypeKickoff,
	models.PhaseMasters1:       models.TypeMasters,
	models.PhaseStage1:         models.TypeStage,
	models.PhaseStage1Playoffs: models.TypeStagePlayoffs,
	models.PhaseMasters2:       models.TypeMasters,
	models.PhaseStage2:         models.TypeStage,
	models.PhaseStage2Playoffs: models.TypeStagePlayoffs,
	models.PhaseChampions:      models.TypeChampions,
}

// phaseGapDays — пауза между фазами календаря.
const phaseGapDays = 7

// GeneratePhaseWindows раскладывает окна дат фаз по сезону: каждая фаза
// длится столько, сколько её турнирный формат, с недельной паузой между
// фазами.
func GeneratePhaseWindows(startDate time.Time) []models.PhaseWindow {
	windows := make([]models.PhaseWindow, 0, len(phaseOrder)-1)
	cursor := startDate
	for _, phase := range phaseOrder {
		if phase == models.PhaseOffseason {
			continue
		}
		duration := FormatDuration(phaseFormats[phase])
		end := cursor.AddDate(0, 0, duration)
		windows = append(windows, models.PhaseWindow{Phase: phase, StartDate: cursor, EndDate: end})
		cursor = end.AddDate(0, 0, phaseGapDays)
	}
	return windows
}

// PhaseWindowFor возвращает окно дат конкретной фазы сезона.
func PhaseWindowFor(startDate time.Time, phase models.SeasonPhase) (models.PhaseWindow, bool) {
	for _, w := range GeneratePhaseWindows(startDate) {
		if w.Phase == phase {
			return w, true
		}
	}
	return models.PhaseWindow{}, false
}

// ScheduleService создаёт турнир фазы, делегируя сборку TournamentService.
type ScheduleService interface {
	CreatePhaseTournament(ctx context.Context, season *models.Season, phase models.SeasonPhase, standings []models.SeasonStanding) (*models.Tournament, error)
}

type scheduleService struct {
	tournaments TournamentService
	logger      *slog.Logger
}

func NewScheduleService(tournaments TournamentService, logger *slog.Logger) ScheduleService {
	return &scheduleService{tournaments: tournaments, logger: logger}
}

// CreatePhaseTournament выбирает участников фазы из сезонной таблицы и
// создаёт соответствующий турнир. Kickoff берёт топ-12, Masters — топ-4
// напрямую в плей-офф и следующие 8 в швейцарский этап, стадии — всех,
// плей-офф стадий и Champions — топ-8.
func (s *scheduleService) CreatePhaseTournament(ctx context.Context, season *models.Season, phase models.SeasonPhase, standings []models.SeasonStanding) (*models.Tournament, error) {
	format, ok := phaseFormats[phase]
	if !ok {
		return nil, fmt.Errorf("%w: phase %q has no tournament", ErrValidationFailed, phase)
	}
	window, _ := PhaseWindowFor(season.StartDate, phase)

	ranked := make([]string, len(standings))
	for i, st := range standings {
		ranked[i] = st.TeamID
	}
	name := fmt.Sprintf("VCT %d %s", season.Year, phaseDisplayName(phase))

	if format == models.FormatSwissToPlayoff {
		if len(ranked) < 12 {
			return nil, fmt.Errorf("%w: masters needs 12 teams, season has %d", ErrTeamCountInvalid, len(ranked))
		}
		return s.tournaments.CreateMasters(ctx, CreateMastersParams{
			Name:               name,
			SeasonID:           season.ID,
			SwissTeamIDs:       ranked[4:12],
			PlayoffOnlyTeamIDs: ranked[:4],
			StartDate:          window.StartDate,
		})
	}

	teams := ranked
	switch phase {
	case models.PhaseKickoff:
		if len(teams) > 12 {
			teams = teams[:12]
		}
	case models.PhaseStage1Playoffs, models.PhaseStage2Playoffs, models.PhaseChampions:
		if len(teams) > 8 {
			teams = teams[:8]
		}
	}

	s.logger.Info("creating phase tournament",
		slog.String("season_id", season.ID),
		slog.String("phase", string(phase)),
		slog.Int("teams", len(teams)))

	return s.tournaments.CreateTournament(ctx, CreateTournamentParams{
		Name:      name,
		Type:      phaseTypes[phase],
		Format:    format,
		Region:    models.RegionAmericas,
		SeasonID:  season.ID,
		TeamIDs:   teams,
		StartDate: window.StartDate,
	})
}

func phaseDisplayName(phase models.SeasonPhase) string {
	switch phase {
	case models.PhaseKickoff:
		return "Kickoff"
	case models.PhaseMasters1:
		return "Masters Santiago"
	case models.PhaseStage1:
		return "Stage 1"
	case models.PhaseStage1Playoffs:
		return "Stage 1 Playoffs"
	case models.PhaseMasters2:
		return "Masters Reykjavik"
	case models.PhaseStage2:
		return "Stage 2"
	case models.PhaseStage2Playoffs:
		return "Stage 2 Playoffs"
	case models.PhaseChampions:
		return "Champions"
	default:
		return string(phase)
	}
}
