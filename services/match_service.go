package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nosajool/vct-manager-sub005/brackets"
	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/Nosajool/vct-manager-sub005/repositories"
	"github.com/Nosajool/vct-manager-sub005/storage"
)

// MatchService принимает результаты матчей от симулятора и проводит их
// через движок сетки: сам сервис матчи не симулирует.
type MatchService interface {
	RecordResult(ctx context.Context, tournamentID, matchUID string, result models.MatchResult) (*models.Tournament, error)
}

type matchService struct {
	tournamentRepo repositories.TournamentRepository
	resultRepo     repositories.MatchResultRepository
	hub            *brackets.Hub
	archiver       storage.FileUploader
	logger         *slog.Logger
}

func NewMatchService(
	tournamentRepo repositories.TournamentRepository,
	resultRepo repositories.MatchResultRepository,
	hub *brackets.Hub,
	archiver storage.FileUploader,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tournamentRepo: tournamentRepo,
		resultRepo:     resultRepo,
		hub:            hub,
		archiver:       archiver,
		logger:         logger,
	}
}

// RecordResult применяет результат матча к турниру. Для многостадийного
// турнира в швейцарской стадии результат уходит в швейцарский движок; по
// завершении раунда генерируется следующий, по завершении этапа строится
// плей-офф из квалифицировавшихся. Иначе результат проводится через
// CompleteMatch. Новый снимок сохраняется и рассылается подписчикам
// комнаты турнира.
func (s *matchService) RecordResult(ctx context.Context, tournamentID, matchUID string, result models.MatchResult) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status == models.TournamentCompleted {
		return nil, ErrTournamentNotInProgress
	}

	messageType := brackets.MessageBracketUpdated
	if t.IsMultiStage() && t.CurrentStage == models.StageSwiss && t.SwissStage != nil {
		messageType = brackets.MessageSwissUpdated
		stage := brackets.CompleteSwissMatch(*t.SwissStage, matchUID, result)

		switch {
		case brackets.IsSwissStageComplete(stage):
			t.Bracket = GenerateMastersPlayoffBracket(stage.QualifiedTeamIDs, t.PlayoffOnlyTeamIDs, t.ID)
			t.CurrentStage = models.StagePlayoff
			messageType = brackets.MessageStageAdvanced
			s.logger.Info("swiss stage complete, playoff bracket generated",
				slog.String("tournament_id", t.ID),
				slog.Any("qualified", stage.QualifiedTeamIDs))
		case brackets.IsSwissRoundComplete(stage) && stage.CurrentRound < stage.TotalRounds:
			stage = brackets.GenerateNextSwissRound(stage, t.ID)
		}
		t.SwissStage = &stage
	} else {
		t.Bracket = brackets.CompleteMatch(t.Bracket, matchUID, result.WinnerID, result.LoserID, &result)
	}

	s.refreshTournamentStatus(t)

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save tournament snapshot: %w", err)
	}
	if err := s.resultRepo.Create(ctx, &models.StoredMatchResult{
		TournamentID: t.ID,
		MatchUID:     matchUID,
		Result:       result,
	}); err != nil {
		// журнал результатов вторичен по отношению к снимку сетки
		s.logger.Warn("failed to log match result", slog.String("match_uid", matchUID), slog.Any("error", err))
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom("tournament_"+t.ID, brackets.WebSocketMessage{
			Type:    messageType,
			Payload: t,
			RoomID:  "tournament_" + t.ID,
		})
	}

	if t.Status == models.TournamentCompleted {
		s.archiveIfChampions(ctx, t)
	}
	return t, nil
}

// refreshTournamentStatus выводит статус турнира из состояния сетки.
func (s *matchService) refreshTournamentStatus(t *models.Tournament) {
	if t.IsMultiStage() && t.CurrentStage == models.StageSwiss {
		t.Status = models.TournamentInProgress
		return
	}
	switch brackets.GetBracketStatus(t.Bracket) {
	case models.BracketCompleted:
		t.Status = models.TournamentCompleted
	case models.BracketInProgress:
		t.Status = models.TournamentInProgress
	}
}

// archiveIfChampions выгружает итоговый отчёт завершённого Champions в
// архивное хранилище. Ошибка выгрузки не фатальна.
func (s *matchService) archiveIfChampions(ctx context.Context, t *models.Tournament) {
	if s.archiver == nil || t.Type != models.TypeChampions {
		return
	}
	key := fmt.Sprintf("archives/%d/%s.json", time.Now().Year(), t.ID)
	if err := storage.UploadTournamentReport(ctx, s.archiver, key, t); err != nil {
		s.logger.Warn("failed to archive champions report", slog.String("tournament_id", t.ID), slog.Any("error", err))
		return
	}
	s.logger.Info("champions report archived", slog.String("key", key))
}
