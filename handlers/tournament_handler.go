package handlers

import (
	"net/http"
	"time"

	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/Nosajool/vct-manager-sub005/services"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	matchService      services.MatchService
}

func NewTournamentHandler(tournamentService services.TournamentService, matchService services.MatchService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
		matchService:      matchService,
	}
}

type createTournamentRequest struct {
	Name           string                `json:"name"`
	Type           models.TournamentType `json:"type"`
	Format         models.BracketFormat  `json:"format"`
	Region         models.Region         `json:"region"`
	SeasonID       string                `json:"season_id"`
	TeamIDs        []string              `json:"team_ids"`
	StartDate      time.Time             `json:"start_date"`
	TotalPrizePool int                   `json:"total_prize_pool"`
	Groups         int                   `json:"groups"`

	// Только для формата swiss_to_playoff.
	SwissTeamIDs       []string `json:"swiss_team_ids"`
	PlayoffOnlyTeamIDs []string `json:"playoff_only_team_ids"`
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input createTournamentRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var (
		tournament *models.Tournament
		err        error
	)
	if input.Format == models.FormatSwissToPlayoff {
		tournament, err = h.tournamentService.CreateMasters(r.Context(), services.CreateMastersParams{
			Name:               input.Name,
			SeasonID:           input.SeasonID,
			SwissTeamIDs:       input.SwissTeamIDs,
			PlayoffOnlyTeamIDs: input.PlayoffOnlyTeamIDs,
			StartDate:          input.StartDate,
			TotalPrizePool:     input.TotalPrizePool,
		})
	} else {
		tournament, err = h.tournamentService.CreateTournament(r.Context(), services.CreateTournamentParams{
			Name:           input.Name,
			Type:           input.Type,
			Format:         input.Format,
			Region:         input.Region,
			SeasonID:       input.SeasonID,
			TeamIDs:        input.TeamIDs,
			StartDate:      input.StartDate,
			TotalPrizePool: input.TotalPrizePool,
			Groups:         input.Groups,
		})
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.ListTournaments(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	tournament, results, err := h.tournamentService.GetTournament(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"tournament": tournament,
		"results":    results,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStandings отдаёт таблицу швейцарского этапа либо итоговые места сетки,
// в зависимости от стадии турнира.
func (h *TournamentHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.tournamentService.GetStandings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult проводит результат матча через движок турнира и возвращает
// обновлённый снимок.
func (h *TournamentHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var input models.MatchResult
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.matchService.RecordResult(
		r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "matchID"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
