package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Nosajool/vct-manager-sub005/services"
	"github.com/go-chi/chi/v5"
)

type SeasonHandler struct {
	seasonService services.SeasonService
}

func NewSeasonHandler(seasonService services.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService}
}

type createSeasonRequest struct {
	Year      int       `json:"year"`
	StartDate time.Time `json:"start_date"`
}

func (h *SeasonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input createSeasonRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Year == 0 {
		badRequestResponse(w, r, errors.New("year is required"))
		return
	}
	if input.StartDate.IsZero() {
		input.StartDate = time.Now()
	}

	season, err := h.seasonService.CreateSeason(r.Context(), input.Year, input.StartDate)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	season, err := h.seasonService.GetCurrentSeason(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeasonHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.seasonService.GetStandings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdvancePhase переводит сезон в следующую фазу; ответ содержит сезон и
// турнир новой фазы (null для offseason).
func (h *SeasonHandler) AdvancePhase(w http.ResponseWriter, r *http.Request) {
	season, tournament, err := h.seasonService.AdvancePhase(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"season":     season,
		"tournament": tournament,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
