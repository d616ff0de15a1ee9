package routes

import (
	"github.com/Nosajool/vct-manager-sub005/handlers"
	"github.com/Nosajool/vct-manager-sub005/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Team       *handlers.TeamHandler
	Tournament *handlers.TournamentHandler
	Season     *handlers.SeasonHandler
	WebSocket  *handlers.WebSocketHandler
}

func InitRoutes(h Handlers, jwtSecret []byte) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/login", h.Auth.Login)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.List)
		r.Get("/{id}", h.Team.GetByID)

		// Защищённые маршруты администратора лиги
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize("admin"))

			r.Post("/", h.Team.Create)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.List)
		r.Get("/{id}", h.Tournament.GetByID)
		r.Get("/{id}/standings", h.Tournament.GetStandings)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize("admin"))

			r.Post("/", h.Tournament.Create)
			r.Post("/{id}/matches/{matchID}/result", h.Tournament.RecordResult)
		})
	})

	router.Route("/seasons", func(r chi.Router) {
		r.Get("/current", h.Season.GetCurrent)
		r.Get("/{id}/standings", h.Season.GetStandings)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize("admin"))

			r.Post("/", h.Season.Create)
			r.Post("/{id}/advance", h.Season.AdvancePhase)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	return router
}
