package routes

import (
	"net/http"

	_ "github.com/Dosada05/tournament-engine/docs"
	"github.com/Dosada05/tournament-engine/handlers"
	"github.com/Dosada05/tournament-engine/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Bracket      *handlers.BracketHandler
	Match        *handlers.MatchHandler
	Standings    *handlers.StandingsHandler
	Registration *handlers.RegistrationHandler
	WebSocket    *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(opts.JWTSecret)
	limit := middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst)

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Route("/tournaments/{tournamentID}", func(r chi.Router) {
		r.Get("/bracket", h.Bracket.GetHandler)
		r.Get("/bracket/matches", h.Bracket.ListMatchesHandler)
		r.Get("/bracket/path/{matchID}", h.Bracket.PathHandler)
		r.Get("/queue", h.Registration.QueueHandler)
		r.Get("/queue/{teamID}", h.Registration.PositionHandler)

		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Use(authenticate)

			r.Post("/bracket", h.Bracket.GenerateHandler)
			r.Post("/bracket/export", h.Bracket.ExportHandler)
			r.Post("/registrations", h.Registration.RegisterHandler)
			r.Delete("/registrations/{teamID}", h.Registration.WithdrawHandler)
			r.Delete("/queue/{teamID}", h.Registration.CancelQueuedHandler)
		})
	})

	router.Route("/matches/{matchID}", func(r chi.Router) {
		r.Get("/history", h.Match.HistoryHandler)

		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Use(authenticate)

			r.Put("/result", h.Match.RecordResultHandler)
			r.Post("/undo", h.Match.UndoHandler)
		})
	})

	router.Route("/groups/{groupID}", func(r chi.Router) {
		r.Get("/standings", h.Standings.GroupStandingsHandler)
		r.With(limit, authenticate).Delete("/standings/cache", h.Standings.InvalidateHandler)
	})

	router.Get("/standings/cache/stats", h.Standings.CacheStatsHandler)
}
