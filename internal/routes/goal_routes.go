package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"goaltrack/internal/config"
	"goaltrack/internal/handlers"
	mw "goaltrack/internal/middleware"
	"goaltrack/internal/repository"
)

func RegisterGoalRoutes(router chi.Router, db *sql.DB, cfg *config.Config) {
	goalRepo := repository.NewGoalRepository(db)
	goalHandler := handlers.NewGoalHandler(goalRepo)

	router.Route("/goals", func(r chi.Router) {
		r.Use(mw.JWTAuth(cfg.JWTSecret))

		r.Get("/", goalHandler.ListGoals)
		r.Post("/", goalHandler.CreateGoal)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", goalHandler.GetGoal)
			r.Put("/", goalHandler.UpdateGoal)
			r.Delete("/", goalHandler.DeleteGoal)
		})
	})
}
