package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"goaltrack/internal/config"
	"goaltrack/internal/handlers"
	mw "goaltrack/internal/middleware"
	"goaltrack/internal/repository"
)

func RegisterAdminRoutes(router chi.Router, db *sql.DB, cfg *config.Config) {
	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	adminHandler := handlers.NewAdminHandler(userRepo, goalRepo)

	router.Route("/admin", func(r chi.Router) {
		r.Use(mw.JWTAuth(cfg.JWTSecret))
		r.Use(mw.RequireAdmin(userRepo))

		r.Get("/users", adminHandler.ListUsers)
		r.Put("/users/{id}", adminHandler.ChangeRole)
		r.Delete("/users/{id}", adminHandler.DeleteUser)
		r.Get("/goals", adminHandler.ListAllGoals)
	})
}
