package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"goaltrack/internal/config"
	"goaltrack/internal/handlers"
	mw "goaltrack/internal/middleware"
	"goaltrack/internal/repository"
)

func RegisterUserRoutes(router chi.Router, db *sql.DB, cfg *config.Config) {
	userRepo := repository.NewUserRepository(db)
	userHandler := handlers.NewUserHandler(userRepo)

	router.Route("/users", func(r chi.Router) {
		r.Use(mw.JWTAuth(cfg.JWTSecret))
		r.Patch("/me", userHandler.UpdateMe)
	})
}
