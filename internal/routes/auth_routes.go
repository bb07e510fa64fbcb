package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"goaltrack/internal/config"
	"goaltrack/internal/handlers"
	mw "goaltrack/internal/middleware"
	"goaltrack/internal/services"
)

func RegisterAuthRoutes(router chi.Router, db *sql.DB, cfg *config.Config) {
	mailer := &services.SMTPSender{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		User:   cfg.SMTPUser,
		Pass:   cfg.SMTPPassword,
		From:   cfg.SMTPFrom,
		UseTLS: cfg.SMTPUseTLS,
	}
	authHandler := handlers.NewAuthHandler(db, cfg, mailer)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
		r.Get("/refresh", authHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(mw.JWTAuth(cfg.JWTSecret))
			r.Get("/profile", authHandler.Profile)
		})
	})
}
