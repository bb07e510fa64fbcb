package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"goaltrack/internal/handlers"
	"goaltrack/internal/repository"
)

func RegisterArticleRoutes(router chi.Router, db *sql.DB) {
	articleRepo := repository.NewArticleRepository(db)
	articleHandler := handlers.NewArticleHandler(articleRepo)

	router.Route("/articles", func(r chi.Router) {
		r.Get("/", articleHandler.ListArticles)
		r.Post("/", articleHandler.CreateArticle)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", articleHandler.GetArticle)
			r.Patch("/", articleHandler.UpdateArticle)
			r.Delete("/", articleHandler.DeleteArticle)
		})
	})
}
