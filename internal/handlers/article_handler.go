package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"goaltrack/internal/models"
	"goaltrack/internal/repository"
)

type ArticleHandler struct {
	articles repository.ArticleRepository
	v        *validator.Validate
}

func NewArticleHandler(articles repository.ArticleRepository) *ArticleHandler {
	return &ArticleHandler{articles: articles, v: validator.New()}
}

func articleID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

// @Tags Articles
// @Summary List articles
// @Produce json
// @Success 200 {array} models.Article
// @Router /api/v1/articles [get]
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListAll(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "list_articles_failed", "Failed to list articles")
		return
	}

	if articles == nil {
		articles = []models.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

// @Tags Articles
// @Summary Get an article
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} models.Article
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/articles/{id} [get]
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Article ID must be a number")
		return
	}

	a, err := h.articles.GetByID(r.Context(), id)
	if err != nil {
		if err.Error() == "article not found" {
			writeJSONError(w, http.StatusNotFound, "article_not_found", "Article not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "get_article_failed", "Failed to fetch article")
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// @Tags Articles
// @Summary Create an article
// @Accept json
// @Produce json
// @Param body body models.CreateArticleRequest true "Article"
// @Success 201 {object} models.Article
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/articles [post]
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "Title and content are required")
		return
	}

	now := time.Now().UTC()
	a := &models.Article{
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.articles.Create(r.Context(), a); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "create_article_failed", "Failed to create article")
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

// @Tags Articles
// @Summary Update an article
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param body body models.UpdateArticleRequest true "Article update"
// @Success 200 {object} models.Article
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/articles/{id} [patch]
func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Article ID must be a number")
		return
	}

	var req models.UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Title == nil && req.Content == nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "At least one field (title or content) is required")
		return
	}

	a, err := h.articles.GetByID(r.Context(), id)
	if err != nil {
		if err.Error() == "article not found" {
			writeJSONError(w, http.StatusNotFound, "article_not_found", "Article not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "get_article_failed", "Failed to fetch article")
		return
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	a.UpdatedAt = time.Now().UTC()

	if err := h.articles.Update(r.Context(), a); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "update_article_failed", "Failed to update article")
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// @Tags Articles
// @Summary Delete an article
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/articles/{id} [delete]
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Article ID must be a number")
		return
	}

	if err := h.articles.Delete(r.Context(), id); err != nil {
		if err.Error() == "article not found" {
			writeJSONError(w, http.StatusNotFound, "article_not_found", "Article not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "delete_article_failed", "Failed to delete article")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Article deleted")
}
