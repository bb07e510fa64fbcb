package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"goaltrack/internal/middleware"
	"goaltrack/internal/models"
	"goaltrack/internal/repository"
)

type GoalHandler struct {
	goals repository.GoalRepository
	v     *validator.Validate
}

func NewGoalHandler(goals repository.GoalRepository) *GoalHandler {
	return &GoalHandler{goals: goals, v: validator.New()}
}

// fetchOwned loads the goal and answers 404 both when it is absent and when
// it belongs to someone else, so existence is never revealed.
func (h *GoalHandler) fetchOwned(w http.ResponseWriter, r *http.Request) *models.Goal {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Goal ID is required")
		return nil
	}

	g, err := h.goals.GetByID(r.Context(), id)
	if err != nil {
		if err.Error() == "goal not found" {
			writeJSONError(w, http.StatusNotFound, "goal_not_found", "Goal not found")
			return nil
		}
		writeJSONError(w, http.StatusInternalServerError, "get_goal_failed", "Failed to fetch goal")
		return nil
	}
	if g.UserID != middleware.UserID(r.Context()) {
		writeJSONError(w, http.StatusNotFound, "goal_not_found", "Goal not found")
		return nil
	}
	return g
}

// @Tags Goals
// @Summary List own goals
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Goal
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/goals [get]
func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goals.ListByUser(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "list_goals_failed", "Failed to list goals")
		return
	}

	if goals == nil {
		goals = []models.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

// @Tags Goals
// @Summary Create a goal
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateGoalRequest true "Goal"
// @Success 201 {object} models.Goal
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/goals [post]
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = models.GoalStatusPending
	}

	now := time.Now().UTC()
	g := &models.Goal{
		ID:          uuid.NewString(),
		UserID:      middleware.UserID(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.goals.Create(r.Context(), g); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "create_goal_failed", "Failed to create goal")
		return
	}

	writeJSON(w, http.StatusCreated, g)
}

// @Tags Goals
// @Summary Get a goal
// @Security BearerAuth
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} models.Goal
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/goals/{id} [get]
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	g := h.fetchOwned(w, r)
	if g == nil {
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// @Tags Goals
// @Summary Update a goal
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param body body models.UpdateGoalRequest true "Goal update"
// @Success 200 {object} models.Goal
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/goals/{id} [put]
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	g := h.fetchOwned(w, r)
	if g == nil {
		return
	}

	var req models.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if req.Title != nil {
		g.Title = *req.Title
	}
	if req.Description != nil {
		g.Description = req.Description
	}
	if req.Status != nil {
		g.Status = *req.Status
	}
	g.UpdatedAt = time.Now().UTC()

	if err := h.goals.Update(r.Context(), g); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "update_goal_failed", "Failed to update goal")
		return
	}

	writeJSON(w, http.StatusOK, g)
}

// @Tags Goals
// @Summary Delete a goal
// @Security BearerAuth
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	g := h.fetchOwned(w, r)
	if g == nil {
		return
	}

	if err := h.goals.Delete(r.Context(), g.ID); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "delete_goal_failed", "Failed to delete goal")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Goal deleted successfully")
}
