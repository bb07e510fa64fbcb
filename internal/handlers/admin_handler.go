package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"goaltrack/internal/models"
	"goaltrack/internal/repository"
)

type AdminHandler struct {
	users repository.UserRepository
	goals repository.GoalRepository
	v     *validator.Validate
}

func NewAdminHandler(users repository.UserRepository, goals repository.GoalRepository) *AdminHandler {
	return &AdminHandler{users: users, goals: goals, v: validator.New()}
}

// @Tags Admin
// @Summary List all users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListWithGoalCounts(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "list_users_failed", "Failed to list users")
		return
	}

	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// @Tags Admin
// @Summary Change a user's role
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body models.ChangeRoleRequest true "New role"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/users/{id} [put]
func (h *AdminHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "User ID is required")
		return
	}

	var req models.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_role", "Role must be user or admin")
		return
	}

	if err := h.users.UpdateRole(r.Context(), id, req.Role); err != nil {
		if err.Error() == "user not found" {
			writeJSONError(w, http.StatusNotFound, "user_not_found", "User not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "update_role_failed", "Failed to update role")
		return
	}

	updated, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "get_user_failed", "Failed to fetch updated user")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// @Tags Admin
// @Summary Delete a user and their data
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "User ID is required")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		if err.Error() == "user not found" {
			writeJSONError(w, http.StatusNotFound, "user_not_found", "User not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "delete_user_failed", "Failed to delete user")
		return
	}

	writeJSONMessage(w, http.StatusOK, "User has been deleted successfully")
}

// @Tags Admin
// @Summary List all goals across users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Goal
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/admin/goals [get]
func (h *AdminHandler) ListAllGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goals.ListAllWithOwners(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "list_goals_failed", "Failed to list goals")
		return
	}

	if goals == nil {
		goals = []models.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}
