package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"goaltrack/internal/middleware"
	"goaltrack/internal/models"
	"goaltrack/internal/repository"
)

type UserHandler struct {
	users repository.UserRepository
	v     *validator.Validate
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users, v: validator.New()}
}

// @Tags Account
// @Summary Update own profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.UpdateProfileRequest true "Profile update"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/users/me [patch]
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	id := middleware.UserID(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "Name must be between 2 and 60 characters")
		return
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "Current password is required")
			return
		}
		if len(req.NewPassword) < 8 {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "New password must be at least 8 characters")
			return
		}
		if req.NewPassword == req.CurrentPassword {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "New password must be different from current password")
			return
		}

		u, err := h.users.GetByID(r.Context(), id)
		if err != nil {
			if err.Error() == "user not found" {
				writeJSONError(w, http.StatusNotFound, "user_not_found", "User not found")
				return
			}
			writeJSONError(w, http.StatusInternalServerError, "update_failed", "Failed to update profile")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid_password", "Current password is incorrect")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "update_failed", "Failed to update profile")
			return
		}
		if err := h.users.UpdatePasswordHash(r.Context(), id, string(hash)); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "update_failed", "Failed to update profile")
			return
		}
	}

	if err := h.users.UpdateName(r.Context(), id, &req.Name); err != nil {
		if err.Error() == "user not found" {
			writeJSONError(w, http.StatusNotFound, "user_not_found", "User not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "update_failed", "Failed to update profile")
		return
	}

	updated, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "update_failed", "Failed to fetch updated profile")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
