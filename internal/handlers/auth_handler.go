package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"goaltrack/internal/config"
	"goaltrack/internal/middleware"
	"goaltrack/internal/models"
	"goaltrack/internal/repository"
	"goaltrack/internal/services"
)

const (
	refreshCookieName = "refreshToken"
	accessCookieName  = "accessToken"

	resetTokenTTL = 15 * time.Minute
)

type AuthHandler struct {
	users  repository.UserRepository
	resets repository.PasswordResetRepository
	mailer services.EmailSender
	cfg    *config.Config
	v      *validator.Validate
}

func NewAuthHandler(db *sql.DB, cfg *config.Config, mailer services.EmailSender) *AuthHandler {
	return &AuthHandler{
		users:  repository.NewUserRepository(db),
		resets: repository.NewPasswordResetRepository(db),
		mailer: mailer,
		cfg:    cfg,
		v:      validator.New(),
	}
}

// @Tags Auth
// @Summary Sign up
// @Accept json
// @Produce json
// @Param body body models.SignupRequest true "Signup request"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "signup_failed", "Failed to create user")
		return
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if req.Name != "" {
		u.Name = &req.Name
	}

	if err := h.users.Create(r.Context(), u); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			writeJSONError(w, http.StatusConflict, "email_taken", "User already exists")
			return
		}
		log.Printf("signup: create user: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "signup_failed", "Failed to create user")
		return
	}

	signed, expiresIn, err := h.signAccessToken(u)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "signup_failed", "Failed to create user")
		return
	}
	h.setRefreshCookie(w, u)

	writeJSON(w, http.StatusCreated, models.AuthResponse{
		AccessToken: signed,
		ExpiresIn:   expiresIn,
		User:        u,
	})
}

// @Tags Auth
// @Summary Log in
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	// Unknown email and wrong password answer identically.
	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
		return
	}

	signed, expiresIn, err := h.signAccessToken(u)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "login_failed", "Failed to login")
		return
	}
	h.setRefreshCookie(w, u)

	writeJSON(w, http.StatusOK, models.AuthResponse{
		AccessToken: signed,
		ExpiresIn:   expiresIn,
		User:        u,
	})
}

// @Tags Auth
// @Summary Get own profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetByID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		if err.Error() == "user not found" {
			writeJSONError(w, http.StatusNotFound, "user_not_found", "User not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "get_profile_failed", "Failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// @Tags Auth
// @Summary Rotate access token
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/refresh [get]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", "No refresh token")
		return
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.cfg.JWTRefreshSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || token == nil || !token.Valid {
		writeJSONError(w, http.StatusUnauthorized, "invalid_refresh_token", "Invalid refresh token")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "invalid_refresh_token", "Invalid refresh token")
		return
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		writeJSONError(w, http.StatusUnauthorized, "invalid_refresh_token", "Invalid refresh token")
		return
	}

	// Re-query so the fresh token carries the current role, not the one at
	// refresh-token issuance.
	u, err := h.users.GetByID(r.Context(), sub)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid_refresh_token", "Invalid refresh token")
		return
	}

	signed, expiresIn, err := h.signAccessToken(u)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "refresh_failed", "Failed to refresh token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(expiresIn),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"message": "Token refreshed", "expires_in": expiresIn})
}

// @Tags Auth
// @Summary Request a password reset
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ack := func() {
		writeJSONMessage(w, http.StatusOK, "If the email exists, we sent a reset link.")
	}

	// The acknowledgment is identical for every input, including malformed
	// bodies, so responses never reveal whether an account exists.
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ack()
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		ack()
		return
	}

	u, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		ack()
		return
	}

	rawToken, tokenHash, err := generateResetToken()
	if err != nil {
		ack()
		return
	}

	now := time.Now().UTC()
	prt := &models.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(resetTokenTTL),
		CreatedAt: now,
	}
	if err := h.resets.Create(r.Context(), prt); err != nil {
		log.Printf("forgot-password: store token: %v", err)
		ack()
		return
	}

	resetURL := h.cfg.AppBaseURL + "/reset-password?token=" + rawToken
	subject := "Reset your password"
	body := "Use this link to reset your password:\n\n" + resetURL + "\n\nThe link expires in 15 minutes."
	if err := h.mailer.Send(u.Email, subject, body); err != nil {
		log.Printf("forgot-password: send mail: %v", err)
	}

	if !h.cfg.IsProduction() {
		log.Printf("password reset link: %s", resetURL)
		if h.cfg.AuthReturnResetToken {
			writeJSON(w, http.StatusOK, map[string]any{
				"message": "If the email exists, we sent a reset link.",
				"token":   rawToken,
			})
			return
		}
	}

	ack()
}

// @Tags Auth
// @Summary Reset password with a token
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	hash := sha256.Sum256([]byte(req.Token))
	tokenHash := hex.EncodeToString(hash[:])

	token, err := h.resets.GetValidByTokenHash(r.Context(), tokenHash)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_token", "Reset link is invalid or has expired")
		return
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	if err := h.users.UpdatePasswordHash(r.Context(), token.UserID, string(pwHash)); err != nil {
		log.Printf("reset-password: update hash: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	if err := h.resets.Consume(r.Context(), token, time.Now().UTC()); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_token", "Reset link is invalid or has expired")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Password has been reset successfully")
}

func (h *AuthHandler) signAccessToken(u *models.User) (string, int64, error) {
	expiresIn := h.cfg.JWTExpiresInSeconds
	if expiresIn <= 0 {
		expiresIn = 3600
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"role":  u.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(expiresIn) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	return signed, expiresIn, err
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, u *models.User) {
	expiresIn := h.cfg.RefreshExpiresInSeconds
	if expiresIn <= 0 {
		expiresIn = 7 * 24 * 3600
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": u.ID,
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(expiresIn) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTRefreshSecret))
	if err != nil {
		log.Printf("sign refresh token: %v", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(expiresIn),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func generateResetToken() (rawToken string, tokenHash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	rawToken = hex.EncodeToString(b)
	h := sha256.Sum256([]byte(rawToken))
	tokenHash = hex.EncodeToString(h[:])
	return rawToken, tokenHash, nil
}
