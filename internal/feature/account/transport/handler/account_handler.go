// Package handler provides the HTTP handlers for the account feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/api"
	"account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/account/usecase"
	"account_backend/internal/platform/session"
)

// cookieMaxAge matches the session lifetime in the usecase layer.
const cookieMaxAge = 7 * 24 * 60 * 60

// AccountUsecase defines the usecase for account operations.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AccountUsecase interface {
	// Register creates a new user. It does not log the user in.
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	// Login authenticates a user and returns the user and a session token.
	Login(ctx context.Context, email, password string, meta usecase.SessionMeta) (*entity.User, string, error)
	// Profile loads the user a session refers to.
	Profile(ctx context.Context, userID uint) (*entity.User, error)
	// UpdateProfile applies profile changes for the authenticated user.
	UpdateProfile(ctx context.Context, sc usecase.SessionContext, in usecase.UpdateProfileInput) (*entity.User, error)
	// Logout destroys a session; unknown sessions are not an error.
	Logout(ctx context.Context, sessionID string) error
}

// AccountHandler handles HTTP requests for account operations.
// It depends on the AccountUsecase interface and processes JSON requests/responses.
type AccountHandler struct {
	account AccountUsecase
}

// NewAccountHandler creates a new instance of AccountHandler.
func NewAccountHandler(account AccountUsecase) *AccountHandler {
	return &AccountHandler{account: account}
}

// profileBody converts a user entity to its API representation.
func profileBody(u *entity.User) api.ProfileResponse {
	return api.ProfileResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Register handles the user registration endpoint.
// - Binds the request JSON and returns 400 on validation errors
// - Returns 409 when the email is already registered
// - Returns 201 on success; the client must log in separately
func (h *AccountHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	_, err := h.account.Register(c.Request.Context(), req.Name, string(req.Email), req.Password)
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email already registered"})
		return
	case errors.Is(err, usecase.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "password must be at least 8 characters"})
		return
	case err != nil:
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "registration failed"})
		return
	}

	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Login handles the user login endpoint.
// On success it sets the session cookie and returns the profile.
// Authentication failures return 401 with a body that does not reveal
// whether the email or the password was wrong.
func (h *AccountHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	meta := usecase.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
	user, token, err := h.account.Login(c.Request.Context(), string(req.Email), req.Password, meta)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "login failed"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, cookieMaxAge, "/", "", false, true)

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, profileBody(user))
}

// Profile returns the authenticated user's profile.
// AuthRequired middleware has already resolved the session.
func (h *AccountHandler) Profile(c *gin.Context) {
	userID := c.GetUint(session.ContextUserID)

	user, err := h.account.Profile(c.Request.Context(), userID)
	if err != nil {
		slog.Error("profile load failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profileBody(user))
}

// UpdateProfile handles profile edits for the authenticated user.
// - 400 on validation errors or a too-short new password
// - 409 when the new email belongs to a different user
// - 200 with the updated profile on success
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req api.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	sc := usecase.SessionContext{
		SessionID: c.GetString(session.ContextSessionID),
		UserID:    c.GetUint(session.ContextUserID),
	}
	in := usecase.UpdateProfileInput{
		Name:        req.Name,
		Email:       string(req.Email),
		NewPassword: req.Password,
	}

	user, err := h.account.UpdateProfile(c.Request.Context(), sc, in)
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		slog.Warn("profile update conflict", "user_id", sc.UserID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email already registered"})
		return
	case errors.Is(err, usecase.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "password must be at least 8 characters"})
		return
	case err != nil:
		slog.Error("profile update failed", "error", err, "user_id", sc.UserID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update profile"})
		return
	}

	slog.Info("profile updated", "user_id", sc.UserID)
	c.JSON(http.StatusOK, profileBody(user))
}

// Logout clears the session unconditionally.
// It is reachable without authentication so that a client holding a stale
// cookie can always log out; the operation is idempotent.
func (h *AccountHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(session.CookieName)
	if err == nil && token != "" {
		if err := h.account.Logout(c.Request.Context(), token); err != nil {
			slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "logout failed"})
			return
		}
	}

	// Expire the cookie regardless of whether a session existed
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}
