package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"course-gate.backend/internal/domain/entities"
	domainerrors "course-gate.backend/internal/domain/errors"
	"course-gate.backend/internal/interfaces/http/middleware"
	"course-gate.backend/internal/interfaces/http/response"
	"course-gate.backend/pkg/crypto"
	"course-gate.backend/pkg/redis"
)

// SessionTTL is how long an admin session stays valid in Redis
const SessionTTL = 24 * time.Hour

// AdminAuthService authenticates the admin account
type AdminAuthService interface {
	Login(ctx context.Context, input *entities.AdminLoginInput) (*entities.AdminAuthResponse, error)
}

// SessionStore persists admin sessions
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// AdminAuthHandler handles admin login and logout
type AdminAuthHandler struct {
	service  AdminAuthService
	sessions SessionStore
}

// NewAdminAuthHandler creates a new admin auth handler
func NewAdminAuthHandler(service AdminAuthService, sessions SessionStore) *AdminAuthHandler {
	return &AdminAuthHandler{
		service:  service,
		sessions: sessions,
	}
}

// Login authenticates the admin
// POST /api/v1/admin/login
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var input entities.AdminLoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.service.Login(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "Invalid email or password", err))
			return
		}
		response.Error(c, err)
		return
	}

	body := gin.H{
		"email": authResponse.Email,
	}

	// Browser clients ask for a session and never see the raw tokens;
	// API clients get the token pair directly.
	if input.UseSession && h.sessions != nil {
		sessionID, err := crypto.GenerateSessionID()
		if err != nil {
			response.Error(c, err)
			return
		}
		err = h.sessions.CreateSession(c.Request.Context(), sessionID, &redis.SessionData{
			AccessToken:  authResponse.AccessToken,
			RefreshToken: authResponse.RefreshToken,
		}, SessionTTL)
		if err != nil {
			response.Error(c, err)
			return
		}
		body["sessionId"] = sessionID
	} else {
		body["accessToken"] = authResponse.AccessToken
		body["refreshToken"] = authResponse.RefreshToken
	}

	response.Success(c, http.StatusOK, body)
}

// Logout deletes the admin session
// POST /api/v1/admin/logout
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetHeader(middleware.SessionIDHeader)
	if sessionID == "" {
		response.Error(c, domainerrors.BadRequest("Session id is required"))
		return
	}

	if h.sessions != nil {
		if err := h.sessions.DeleteSession(c.Request.Context(), sessionID); err != nil {
			response.Error(c, err)
			return
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Logged out",
	})
}
