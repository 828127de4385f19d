package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"course-gate.backend/internal/domain/entities"
	domainerrors "course-gate.backend/internal/domain/errors"
	"course-gate.backend/internal/interfaces/http/response"
)

// LoginService verifies student credentials
type LoginService interface {
	Verify(ctx context.Context, attempt *entities.LoginAttempt) (*entities.VerifyResult, error)
}

// LoginHandler handles the public student login endpoint
type LoginHandler struct {
	service LoginService
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(service LoginService) *LoginHandler {
	return &LoginHandler{service: service}
}

// Login verifies a student's email and token
// POST /api/v1/login
func (h *LoginHandler) Login(c *gin.Context) {
	var input entities.VerifyInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	attempt := &entities.LoginAttempt{
		Email:     input.Email,
		Token:     input.Token,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	result, err := h.service.Verify(c.Request.Context(), attempt)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidCredentials):
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "Invalid email or token", err))
		case errors.Is(err, domainerrors.ErrTokenExpired):
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeTokenExpired, "Token has expired", err))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"studentId": result.StudentID,
		"redirect":  result.RedirectTarget,
	})
}
