package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"course-gate.backend/internal/domain/entities"
	domainerrors "course-gate.backend/internal/domain/errors"
	"course-gate.backend/internal/interfaces/http/response"
)

// TokenService covers the admin token lifecycle and read operations
type TokenService interface {
	IssueToken(ctx context.Context, email string) (*entities.IssueTokenResult, error)
	Revoke(ctx context.Context, studentID uuid.UUID) error
	ListStudents(ctx context.Context) ([]*entities.Student, error)
	ListLoginHistory(ctx context.Context, limit int) ([]*entities.LoginRecord, error)
}

// TokenHandler handles admin token management endpoints
type TokenHandler struct {
	service TokenService
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(service TokenService) *TokenHandler {
	return &TokenHandler{service: service}
}

// IssueToken issues a new access token for a student email
// POST /api/v1/admin/tokens
func (h *TokenHandler) IssueToken(c *gin.Context) {
	var input entities.IssueTokenInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.service.IssueToken(c.Request.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidInput):
			response.Error(c, domainerrors.BadRequest("A valid email address is required"))
		case errors.Is(err, domainerrors.ErrAlreadyActive):
			// The existing token is returned alongside the conflict so
			// the admin can hand it out again without a revoke cycle.
			response.Success(c, http.StatusConflict, gin.H{
				"code":      domainerrors.CodeAlreadyActive,
				"message":   "Student already has an active token",
				"token":     result.Token,
				"expiresAt": result.ExpiresAt,
			})
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
	})
}

// RevokeToken deactivates a student's token
// DELETE /api/v1/admin/students/:id/token
func (h *TokenHandler) RevokeToken(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid student id"))
		return
	}

	if err := h.service.Revoke(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Token revoked",
	})
}

// ListStudents lists all students, newest first
// GET /api/v1/admin/students
func (h *TokenHandler) ListStudents(c *gin.Context) {
	students, err := h.service.ListStudents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]gin.H, 0, len(students))
	for _, s := range students {
		item := gin.H{
			"id":        s.ID,
			"email":     s.Email,
			"token":     s.Token,
			"isActive":  s.IsActive,
			"expiresAt": s.ExpiresAt,
			"createdAt": s.CreatedAt,
		}
		if s.LastLogin.Valid {
			item["lastLogin"] = s.LastLogin.Time
		}
		if s.LastIP.Valid {
			item["lastIp"] = s.LastIP.String
		}
		items = append(items, item)
	}

	response.Success(c, http.StatusOK, gin.H{
		"students": items,
		"count":    len(items),
	})
}

// ListLoginHistory lists the most recent login attempts
// GET /api/v1/admin/login-history?limit=50
func (h *TokenHandler) ListLoginHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("limit must be an integer"))
			return
		}
		limit = parsed
	}

	records, err := h.service.ListLoginHistory(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, r := range records {
		item := gin.H{
			"id":        r.ID,
			"email":     r.Email,
			"ip":        r.IP,
			"userAgent": r.UserAgent,
			"success":   r.Success,
			"loginTime": r.LoginTime,
		}
		if r.StudentID.Valid {
			item["studentId"] = r.StudentID.String
		}
		items = append(items, item)
	}

	response.Success(c, http.StatusOK, gin.H{
		"history": items,
		"count":   len(items),
	})
}
