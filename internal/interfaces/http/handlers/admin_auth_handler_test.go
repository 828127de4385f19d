package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"course-gate.backend/internal/domain/entities"
	domainerrors "course-gate.backend/internal/domain/errors"
	"course-gate.backend/pkg/redis"
)

type adminAuthServiceStub struct {
	loginFn func(ctx context.Context, input *entities.AdminLoginInput) (*entities.AdminAuthResponse, error)
}

func (s adminAuthServiceStub) Login(ctx context.Context, input *entities.AdminLoginInput) (*entities.AdminAuthResponse, error) {
	return s.loginFn(ctx, input)
}

type sessionStoreStub struct {
	createFn func(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	deleteFn func(ctx context.Context, sessionID string) error
}

func (s sessionStoreStub) CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error {
	return s.createFn(ctx, sessionID, data, expiration)
}
func (s sessionStoreStub) DeleteSession(ctx context.Context, sessionID string) error {
	return s.deleteFn(ctx, sessionID)
}

func newAdminAuthRouter(h *AdminAuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/login", h.Login)
	r.POST("/admin/logout", h.Logout)
	return r
}

func TestAdminAuthHandler_Login_TokenMode(t *testing.T) {
	h := NewAdminAuthHandler(adminAuthServiceStub{
		loginFn: func(_ context.Context, input *entities.AdminLoginInput) (*entities.AdminAuthResponse, error) {
			assert.Equal(t, "admin@course.edu", input.Email)
			return &entities.AdminAuthResponse{
				AccessToken:  "access-jwt",
				RefreshToken: "refresh-jwt",
				Email:        "admin@course.edu",
			}, nil
		},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(`{"email":"admin@course.edu","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	newAdminAuthRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access-jwt")
	assert.Contains(t, w.Body.String(), "refresh-jwt")
}

func TestAdminAuthHandler_Login_SessionMode(t *testing.T) {
	var storedData *redis.SessionData
	var createdSessionID string

	h := NewAdminAuthHandler(adminAuthServiceStub{
		loginFn: func(context.Context, *entities.AdminLoginInput) (*entities.AdminAuthResponse, error) {
			return &entities.AdminAuthResponse{
				AccessToken:  "access-jwt",
				RefreshToken: "refresh-jwt",
				Email:        "admin@course.edu",
			}, nil
		},
	}, sessionStoreStub{
		createFn: func(_ context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error {
			createdSessionID = sessionID
			storedData = data
			assert.Equal(t, SessionTTL, expiration)
			return nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(`{"email":"admin@course.edu","password":"pw","useSession":true}`))
	req.Header.Set("Content-Type", "application/json")
	newAdminAuthRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, createdSessionID)
	assert.Contains(t, w.Body.String(), createdSessionID)
	// Raw tokens stay server-side in session mode
	assert.NotContains(t, w.Body.String(), "access-jwt")
	assert.Equal(t, "access-jwt", storedData.AccessToken)
}

func TestAdminAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAdminAuthHandler(adminAuthServiceStub{
		loginFn: func(context.Context, *entities.AdminLoginInput) (*entities.AdminAuthResponse, error) {
			return nil, domainerrors.ErrInvalidCredentials
		},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(`{"email":"admin@course.edu","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	newAdminAuthRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeInvalidCredentials)
}

func TestAdminAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAdminAuthHandler(adminAuthServiceStub{
		loginFn: func(context.Context, *entities.AdminLoginInput) (*entities.AdminAuthResponse, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBufferString(`{"email":"admin@course.edu"}`))
	req.Header.Set("Content-Type", "application/json")
	newAdminAuthRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminAuthHandler_Logout(t *testing.T) {
	deleted := ""
	h := NewAdminAuthHandler(adminAuthServiceStub{}, sessionStoreStub{
		deleteFn: func(_ context.Context, sessionID string) error {
			deleted = sessionID
			return nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.Header.Set("X-Session-Id", "sess-42")
	newAdminAuthRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-42", deleted)
}

func TestAdminAuthHandler_Logout_MissingSession(t *testing.T) {
	h := NewAdminAuthHandler(adminAuthServiceStub{}, sessionStoreStub{
		deleteFn: func(context.Context, string) error {
			t.Fatal("store must not be called")
			return nil
		},
	})

	w := httptest.NewRecorder()
	newAdminAuthRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/logout", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
