package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"course-gate.backend/internal/domain/entities"
	domainerrors "course-gate.backend/internal/domain/errors"
	"course-gate.backend/internal/usecases"
	"course-gate.backend/pkg/crypto"
	"course-gate.backend/pkg/jwt"
)

func newAdminAuthUsecase(t *testing.T, email, password string) *usecases.AdminAuthUsecase {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	return usecases.NewAdminAuthUsecase(email, hash, jwtService)
}

func TestAdminAuthUsecase_Login_Success(t *testing.T) {
	uc := newAdminAuthUsecase(t, "admin@course.edu", "correct-horse")

	resp, err := uc.Login(context.Background(), &entities.AdminLoginInput{
		Email:    "admin@course.edu",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "admin@course.edu", resp.Email)
}

func TestAdminAuthUsecase_Login_WrongPassword(t *testing.T) {
	uc := newAdminAuthUsecase(t, "admin@course.edu", "correct-horse")

	_, err := uc.Login(context.Background(), &entities.AdminLoginInput{
		Email:    "admin@course.edu",
		Password: "battery-staple",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAdminAuthUsecase_Login_WrongEmail(t *testing.T) {
	uc := newAdminAuthUsecase(t, "admin@course.edu", "correct-horse")

	_, err := uc.Login(context.Background(), &entities.AdminLoginInput{
		Email:    "intruder@course.edu",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAdminAuthUsecase_Login_NotConfigured(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	uc := usecases.NewAdminAuthUsecase("", "", jwtService)

	_, err := uc.Login(context.Background(), &entities.AdminLoginInput{
		Email:    "admin@course.edu",
		Password: "anything",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
