package usecases

import (
	"context"
	"crypto/subtle"

	"course-gate.backend/internal/domain/entities"
	domainerrors "course-gate.backend/internal/domain/errors"
	"course-gate.backend/pkg/crypto"
	"course-gate.backend/pkg/jwt"
)

// AdminAuthUsecase authenticates the configured admin account.
// There is a single admin identity, sourced from configuration; no admin
// rows live in the database.
type AdminAuthUsecase struct {
	adminEmail        string
	adminPasswordHash string
	jwtService        *jwt.JWTService
}

// NewAdminAuthUsecase creates a new admin auth usecase
func NewAdminAuthUsecase(adminEmail, adminPasswordHash string, jwtService *jwt.JWTService) *AdminAuthUsecase {
	return &AdminAuthUsecase{
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		jwtService:        jwtService,
	}
}

// Login checks the credentials against the configured admin account and
// returns a JWT token pair.
func (u *AdminAuthUsecase) Login(ctx context.Context, input *entities.AdminLoginInput) (*entities.AdminAuthResponse, error) {
	if u.adminEmail == "" || u.adminPasswordHash == "" {
		return nil, domainerrors.NewError("admin account is not configured", domainerrors.ErrUnauthorized)
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(input.Email), []byte(u.adminEmail)) == 1
	if !emailMatch || !crypto.CheckPassword(input.Password, u.adminPasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(u.adminEmail, "admin")
	if err != nil {
		return nil, err
	}

	return &entities.AdminAuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		Email:        u.adminEmail,
	}, nil
}
