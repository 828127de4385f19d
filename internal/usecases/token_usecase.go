package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"course-gate.backend/internal/domain/entities"
	domainerrors "course-gate.backend/internal/domain/errors"
	"course-gate.backend/internal/domain/repositories"
	"course-gate.backend/pkg/crypto"
	"course-gate.backend/pkg/logger"
	"course-gate.backend/pkg/utils"
)

const maxLoginHistoryLimit = 100

// LoginNotifier delivers the admin notification for an accepted login.
// Delivery failures never influence the verification result.
type LoginNotifier interface {
	NotifyLogin(ctx context.Context, student *entities.Student, attempt *entities.LoginAttempt, at time.Time) error
}

// TokenUsecase handles the student token lifecycle: issue, verify, revoke,
// and the admin read surface.
type TokenUsecase struct {
	studentRepo    repositories.StudentRepository
	historyRepo    repositories.LoginHistoryRepository
	uow            repositories.UnitOfWork
	notifier       LoginNotifier
	expiryDays     int
	redirectTarget string
}

// NewTokenUsecase creates a new token usecase
func NewTokenUsecase(
	studentRepo repositories.StudentRepository,
	historyRepo repositories.LoginHistoryRepository,
	uow repositories.UnitOfWork,
	notifier LoginNotifier,
	expiryDays int,
	redirectTarget string,
) *TokenUsecase {
	if expiryDays <= 0 {
		expiryDays = 30
	}
	return &TokenUsecase{
		studentRepo:    studentRepo,
		historyRepo:    historyRepo,
		uow:            uow,
		notifier:       notifier,
		expiryDays:     expiryDays,
		redirectTarget: redirectTarget,
	}
}

// IssueToken creates or reactivates the access token for an email.
// An email with an active token is rejected with ErrAlreadyActive; the
// returned result still carries the existing token so callers can surface it.
func (u *TokenUsecase) IssueToken(ctx context.Context, email string) (*entities.IssueTokenResult, error) {
	if !strings.Contains(email, "@") {
		return nil, domainerrors.ErrInvalidInput
	}

	existing, err := u.studentRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if existing != nil && existing.IsActive {
		return &entities.IssueTokenResult{
			Token:     existing.Token,
			ExpiresAt: existing.ExpiresAt,
		}, domainerrors.ErrAlreadyActive
	}

	token := crypto.GenerateAccessToken()
	expiresAt := time.Now().Add(time.Duration(u.expiryDays) * 24 * time.Hour)

	if existing != nil {
		if err := u.studentRepo.Reissue(ctx, existing.ID, token, expiresAt); err != nil {
			return nil, err
		}
	} else {
		now := time.Now()
		student := &entities.Student{
			ID:        utils.GenerateUUIDv7(),
			Email:     email,
			Token:     token,
			IsActive:  true,
			ExpiresAt: expiresAt,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := u.studentRepo.Create(ctx, student); err != nil {
			return nil, err
		}
	}

	return &entities.IssueTokenResult{Token: token, ExpiresAt: expiresAt}, nil
}

// Verify validates an (email, token) pair, records the attempt in the audit
// trail and, on success, updates the student's last-login metadata.
func (u *TokenUsecase) Verify(ctx context.Context, attempt *entities.LoginAttempt) (*entities.VerifyResult, error) {
	now := time.Now()

	student, err := u.studentRepo.FindActiveByCredentials(ctx, attempt.Email, attempt.Token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			if histErr := u.appendHistory(ctx, attempt, null.String{}, false, now); histErr != nil {
				return nil, histErr
			}
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	studentID := null.StringFrom(student.ID.String())

	if now.After(student.ExpiresAt) {
		// Auto-revoke. The failed attempt is audited like any other.
		err := u.uow.Do(ctx, func(txCtx context.Context) error {
			if err := u.studentRepo.Deactivate(txCtx, student.ID); err != nil {
				return err
			}
			return u.appendHistory(txCtx, attempt, studentID, false, now)
		})
		if err != nil {
			return nil, err
		}
		return nil, domainerrors.ErrTokenExpired
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.studentRepo.RecordLogin(txCtx, student.ID, now, attempt.IP); err != nil {
			return err
		}
		return u.appendHistory(txCtx, attempt, studentID, true, now)
	})
	if err != nil {
		return nil, err
	}

	// Best-effort: the login result is settled regardless of delivery.
	if u.notifier != nil {
		if err := u.notifier.NotifyLogin(ctx, student, attempt, now); err != nil {
			logger.Warn(ctx, "Login notification delivery failed",
				zap.String("email", attempt.Email),
				zap.Error(err),
			)
		}
	}

	return &entities.VerifyResult{
		StudentID:      student.ID,
		RedirectTarget: u.redirectTarget,
	}, nil
}

// Revoke deactivates a student. Idempotent; a nonexistent id succeeds silently.
func (u *TokenUsecase) Revoke(ctx context.Context, studentID uuid.UUID) error {
	return u.studentRepo.Deactivate(ctx, studentID)
}

// ListStudents lists all students, newest first
func (u *TokenUsecase) ListStudents(ctx context.Context) ([]*entities.Student, error) {
	return u.studentRepo.List(ctx)
}

// ListLoginHistory lists the most recent audit rows, newest first.
// The limit is capped at 100.
func (u *TokenUsecase) ListLoginHistory(ctx context.Context, limit int) ([]*entities.LoginRecord, error) {
	if limit <= 0 || limit > maxLoginHistoryLimit {
		limit = maxLoginHistoryLimit
	}
	return u.historyRepo.ListRecent(ctx, limit)
}

func (u *TokenUsecase) appendHistory(ctx context.Context, attempt *entities.LoginAttempt, studentID null.String, success bool, at time.Time) error {
	return u.historyRepo.Append(ctx, &entities.LoginRecord{
		ID:        utils.GenerateUUIDv7(),
		StudentID: studentID,
		Email:     attempt.Email,
		IP:        attempt.IP,
		UserAgent: attempt.UserAgent,
		Success:   success,
		LoginTime: at,
	})
}
