package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"course-gate.backend/internal/domain/entities"
)

// StudentRepository defines student data operations
type StudentRepository interface {
	Create(ctx context.Context, student *entities.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Student, error)
	GetByEmail(ctx context.Context, email string) (*entities.Student, error)
	// Reissue overwrites token and expiry and reactivates the row.
	Reissue(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error
	// FindActiveByCredentials matches the exact (email, token) pair with is_active true.
	FindActiveByCredentials(ctx context.Context, email, token string) (*entities.Student, error)
	// RecordLogin updates last_login and last_ip on a successful verification.
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time, ip string) error
	// Deactivate is idempotent; a nonexistent id is a silent success.
	Deactivate(ctx context.Context, id uuid.UUID) error
	// DeactivateExpired flips every active row whose expiry has passed, returning the count.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
	List(ctx context.Context) ([]*entities.Student, error)
}

// LoginHistoryRepository defines audit-trail operations. Rows are append-only.
type LoginHistoryRepository interface {
	Append(ctx context.Context, record *entities.LoginRecord) error
	ListRecent(ctx context.Context, limit int) ([]*entities.LoginRecord, error)
}
