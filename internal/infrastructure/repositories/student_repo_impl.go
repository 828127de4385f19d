package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"course-gate.backend/internal/domain/entities"
	domainerrors "course-gate.backend/internal/domain/errors"
	"course-gate.backend/internal/infrastructure/models"
)

// StudentRepository implements student data operations
type StudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create creates a new student row
func (r *StudentRepository) Create(ctx context.Context, student *entities.Student) error {
	m := &models.Student{
		ID:        student.ID,
		Email:     student.Email,
		Token:     student.Token,
		IsActive:  student.IsActive,
		ExpiresAt: student.ExpiresAt,
		CreatedAt: student.CreatedAt,
		UpdatedAt: student.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Student, error) {
	var m models.Student
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a student by email. The lookup is case-sensitive.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*entities.Student, error) {
	var m models.Student
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Reissue overwrites the token and expiry and reactivates the row
func (r *StudentRepository) Reissue(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"token":      token,
			"expires_at": expiresAt,
			"is_active":  true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// FindActiveByCredentials matches the exact (email, token) pair with is_active true
func (r *StudentRepository) FindActiveByCredentials(ctx context.Context, email, token string) (*entities.Student, error) {
	var m models.Student
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("email = ? AND token = ? AND is_active = ?", email, token, true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// RecordLogin updates last_login and last_ip after a successful verification
func (r *StudentRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time, ip string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login": at,
			"last_ip":    ip,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Deactivate sets is_active false. Revoking an already-inactive or nonexistent
// student is a no-op success, matching the store's UPDATE semantics.
func (r *StudentRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

// DeactivateExpired flips every active row whose expiry has passed
func (r *StudentRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Student{}).
		Where("is_active = ? AND expires_at < ?", true, now).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// List lists all students, newest first
func (r *StudentRepository) List(ctx context.Context) ([]*entities.Student, error) {
	var studentModels []models.Student
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC").Find(&studentModels).Error; err != nil {
		return nil, err
	}

	var students []*entities.Student
	for _, m := range studentModels {
		model := m
		students = append(students, r.toEntity(&model))
	}
	return students, nil
}

func (r *StudentRepository) toEntity(m *models.Student) *entities.Student {
	return &entities.Student{
		ID:        m.ID,
		Email:     m.Email,
		Token:     m.Token,
		IsActive:  m.IsActive,
		ExpiresAt: m.ExpiresAt,
		LastLogin: null.TimeFromPtr(m.LastLogin),
		LastIP:    null.StringFromPtr(m.LastIP),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
