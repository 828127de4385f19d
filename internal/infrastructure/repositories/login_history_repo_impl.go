package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"course-gate.backend/internal/domain/entities"
	"course-gate.backend/internal/infrastructure/models"
)

// LoginHistoryRepository implements the append-only audit trail
type LoginHistoryRepository struct {
	db *gorm.DB
}

// NewLoginHistoryRepository creates a new login history repository
func NewLoginHistoryRepository(db *gorm.DB) *LoginHistoryRepository {
	return &LoginHistoryRepository{db: db}
}

// Append inserts one audit row. Rows are never updated or deleted.
func (r *LoginHistoryRepository) Append(ctx context.Context, record *entities.LoginRecord) error {
	m := &models.LoginHistory{
		ID:        record.ID,
		Email:     record.Email,
		IP:        record.IP,
		UserAgent: record.UserAgent,
		Success:   record.Success,
		LoginTime: record.LoginTime,
	}
	if record.StudentID.Valid {
		id, err := uuid.Parse(record.StudentID.String)
		if err != nil {
			return err
		}
		m.StudentID = &id
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// ListRecent returns the most recent rows, newest first
func (r *LoginHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*entities.LoginRecord, error) {
	var historyModels []models.LoginHistory
	err := GetDB(ctx, r.db).WithContext(ctx).
		Order("login_time DESC").
		Limit(limit).
		Find(&historyModels).Error
	if err != nil {
		return nil, err
	}

	var records []*entities.LoginRecord
	for _, m := range historyModels {
		model := m
		records = append(records, r.toEntity(&model))
	}
	return records, nil
}

func (r *LoginHistoryRepository) toEntity(m *models.LoginHistory) *entities.LoginRecord {
	record := &entities.LoginRecord{
		ID:        m.ID,
		Email:     m.Email,
		IP:        m.IP,
		UserAgent: m.UserAgent,
		Success:   m.Success,
		LoginTime: m.LoginTime,
	}
	if m.StudentID != nil {
		record.StudentID = null.StringFrom(m.StudentID.String())
	}
	return record
}
