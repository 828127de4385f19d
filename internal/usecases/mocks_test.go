package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"course-gate.backend/internal/domain/entities"
	"course-gate.backend/pkg/logger"
)

func init() {
	logger.Init("test")
}

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *entities.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByEmail(ctx context.Context, email string) (*entities.Student, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Student), args.Error(1)
}

func (m *MockStudentRepository) Reissue(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, id, token, expiresAt)
	return args.Error(0)
}

func (m *MockStudentRepository) FindActiveByCredentials(ctx context.Context, email, token string) (*entities.Student, error) {
	args := m.Called(ctx, email, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Student), args.Error(1)
}

func (m *MockStudentRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time, ip string) error {
	args := m.Called(ctx, id, at, ip)
	return args.Error(0)
}

func (m *MockStudentRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudentRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context) ([]*entities.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Student), args.Error(1)
}

// Mock LoginHistoryRepository
type MockLoginHistoryRepository struct {
	mock.Mock
}

func (m *MockLoginHistoryRepository) Append(ctx context.Context, record *entities.LoginRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockLoginHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*entities.LoginRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoginRecord), args.Error(1)
}

// Mock LoginNotifier
type MockLoginNotifier struct {
	mock.Mock
}

func (m *MockLoginNotifier) NotifyLogin(ctx context.Context, student *entities.Student, attempt *entities.LoginAttempt, at time.Time) error {
	args := m.Called(ctx, student, attempt, at)
	return args.Error(0)
}
