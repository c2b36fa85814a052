package service

import (
	"context"
	"errors"
	"sync/atomic"

	"rotation-tracker-backend/internal/models"
	"rotation-tracker-backend/internal/repository"
)

// --- MockRotationRepository ---
var _ repository.RotationRepositoryContract = (*MockRotationRepository)(nil)

type MockRotationRepository struct {
	ListByStudentFunc       func(ctx context.Context, studentID int64) ([]models.RotationRecord, error)
	GetByIDFunc             func(ctx context.Context, id int64) (*models.RotationRecord, error)
	CountActiveCaseLogsFunc func(ctx context.Context, rotationID int64) (int64, error)
	OwnerStudentIDFunc      func(ctx context.Context, id int64) (int64, error)

	CountCallCount int32
}

func (m *MockRotationRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.RotationRecord, error) {
	if m.ListByStudentFunc != nil {
		return m.ListByStudentFunc(ctx, studentID)
	}
	return nil, errors.New("ListByStudentFunc not implemented in mock")
}

func (m *MockRotationRepository) GetByID(ctx context.Context, id int64) (*models.RotationRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockRotationRepository) CountActiveCaseLogs(ctx context.Context, rotationID int64) (int64, error) {
	atomic.AddInt32(&m.CountCallCount, 1)
	if m.CountActiveCaseLogsFunc != nil {
		return m.CountActiveCaseLogsFunc(ctx, rotationID)
	}
	return 0, nil
}

func (m *MockRotationRepository) OwnerStudentID(ctx context.Context, id int64) (int64, error) {
	if m.OwnerStudentIDFunc != nil {
		return m.OwnerStudentIDFunc(ctx, id)
	}
	return 0, errors.New("OwnerStudentIDFunc not implemented in mock")
}

// --- MockCaseLogRepository ---
var _ repository.CaseLogRepositoryContract = (*MockCaseLogRepository)(nil)

type MockCaseLogRepository struct {
	CreateFunc         func(ctx context.Context, caseLog *models.CaseLog) error
	ListByRotationFunc func(ctx context.Context, rotationID int64) ([]models.CaseLogRecord, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*models.CaseLogRecord, error)
	ListByStudentFunc  func(ctx context.Context, studentID int64) ([]models.CaseLogRecord, error)
	UpdateFunc         func(ctx context.Context, id int64, updates map[string]interface{}) error
	SoftDeleteFunc     func(ctx context.Context, id int64, actor *string) error
	OwnerStudentIDFunc func(ctx context.Context, id int64) (int64, error)

	CreateCallCount int32
}

func (m *MockCaseLogRepository) Create(ctx context.Context, caseLog *models.CaseLog) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, caseLog)
	}
	return nil
}

func (m *MockCaseLogRepository) ListByRotation(ctx context.Context, rotationID int64) ([]models.CaseLogRecord, error) {
	if m.ListByRotationFunc != nil {
		return m.ListByRotationFunc(ctx, rotationID)
	}
	return nil, errors.New("ListByRotationFunc not implemented in mock")
}

func (m *MockCaseLogRepository) GetByID(ctx context.Context, id int64) (*models.CaseLogRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockCaseLogRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.CaseLogRecord, error) {
	if m.ListByStudentFunc != nil {
		return m.ListByStudentFunc(ctx, studentID)
	}
	return nil, errors.New("ListByStudentFunc not implemented in mock")
}

func (m *MockCaseLogRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return errors.New("UpdateFunc not implemented in mock")
}

func (m *MockCaseLogRepository) SoftDelete(ctx context.Context, id int64, actor *string) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id, actor)
	}
	return errors.New("SoftDeleteFunc not implemented in mock")
}

func (m *MockCaseLogRepository) OwnerStudentID(ctx context.Context, id int64) (int64, error) {
	if m.OwnerStudentIDFunc != nil {
		return m.OwnerStudentIDFunc(ctx, id)
	}
	return 0, errors.New("OwnerStudentIDFunc not implemented in mock")
}
