package repository

import (
	"context"

	"rotation-tracker-backend/internal/models"
)

type RotationRepositoryContract interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.RotationRecord, error)
	GetByID(ctx context.Context, id int64) (*models.RotationRecord, error)
	CountActiveCaseLogs(ctx context.Context, rotationID int64) (int64, error)
	OwnerStudentID(ctx context.Context, id int64) (int64, error)
}

type CaseLogRepositoryContract interface {
	Create(ctx context.Context, caseLog *models.CaseLog) error
	ListByRotation(ctx context.Context, rotationID int64) ([]models.CaseLogRecord, error)
	GetByID(ctx context.Context, id int64) (*models.CaseLogRecord, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.CaseLogRecord, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id int64, actor *string) error
	OwnerStudentID(ctx context.Context, id int64) (int64, error)
}

var (
	_ RotationRepositoryContract = (*RotationRepository)(nil)
	_ CaseLogRepositoryContract  = (*CaseLogRepository)(nil)
)
