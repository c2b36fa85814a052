package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rotation-tracker-backend/internal/apperror"
	"rotation-tracker-backend/internal/models"
	"rotation-tracker-backend/internal/normalize"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64  { return &n }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestListRotationsForStudent_ResolvesNamesAndCounts(t *testing.T) {
	repo := &MockRotationRepository{
		ListByStudentFunc: func(ctx context.Context, studentID int64) ([]models.RotationRecord, error) {
			assert.Equal(t, int64(522), studentID)
			return []models.RotationRecord{
				{
					ID: 8, StudentID: 522, RotationNumber: intPtr(2),
					StartDate: date(2025, time.March, 3), EndDate: date(2025, time.March, 30),
					DisciplineID: intPtr(4), DisciplineShort: strPtr("EM"),
					HospitalID: intPtr(20), HospitalName: strPtr("County General"),
					PreceptorID: intPtr(30), PreceptorFirstName: strPtr("Ana"), PreceptorLastName: strPtr("Reyes"),
				},
				{ID: 5, StudentID: 522, StartDate: date(2025, time.January, 6)},
			}, nil
		},
		CountActiveCaseLogsFunc: func(ctx context.Context, rotationID int64) (int64, error) {
			if rotationID == 8 {
				return 3, nil
			}
			return 0, nil
		},
	}
	svc := NewRotationService(repo, zerolog.Nop())

	rotations, err := svc.ListRotationsForStudent(context.Background(), 522)
	require.NoError(t, err)
	require.Len(t, rotations, 2)

	first := rotations[0]
	assert.Equal(t, int64(8), first.ID)
	assert.Equal(t, "03/03/2025", first.StartDate)
	assert.Equal(t, "03/30/2025", first.EndDate)
	assert.Equal(t, "EM", first.Discipline)
	assert.Equal(t, "County General", first.Hospital)
	assert.Equal(t, "Ana Reyes", first.PreceptorFullName)
	assert.Equal(t, int64(3), first.CaseLogCount)

	bare := rotations[1]
	assert.Equal(t, normalize.Unknown, bare.Discipline)
	assert.Equal(t, normalize.Unknown, bare.Hospital)
	assert.Equal(t, normalize.Unknown, bare.PreceptorFullName)
	assert.Equal(t, "", bare.EndDate)
	assert.Equal(t, int64(0), bare.CaseLogCount)
	assert.Equal(t, int32(2), repo.CountCallCount)
}

func TestListRotationsForStudent_CountFailureDegradesToZero(t *testing.T) {
	repo := &MockRotationRepository{
		ListByStudentFunc: func(ctx context.Context, studentID int64) ([]models.RotationRecord, error) {
			return []models.RotationRecord{{ID: 1}, {ID: 2}, {ID: 3}}, nil
		},
		CountActiveCaseLogsFunc: func(ctx context.Context, rotationID int64) (int64, error) {
			if rotationID == 2 {
				return 0, errors.New("ORA-03113: end-of-file on communication channel")
			}
			return 4, nil
		},
	}
	svc := NewRotationService(repo, zerolog.Nop())

	rotations, err := svc.ListRotationsForStudent(context.Background(), 522)
	require.NoError(t, err)
	require.Len(t, rotations, 3)
	assert.Equal(t, int64(4), rotations[0].CaseLogCount)
	assert.Equal(t, int64(0), rotations[1].CaseLogCount)
	assert.Equal(t, int64(4), rotations[2].CaseLogCount)
}

func TestListRotationsForStudent_QueryFailure(t *testing.T) {
	repo := &MockRotationRepository{
		ListByStudentFunc: func(ctx context.Context, studentID int64) ([]models.RotationRecord, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewRotationService(repo, zerolog.Nop())

	_, err := svc.ListRotationsForStudent(context.Background(), 522)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindDataSource, appErr.Kind)
	assert.Equal(t, "Failed to fetch rotations", appErr.Message)
}

func TestGetRotationByID(t *testing.T) {
	repo := &MockRotationRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.RotationRecord, error) {
			if id != 5 {
				return nil, apperror.NotFound("Rotation not found")
			}
			return &models.RotationRecord{
				ID: 5, StudentID: 522, Notes: strPtr("bring badge"),
				HospitalID: intPtr(20), HospitalPhone: strPtr("909-555-0100"),
				PreceptorID: intPtr(30), PreceptorLastName: strPtr("Reyes"), PreceptorEmail: strPtr("a@example.edu"),
			}, nil
		},
		CountActiveCaseLogsFunc: func(ctx context.Context, rotationID int64) (int64, error) {
			return 2, nil
		},
	}
	svc := NewRotationService(repo, zerolog.Nop())

	detail, err := svc.GetRotationByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "bring badge", *detail.Notes)
	assert.Equal(t, normalize.Unknown, detail.Discipline)
	assert.Equal(t, normalize.Unknown, detail.Hospital.Name)
	assert.Equal(t, "909-555-0100", *detail.Hospital.Phone)
	assert.Equal(t, "Reyes", detail.Preceptor.Name)
	assert.Equal(t, "a@example.edu", *detail.Preceptor.Email)
	assert.Equal(t, int64(2), detail.CaseLogCount)

	_, err = svc.GetRotationByID(context.Background(), 999)
	assert.True(t, apperror.IsNotFound(err))
}
