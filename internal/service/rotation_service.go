package service

import (
	"context"

	"rotation-tracker-backend/internal/apperror"
	"rotation-tracker-backend/internal/database"
	"rotation-tracker-backend/internal/models"
	"rotation-tracker-backend/internal/normalize"
	"rotation-tracker-backend/internal/repository"

	"github.com/rs/zerolog"
)

type RotationService struct {
	rotationRepo repository.RotationRepositoryContract
	log          zerolog.Logger
}

func NewRotationService(rotationRepo repository.RotationRepositoryContract, log zerolog.Logger) *RotationService {
	return &RotationService{
		rotationRepo: rotationRepo,
		log:          log,
	}
}

// ListRotationsForStudent returns the student's rotations with display names
// resolved and a live case log count per rotation. A failed count never
// fails the list; that rotation reports zero.
func (s *RotationService) ListRotationsForStudent(ctx context.Context, studentID int64) ([]models.RotationSummary, error) {
	records, err := s.rotationRepo.ListByStudent(ctx, studentID)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("db_code", database.ErrorCode(err)).
			Int64("student_id", studentID).
			Msg("rotation list query failed")
		return nil, apperror.DataSource("Failed to fetch rotations", err)
	}

	rotations := make([]models.RotationSummary, 0, len(records))
	for _, rec := range records {
		rotations = append(rotations, models.RotationSummary{
			ID:                 rec.ID,
			RotationNumber:     rec.RotationNumber,
			StartDate:          normalize.FormatDate(rec.StartDate),
			EndDate:            normalize.FormatDate(rec.EndDate),
			DisciplineID:       rec.DisciplineID,
			Discipline:         normalize.Coalesce(rec.DisciplineName, rec.DisciplineShort),
			HospitalID:         rec.HospitalID,
			Hospital:           normalize.Coalesce(rec.HospitalName),
			PreceptorID:        rec.PreceptorID,
			PreceptorFirstName: rec.PreceptorFirstName,
			PreceptorLastName:  rec.PreceptorLastName,
			PreceptorFullName:  normalize.FullName(rec.PreceptorFirstName, rec.PreceptorLastName),
			Cancelled:          rec.Cancelled,
			Grade:              rec.Grade,
			CaseLogCount:       s.countCaseLogs(ctx, rec.ID),
		})
	}

	s.log.Debug().Int64("student_id", studentID).Int("rotations", len(rotations)).Msg("rotations fetched")
	return rotations, nil
}

// GetRotationByID returns a single rotation with hospital and preceptor
// contact details.
func (s *RotationService) GetRotationByID(ctx context.Context, id int64) (*models.RotationDetail, error) {
	rec, err := s.rotationRepo.GetByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		s.log.Error().
			Err(err).
			Str("db_code", database.ErrorCode(err)).
			Int64("rotation_id", id).
			Msg("rotation detail query failed")
		return nil, apperror.DataSource("Failed to fetch rotation", err)
	}

	return &models.RotationDetail{
		ID:             rec.ID,
		StudentID:      rec.StudentID,
		RotationNumber: rec.RotationNumber,
		StartDate:      normalize.FormatDate(rec.StartDate),
		EndDate:        normalize.FormatDate(rec.EndDate),
		DisciplineID:   rec.DisciplineID,
		Discipline:     normalize.Coalesce(rec.DisciplineName, rec.DisciplineShort),
		HospitalID:     rec.HospitalID,
		Hospital: models.HospitalRef{
			ID:      rec.HospitalID,
			Name:    normalize.Coalesce(rec.HospitalName),
			Address: rec.HospitalAddress,
			City:    rec.HospitalCity,
			State:   rec.HospitalState,
			Phone:   rec.HospitalPhone,
		},
		PreceptorID: rec.PreceptorID,
		Preceptor: models.PreceptorRef{
			ID:        rec.PreceptorID,
			Name:      normalize.FullName(rec.PreceptorFirstName, rec.PreceptorLastName),
			FirstName: rec.PreceptorFirstName,
			LastName:  rec.PreceptorLastName,
			Email:     rec.PreceptorEmail,
			Phone:     rec.PreceptorPhone1,
			Phone2:    rec.PreceptorPhone2,
		},
		Cancelled:    rec.Cancelled,
		Grade:        rec.Grade,
		Notes:        rec.Notes,
		CaseLogCount: s.countCaseLogs(ctx, rec.ID),
	}, nil
}

func (s *RotationService) countCaseLogs(ctx context.Context, rotationID int64) int64 {
	count, err := s.rotationRepo.CountActiveCaseLogs(ctx, rotationID)
	if err != nil {
		s.log.Error().Err(err).Int64("rotation_id", rotationID).Msg("could not count case logs")
		return 0
	}
	return count
}
