package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rotation-tracker-backend/internal/apperror"
	"rotation-tracker-backend/internal/database"
	"rotation-tracker-backend/internal/models"
	"rotation-tracker-backend/internal/normalize"
	"rotation-tracker-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

const (
	missingCreateFields = "Missing required fields: rotationId, studentId, caseDate"
	nonPositiveIDs      = "rotationId and studentId must be positive integers"
)

type CaseLogService struct {
	caseLogRepo repository.CaseLogRepositoryContract
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewCaseLogService(caseLogRepo repository.CaseLogRepositoryContract, log zerolog.Logger) *CaseLogService {
	return &CaseLogService{
		caseLogRepo: caseLogRepo,
		validate:    validator.New(),
		log:         log,
	}
}

// CreateCaseLog validates and stores a new case log. actor is used as
// created_by when the request does not name one.
func (s *CaseLogService) CreateCaseLog(ctx context.Context, req models.CreateCaseLogRequest, actor *string) (*models.CreatedCaseLog, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err, missingCreateFields)
	}

	caseDate, err := normalize.ParseCalendarDate(req.CaseDate)
	if err != nil {
		return nil, apperror.Validation("Invalid caseDate: expected YYYY-MM-DD")
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.StatusDraft
	}

	createdBy := req.CreatedBy.Ptr()
	if createdBy == nil {
		createdBy = actor
	}

	caseLog := &models.CaseLog{
		RotationID: int64(req.RotationID),
		StudentID:  int64(req.StudentID),
		CaseDate:   caseDate,
		CaseData:   payloadText(req.CaseData),
		Status:     status,
		CreatedBy:  createdBy,
	}

	if err := s.caseLogRepo.Create(ctx, caseLog); err != nil {
		s.log.Error().
			Err(err).
			Str("db_code", database.ErrorCode(err)).
			Bool("fk_violation", database.IsForeignKeyViolation(err)).
			Int64("rotation_id", caseLog.RotationID).
			Msg("case log insert failed")
		return nil, apperror.DataSource("Failed to create case log", err)
	}

	s.log.Info().Int64("case_log_id", caseLog.ID).Int64("rotation_id", caseLog.RotationID).Msg("case log created")

	return &models.CreatedCaseLog{
		ID:         caseLog.ID,
		RotationID: caseLog.RotationID,
		StudentID:  caseLog.StudentID,
		CaseDate:   req.CaseDate,
		Status:     status,
	}, nil
}

// ListCaseLogsForRotation returns the rotation's case logs without payloads.
func (s *CaseLogService) ListCaseLogsForRotation(ctx context.Context, rotationID int64) ([]models.CaseLogListItem, error) {
	records, err := s.caseLogRepo.ListByRotation(ctx, rotationID)
	if err != nil {
		s.log.Error().Err(err).Str("db_code", database.ErrorCode(err)).Int64("rotation_id", rotationID).Msg("case log list query failed")
		return nil, apperror.DataSource("Failed to fetch case logs", err)
	}

	items := make([]models.CaseLogListItem, 0, len(records))
	for _, rec := range records {
		items = append(items, models.CaseLogListItem{
			ID:           rec.ID,
			RotationID:   rec.RotationID,
			StudentID:    rec.StudentID,
			CaseDate:     normalize.FormatDate(rec.CaseDate),
			Status:       deref(rec.Status),
			CreatedDate:  normalize.FormatDate(rec.CreatedDate),
			ModifiedDate: normalize.FormatDate(rec.ModifiedDate),
		})
	}
	return items, nil
}

// GetCaseLogByID returns one case log with its payload. With parsed set, a
// payload holding valid JSON is returned as a JSON value instead of text.
func (s *CaseLogService) GetCaseLogByID(ctx context.Context, id int64, parsed bool) (*models.CaseLogDetail, error) {
	rec, err := s.caseLogRepo.GetByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		s.log.Error().Err(err).Str("db_code", database.ErrorCode(err)).Int64("case_log_id", id).Msg("case log query failed")
		return nil, apperror.DataSource("Failed to fetch case log", err)
	}

	var caseData any
	if rec.CaseData != nil {
		caseData = *rec.CaseData
		if parsed && json.Valid([]byte(*rec.CaseData)) {
			caseData = datatypes.JSON(*rec.CaseData)
		}
	}

	return &models.CaseLogDetail{
		ID:           rec.ID,
		RotationID:   rec.RotationID,
		StudentID:    rec.StudentID,
		CaseDate:     normalize.FormatDate(rec.CaseDate),
		CaseData:     caseData,
		Status:       deref(rec.Status),
		CreatedDate:  normalize.FormatDate(rec.CreatedDate),
		ModifiedDate: normalize.FormatDate(rec.ModifiedDate),
		CreatedBy:    rec.CreatedBy,
		ModifiedBy:   rec.ModifiedBy,
	}, nil
}

// ListCaseLogsForStudent returns the dashboard listing for a student.
func (s *CaseLogService) ListCaseLogsForStudent(ctx context.Context, studentID int64) ([]models.CaseLogSummary, error) {
	records, err := s.caseLogRepo.ListByStudent(ctx, studentID)
	if err != nil {
		s.log.Error().Err(err).Str("db_code", database.ErrorCode(err)).Int64("student_id", studentID).Msg("student case log query failed")
		return nil, apperror.DataSource("Failed to fetch case logs", err)
	}

	summaries := make([]models.CaseLogSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, models.CaseLogSummary{
			ID:             rec.ID,
			RotationID:     rec.RotationID,
			RotationNumber: rec.RotationNumber,
			Discipline:     normalize.Coalesce(rec.DisciplineName),
			CaseDate:       normalize.FormatDate(rec.CaseDate),
			Status:         deref(rec.Status),
		})
	}
	return summaries, nil
}

// UpdateCaseLog changes the supplied fields of a case log and returns the
// stored result.
func (s *CaseLogService) UpdateCaseLog(ctx context.Context, id int64, req models.UpdateCaseLogRequest, actor *string) (*models.CaseLogDetail, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err, "Invalid case log update")
	}

	updates := map[string]interface{}{}
	if req.CaseDate != nil {
		caseDate, err := normalize.ParseCalendarDate(*req.CaseDate)
		if err != nil {
			return nil, apperror.Validation("Invalid caseDate: expected YYYY-MM-DD")
		}
		updates["case_date"] = caseDate
	}
	if req.CaseData != nil {
		updates["case_data"] = payloadText(req.CaseData)
	}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status == "" {
			return nil, apperror.Validation("status must not be empty")
		}
		updates["status"] = status
	}
	if len(updates) == 0 {
		return nil, apperror.Validation("No fields to update: caseDate, caseData, status")
	}

	modifiedBy := req.ModifiedBy.Ptr()
	if modifiedBy == nil {
		modifiedBy = actor
	}
	updates["modified_by"] = modifiedBy

	if err := s.caseLogRepo.Update(ctx, id, updates); err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		s.log.Error().Err(err).Str("db_code", database.ErrorCode(err)).Int64("case_log_id", id).Msg("case log update failed")
		return nil, apperror.DataSource("Failed to update case log", err)
	}

	return s.GetCaseLogByID(ctx, id, false)
}

// DeleteCaseLog soft-deletes a case log.
func (s *CaseLogService) DeleteCaseLog(ctx context.Context, id int64, actor *string) error {
	if err := s.caseLogRepo.SoftDelete(ctx, id, actor); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		s.log.Error().Err(err).Str("db_code", database.ErrorCode(err)).Int64("case_log_id", id).Msg("case log delete failed")
		return apperror.DataSource("Failed to delete case log", err)
	}
	s.log.Info().Int64("case_log_id", id).Msg("case log deleted")
	return nil
}

// payloadText serializes the form payload for storage. Absent and JSON
// null payloads are stored as NULL.
func payloadText(data datatypes.JSON) *string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	text := string(trimmed)
	return &text
}

func validationError(err error, missingMessage string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Validation(err.Error())
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return apperror.Validation(missingMessage)
		}
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "gt" {
			return apperror.Validation(nonPositiveIDs)
		}
	}
	fe := fieldErrs[0]
	return apperror.Validation(fmt.Sprintf("Invalid field %s (%s)", fe.Field(), fe.Tag()))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
