package repository

import (
	"context"
	"errors"
	"fmt"

	"rotation-tracker-backend/internal/apperror"
	"rotation-tracker-backend/internal/models"
	"rotation-tracker-backend/internal/normalize"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"gorm.io/gorm"
)

// List queries never select case_data so large payloads are only
// materialized on single-record reads.
const (
	caseLogsByRotationQuery = `
	SELECT id, rotid, studid, case_date, status, created_date, modified_date
	FROM caselog
	WHERE rotid = ? AND is_deleted = ?
	ORDER BY case_date DESC, id DESC`

	caseLogByIDQuery = `
	SELECT id, rotid, studid, case_date, case_data, status,
		created_date, created_by, modified_date, modified_by
	FROM caselog
	WHERE id = ? AND is_deleted = ?`

	caseLogsByStudentQuery = `
	SELECT c.id, c.rotid, c.studid, c.case_date, c.status,
		r.rotnum,
		d.name AS discipline_name
	FROM caselog c
	JOIN rotation r ON c.rotid = r.id
	LEFT JOIN discipline d ON r.discid = d.discid
	WHERE c.studid = ? AND c.is_deleted = ?
	ORDER BY c.case_date DESC, c.id DESC`
)

type CaseLogRepository struct {
	db      *gorm.DB
	charset encoding.Encoding
	log     zerolog.Logger
}

// NewCaseLogRepo creates a case log repository. charset is the declared
// encoding of streamed case_data values; nil means UTF-8.
func NewCaseLogRepo(db *gorm.DB, charset encoding.Encoding, log zerolog.Logger) *CaseLogRepository {
	return &CaseLogRepository{db: db, charset: charset, log: log}
}

// Create inserts a case log; the database assigns caseLog.ID
func (r *CaseLogRepository) Create(ctx context.Context, caseLog *models.CaseLog) error {
	if caseLog.IsDeleted == "" {
		caseLog.IsDeleted = models.FlagNo
	}
	return r.db.WithContext(ctx).Create(caseLog).Error
}

// ListByRotation retrieves non-deleted case logs of a rotation, newest first
func (r *CaseLogRepository) ListByRotation(ctx context.Context, rotationID int64) ([]models.CaseLogRecord, error) {
	rows, err := r.db.WithContext(ctx).Raw(caseLogsByRotationQuery, rotationID, models.FlagNo).Rows()
	if err != nil {
		return nil, fmt.Errorf("query case logs for rotation %d: %w", rotationID, err)
	}

	records := []models.CaseLogRecord{}
	err = normalize.ScanRows(rows, func(row normalize.Row) error {
		records = append(records, caseLogFromRow(row))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan case logs for rotation %d: %w", rotationID, err)
	}
	return records, nil
}

// GetByID retrieves a non-deleted case log including its payload. A payload
// that cannot be read is logged and returned as nil.
func (r *CaseLogRepository) GetByID(ctx context.Context, id int64) (*models.CaseLogRecord, error) {
	rows, err := r.db.WithContext(ctx).Raw(caseLogByIDQuery, id, models.FlagNo).Rows()
	if err != nil {
		return nil, fmt.Errorf("query case log %d: %w", id, err)
	}

	var record *models.CaseLogRecord
	err = normalize.ScanRows(rows, func(row normalize.Row) error {
		if record != nil {
			return nil
		}
		rec := caseLogFromRow(row)
		// streamed handles are only valid while the result set is open
		text, err := normalize.ResolveText(row.Text(normalize.FieldCaseData), r.charset)
		if err != nil {
			r.log.Error().Err(err).Int64("case_log_id", id).Msg("could not read case data")
			text = nil
		}
		rec.CaseData = text
		record = &rec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan case log %d: %w", id, err)
	}
	if record == nil {
		return nil, apperror.NotFound("Case log not found")
	}
	return record, nil
}

// ListByStudent retrieves a student's case logs with rotation number and
// discipline name only
func (r *CaseLogRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.CaseLogRecord, error) {
	rows, err := r.db.WithContext(ctx).Raw(caseLogsByStudentQuery, studentID, models.FlagNo).Rows()
	if err != nil {
		return nil, fmt.Errorf("query case logs for student %d: %w", studentID, err)
	}

	records := []models.CaseLogRecord{}
	err = normalize.ScanRows(rows, func(row normalize.Row) error {
		rec := caseLogFromRow(row)
		rec.RotationNumber = row.NullInt64(normalize.FieldRotationNumber)
		rec.DisciplineName = row.NullString(normalize.FieldDisciplineName)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan case logs for student %d: %w", studentID, err)
	}
	return records, nil
}

// Update applies column updates to a non-deleted case log
func (r *CaseLogRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	updates["modified_date"] = r.db.NowFunc()

	result := r.db.WithContext(ctx).
		Model(&models.CaseLog{}).
		Where("id = ? AND is_deleted = ?", id, models.FlagNo).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("Case log not found")
	}
	return nil
}

// SoftDelete flags a case log as deleted so that no read path returns it
func (r *CaseLogRepository) SoftDelete(ctx context.Context, id int64, actor *string) error {
	return r.Update(ctx, id, map[string]interface{}{
		"is_deleted":  models.FlagYes,
		"modified_by": actor,
	})
}

// OwnerStudentID returns the student a non-deleted case log belongs to
// without reading its payload
func (r *CaseLogRepository) OwnerStudentID(ctx context.Context, id int64) (int64, error) {
	var caseLog models.CaseLog
	err := r.db.WithContext(ctx).
		Select("studid").
		Where("id = ? AND is_deleted = ?", id, models.FlagNo).
		Take(&caseLog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperror.NotFound("Case log not found")
	}
	if err != nil {
		return 0, fmt.Errorf("look up owner of case log %d: %w", id, err)
	}
	return caseLog.StudentID, nil
}

func caseLogFromRow(row normalize.Row) models.CaseLogRecord {
	return models.CaseLogRecord{
		ID:           row.Int64(normalize.FieldID),
		RotationID:   row.Int64(normalize.FieldRotationID),
		StudentID:    row.Int64(normalize.FieldStudentID),
		CaseDate:     row.Time(normalize.FieldCaseDate),
		Status:       row.NullString(normalize.FieldStatus),
		CreatedDate:  row.Time(normalize.FieldCreatedDate),
		CreatedBy:    row.NullString(normalize.FieldCreatedBy),
		ModifiedDate: row.Time(normalize.FieldModifiedDate),
		ModifiedBy:   row.NullString(normalize.FieldModifiedBy),
	}
}
