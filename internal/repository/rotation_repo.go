package repository

import (
	"context"
	"errors"
	"fmt"

	"rotation-tracker-backend/internal/apperror"
	"rotation-tracker-backend/internal/models"
	"rotation-tracker-backend/internal/normalize"

	"gorm.io/gorm"
)

// Reference tables are LEFT JOINed: a rotation without a discipline,
// hospital or preceptor must still be returned.
const rotationSummaryQuery = `
	SELECT
		r.id, r.studid, r.rotnum, r.starting, r.ending,
		r.discid, r.hospid, r.precid, r.cancelled, r.grade,
		d.name AS discipline_name,
		d.shortname AS discipline_short,
		h.name AS hospital_name,
		p.firstname AS preceptor_fname,
		p.lastname AS preceptor_lname
	FROM rotation r
	LEFT JOIN discipline d ON r.discid = d.discid
	LEFT JOIN hospital h ON r.hospid = h.id
	LEFT JOIN preceptor p ON r.precid = p.id
	WHERE r.studid = ?
	ORDER BY r.starting DESC, r.id DESC`

const rotationDetailQuery = `
	SELECT
		r.id, r.studid, r.rotnum, r.starting, r.ending,
		r.discid, r.hospid, r.precid, r.cancelled, r.grade, r.notes,
		d.name AS discipline_name,
		d.shortname AS discipline_short,
		h.name AS hospital_name,
		h.address AS hospital_address,
		h.city AS hospital_city,
		h.state AS hospital_state,
		h.phone AS hospital_phone,
		p.firstname AS preceptor_fname,
		p.lastname AS preceptor_lname,
		p.email AS preceptor_email,
		p.phone1 AS preceptor_phone1,
		p.phone2 AS preceptor_phone2
	FROM rotation r
	LEFT JOIN discipline d ON r.discid = d.discid
	LEFT JOIN hospital h ON r.hospid = h.id
	LEFT JOIN preceptor p ON r.precid = p.id
	WHERE r.id = ?`

type RotationRepository struct {
	db *gorm.DB
}

func NewRotationRepo(db *gorm.DB) *RotationRepository {
	return &RotationRepository{db: db}
}

// ListByStudent retrieves a student's rotations, most recent start first
func (r *RotationRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.RotationRecord, error) {
	rows, err := r.db.WithContext(ctx).Raw(rotationSummaryQuery, studentID).Rows()
	if err != nil {
		return nil, fmt.Errorf("query rotations for student %d: %w", studentID, err)
	}

	records := []models.RotationRecord{}
	err = normalize.ScanRows(rows, func(row normalize.Row) error {
		records = append(records, rotationFromRow(row))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan rotations for student %d: %w", studentID, err)
	}
	return records, nil
}

// GetByID retrieves a rotation with notes and reference contact details
func (r *RotationRepository) GetByID(ctx context.Context, id int64) (*models.RotationRecord, error) {
	rows, err := r.db.WithContext(ctx).Raw(rotationDetailQuery, id).Rows()
	if err != nil {
		return nil, fmt.Errorf("query rotation %d: %w", id, err)
	}

	var record *models.RotationRecord
	err = normalize.ScanRows(rows, func(row normalize.Row) error {
		if record == nil {
			rec := rotationFromRow(row)
			record = &rec
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan rotation %d: %w", id, err)
	}
	if record == nil {
		return nil, apperror.NotFound("Rotation not found")
	}
	return record, nil
}

// CountActiveCaseLogs returns the live number of non-deleted case logs
func (r *RotationRepository) CountActiveCaseLogs(ctx context.Context, rotationID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CaseLog{}).
		Where("rotid = ? AND is_deleted = ?", rotationID, models.FlagNo).
		Count(&count).Error
	return count, err
}

// OwnerStudentID returns the student a rotation belongs to without loading
// its reference data
func (r *RotationRepository) OwnerStudentID(ctx context.Context, id int64) (int64, error) {
	var rotation models.Rotation
	err := r.db.WithContext(ctx).Select("studid").Where("id = ?", id).Take(&rotation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperror.NotFound("Rotation not found")
	}
	if err != nil {
		return 0, fmt.Errorf("look up owner of rotation %d: %w", id, err)
	}
	return rotation.StudentID, nil
}

func rotationFromRow(row normalize.Row) models.RotationRecord {
	return models.RotationRecord{
		ID:             row.Int64(normalize.FieldID),
		StudentID:      row.Int64(normalize.FieldStudentID),
		RotationNumber: row.NullInt64(normalize.FieldRotationNumber),
		StartDate:      row.Time(normalize.FieldStartDate),
		EndDate:        row.Time(normalize.FieldEndDate),
		DisciplineID:   row.NullInt64(normalize.FieldDisciplineID),
		HospitalID:     row.NullInt64(normalize.FieldHospitalID),
		PreceptorID:    row.NullInt64(normalize.FieldPreceptorID),
		Cancelled:      row.Flag(normalize.FieldCancelled),
		Grade:          row.NullString(normalize.FieldGrade),
		Notes:          row.NullString(normalize.FieldNotes),

		DisciplineName:  row.NullString(normalize.FieldDisciplineName),
		DisciplineShort: row.NullString(normalize.FieldDisciplineShort),

		HospitalName:    row.NullString(normalize.FieldHospitalName),
		HospitalAddress: row.NullString(normalize.FieldHospitalAddress),
		HospitalCity:    row.NullString(normalize.FieldHospitalCity),
		HospitalState:   row.NullString(normalize.FieldHospitalState),
		HospitalPhone:   row.NullString(normalize.FieldHospitalPhone),

		PreceptorFirstName: row.NullString(normalize.FieldPreceptorFirstName),
		PreceptorLastName:  row.NullString(normalize.FieldPreceptorLastName),
		PreceptorEmail:     row.NullString(normalize.FieldPreceptorEmail),
		PreceptorPhone1:    row.NullString(normalize.FieldPreceptorPhone1),
		PreceptorPhone2:    row.NullString(normalize.FieldPreceptorPhone2),
	}
}
