package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Case log status values used by the case log form. The backend stores
// whatever status it is given; these are the ones the UI knows about.
const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
)

// Soft-delete flag values of caselog.is_deleted.
const (
	FlagNo  = "N"
	FlagYes = "Y"
)

// CaseLog represents the caselog table. CaseData holds the serialized
// form payload (a CLOB on Oracle, text elsewhere).
type CaseLog struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	RotationID   int64      `gorm:"column:rotid;not null;index"`
	StudentID    int64      `gorm:"column:studid;not null;index"`
	CaseDate     time.Time  `gorm:"column:case_date;type:date;not null"`
	CaseData     *string    `gorm:"column:case_data;type:text"`
	Status       string     `gorm:"column:status;size:20"`
	IsDeleted    string     `gorm:"column:is_deleted;size:1;default:N"`
	CreatedDate  time.Time  `gorm:"column:created_date;autoCreateTime"`
	CreatedBy    *string    `gorm:"column:created_by;size:100"`
	ModifiedDate *time.Time `gorm:"column:modified_date"`
	ModifiedBy   *string    `gorm:"column:modified_by;size:100"`
}

// TableName specifies the table name for CaseLog model
func (CaseLog) TableName() string {
	return "caselog"
}

// CaseLogRecord is a case log as read back, optionally with rotation and
// discipline columns from the student listing join.
type CaseLogRecord struct {
	ID             int64
	RotationID     int64
	StudentID      int64
	CaseDate       *time.Time
	CaseData       *string
	Status         *string
	CreatedDate    *time.Time
	CreatedBy      *string
	ModifiedDate   *time.Time
	ModifiedBy     *string
	RotationNumber *int64
	DisciplineName *string
}

// FlexID is an identifier that accepts either a JSON number or a numeric
// string, since route parameters often reach the body as strings.
type FlexID int64

func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid identifier %s", b)
	}
	*f = FlexID(n)
	return nil
}

// Actor names who created or modified a record. Numeric user ids are kept
// in their decimal form.
type Actor string

func (a *Actor) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = Actor(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid actor %s", b)
	}
	*a = Actor(n.String())
	return nil
}

// Ptr returns nil for an empty actor.
func (a Actor) Ptr() *string {
	s := strings.TrimSpace(string(a))
	if s == "" {
		return nil
	}
	return &s
}

// CreateCaseLogRequest is the POST /api/case-logs body.
type CreateCaseLogRequest struct {
	RotationID FlexID         `json:"rotationId" validate:"required,gt=0"`
	StudentID  FlexID         `json:"studentId" validate:"required,gt=0"`
	CaseDate   string         `json:"caseDate" validate:"required"`
	CaseData   datatypes.JSON `json:"caseData"`
	Status     string         `json:"status" validate:"omitempty,max=20"`
	CreatedBy  Actor          `json:"createdBy"`
}

// CreatedCaseLog echoes the create request back with the new identifier.
type CreatedCaseLog struct {
	ID         int64  `json:"id"`
	RotationID int64  `json:"rotationId"`
	StudentID  int64  `json:"studentId"`
	CaseDate   string `json:"caseDate"`
	Status     string `json:"status"`
}

// UpdateCaseLogRequest is the PUT /api/case-logs/:caseLogId body. Absent
// fields are left unchanged.
type UpdateCaseLogRequest struct {
	CaseDate   *string        `json:"caseDate"`
	CaseData   datatypes.JSON `json:"caseData"`
	Status     *string        `json:"status" validate:"omitempty,max=20"`
	ModifiedBy Actor          `json:"modifiedBy"`
}

// CaseLogListItem is a case log in the per-rotation list. The payload is
// deliberately absent.
type CaseLogListItem struct {
	ID           int64  `json:"id"`
	RotationID   int64  `json:"rotationId"`
	StudentID    int64  `json:"studentId"`
	CaseDate     string `json:"caseDate"`
	Status       string `json:"status"`
	CreatedDate  string `json:"createdDate"`
	ModifiedDate string `json:"modifiedDate"`
}

// CaseLogDetail is a single case log with its payload. CaseData is the
// stored text, parsed JSON when requested, or null if it could not be read.
type CaseLogDetail struct {
	ID           int64   `json:"id"`
	RotationID   int64   `json:"rotationId"`
	StudentID    int64   `json:"studentId"`
	CaseDate     string  `json:"caseDate"`
	CaseData     any     `json:"caseData"`
	Status       string  `json:"status"`
	CreatedDate  string  `json:"createdDate"`
	ModifiedDate string  `json:"modifiedDate"`
	CreatedBy    *string `json:"createdBy"`
	ModifiedBy   *string `json:"modifiedBy,omitempty"`
}

// CaseLogSummary is the dashboard row for a student's case logs.
type CaseLogSummary struct {
	ID             int64  `json:"id"`
	RotationID     int64  `json:"rotationId"`
	RotationNumber *int64 `json:"rotationNumber"`
	Discipline     string `json:"discipline"`
	CaseDate       string `json:"caseDate"`
	Status         string `json:"status"`
}
