package models

import "time"

// Rotation represents the rotation table. Discipline, hospital and
// preceptor assignments are optional.
type Rotation struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	StudentID    int64      `gorm:"column:studid;index"`
	RotationNum  *int64     `gorm:"column:rotnum"`
	Starting     *time.Time `gorm:"column:starting;type:date"`
	Ending       *time.Time `gorm:"column:ending;type:date"`
	DisciplineID *int64     `gorm:"column:discid"`
	HospitalID   *int64     `gorm:"column:hospid"`
	PreceptorID  *int64     `gorm:"column:precid"`
	Cancelled    *string    `gorm:"column:cancelled;size:1"`
	Grade        *string    `gorm:"column:grade;size:10"`
	Notes        *string    `gorm:"column:notes;type:text"`
}

// TableName specifies the table name for Rotation model
func (Rotation) TableName() string {
	return "rotation"
}

// RotationRecord is one rotation row with its left-joined reference data.
// Any of the joined columns may be nil.
type RotationRecord struct {
	ID             int64
	StudentID      int64
	RotationNumber *int64
	StartDate      *time.Time
	EndDate        *time.Time
	DisciplineID   *int64
	HospitalID     *int64
	PreceptorID    *int64
	Cancelled      bool
	Grade          *string
	Notes          *string

	DisciplineName  *string
	DisciplineShort *string

	HospitalName    *string
	HospitalAddress *string
	HospitalCity    *string
	HospitalState   *string
	HospitalPhone   *string

	PreceptorFirstName *string
	PreceptorLastName  *string
	PreceptorEmail     *string
	PreceptorPhone1    *string
	PreceptorPhone2    *string
}

// RotationSummary is the list view returned by the rotations-summary endpoint.
type RotationSummary struct {
	ID                 int64   `json:"id"`
	RotationNumber     *int64  `json:"rotationNumber"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	DisciplineID       *int64  `json:"disciplineId"`
	Discipline         string  `json:"discipline"`
	HospitalID         *int64  `json:"hospitalId"`
	Hospital           string  `json:"hospital"`
	PreceptorID        *int64  `json:"preceptorId"`
	PreceptorFirstName *string `json:"preceptorFirstName"`
	PreceptorLastName  *string `json:"preceptorLastName"`
	PreceptorFullName  string  `json:"preceptorFullName"`
	Cancelled          bool    `json:"cancelled"`
	Grade              *string `json:"grade"`
	CaseLogCount       int64   `json:"caseLogCount"`
}

// HospitalRef is the hospital block embedded in a rotation detail.
type HospitalRef struct {
	ID      *int64  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// PreceptorRef is the preceptor block embedded in a rotation detail.
type PreceptorRef struct {
	ID        *int64  `json:"id"`
	Name      string  `json:"name"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Phone2    *string `json:"phone2,omitempty"`
}

// RotationDetail is the single-rotation view.
type RotationDetail struct {
	ID             int64        `json:"id"`
	StudentID      int64        `json:"studentId"`
	RotationNumber *int64       `json:"rotationNumber"`
	StartDate      string       `json:"startDate"`
	EndDate        string       `json:"endDate"`
	DisciplineID   *int64       `json:"disciplineId"`
	Discipline     string       `json:"discipline"`
	HospitalID     *int64       `json:"hospitalId"`
	Hospital       HospitalRef  `json:"hospital"`
	PreceptorID    *int64       `json:"preceptorId"`
	Preceptor      PreceptorRef `json:"preceptor"`
	Cancelled      bool         `json:"cancelled"`
	Grade          *string      `json:"grade"`
	Notes          *string      `json:"notes"`
	CaseLogCount   int64        `json:"caseLogCount"`
}
