package normalize

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Field is the canonical name of a result column, independent of how a
// given driver or query spells it.
type Field string

const (
	FieldID                 Field = "id"
	FieldStudentID          Field = "studentId"
	FieldRotationID         Field = "rotationId"
	FieldRotationNumber     Field = "rotationNumber"
	FieldStartDate          Field = "startDate"
	FieldEndDate            Field = "endDate"
	FieldDisciplineID       Field = "disciplineId"
	FieldHospitalID         Field = "hospitalId"
	FieldPreceptorID        Field = "preceptorId"
	FieldCancelled          Field = "cancelled"
	FieldGrade              Field = "grade"
	FieldNotes              Field = "notes"
	FieldDisciplineName     Field = "disciplineName"
	FieldDisciplineShort    Field = "disciplineShort"
	FieldHospitalName       Field = "hospitalName"
	FieldHospitalAddress    Field = "hospitalAddress"
	FieldHospitalCity       Field = "hospitalCity"
	FieldHospitalState      Field = "hospitalState"
	FieldHospitalPhone      Field = "hospitalPhone"
	FieldPreceptorFirstName Field = "preceptorFirstName"
	FieldPreceptorLastName  Field = "preceptorLastName"
	FieldPreceptorEmail     Field = "preceptorEmail"
	FieldPreceptorPhone1    Field = "preceptorPhone1"
	FieldPreceptorPhone2    Field = "preceptorPhone2"
	FieldCaseDate           Field = "caseDate"
	FieldCaseData           Field = "caseData"
	FieldStatus             Field = "status"
	FieldCreatedDate        Field = "createdDate"
	FieldCreatedBy          Field = "createdBy"
	FieldModifiedDate       Field = "modifiedDate"
	FieldModifiedBy         Field = "modifiedBy"
	FieldCount              Field = "count"
)

// canonicalFields is keyed by the folded column spelling: lower case with
// underscores removed, so ROTNUM, rotnum and rot_num share one entry.
var canonicalFields = map[string]Field{
	"id":                  FieldID,
	"studid":              FieldStudentID,
	"studentid":           FieldStudentID,
	"rotid":               FieldRotationID,
	"rotationid":          FieldRotationID,
	"rotnum":              FieldRotationNumber,
	"rotationnumber":      FieldRotationNumber,
	"starting":            FieldStartDate,
	"startdate":           FieldStartDate,
	"ending":              FieldEndDate,
	"enddate":             FieldEndDate,
	"discid":              FieldDisciplineID,
	"disciplineid":        FieldDisciplineID,
	"hospid":              FieldHospitalID,
	"hospitalid":          FieldHospitalID,
	"precid":              FieldPreceptorID,
	"preceptorid":         FieldPreceptorID,
	"cancelled":           FieldCancelled,
	"grade":               FieldGrade,
	"notes":               FieldNotes,
	"disciplinename":      FieldDisciplineName,
	"disciplineshort":     FieldDisciplineShort,
	"disciplineshortname": FieldDisciplineShort,
	"hospitalname":        FieldHospitalName,
	"hospitaladdress":     FieldHospitalAddress,
	"hospitalcity":        FieldHospitalCity,
	"hospitalstate":       FieldHospitalState,
	"hospitalphone":       FieldHospitalPhone,
	"preceptorfname":      FieldPreceptorFirstName,
	"preceptorfirstname":  FieldPreceptorFirstName,
	"preceptorlname":      FieldPreceptorLastName,
	"preceptorlastname":   FieldPreceptorLastName,
	"preceptoremail":      FieldPreceptorEmail,
	"preceptorphone":      FieldPreceptorPhone1,
	"preceptorphone1":     FieldPreceptorPhone1,
	"preceptorphone2":     FieldPreceptorPhone2,
	"casedate":            FieldCaseDate,
	"casedata":            FieldCaseData,
	"status":              FieldStatus,
	"createddate":         FieldCreatedDate,
	"createdby":           FieldCreatedBy,
	"modifieddate":        FieldModifiedDate,
	"modifiedby":          FieldModifiedBy,
	"cnt":                 FieldCount,
	"count":               FieldCount,
	"caselogcount":        FieldCount,
}

// CanonicalField maps a column name onto its Field. Unknown columns map to
// the empty Field.
func CanonicalField(column string) Field {
	folded := strings.ToLower(strings.ReplaceAll(column, "_", ""))
	return canonicalFields[folded]
}

// MapColumns resolves a whole result set header at once.
func MapColumns(columns []string) []Field {
	fields := make([]Field, len(columns))
	for i, c := range columns {
		fields[i] = CanonicalField(c)
	}
	return fields
}

// Row holds one result row keyed by canonical field, with driver-native
// values. The accessors absorb the type differences between drivers.
type Row map[Field]any

func (r Row) NullInt64(f Field) *int64 {
	var n int64
	switch v := r[f].(type) {
	case nil:
		return nil
	case int64:
		n = v
	case int32:
		n = int64(v)
	case int:
		n = int64(v)
	case uint64:
		n = int64(v)
	case float64:
		n = int64(v)
	case []byte:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	case fmt.Stringer:
		return parseInt(v.String())
	default:
		return nil
	}
	return &n
}

func (r Row) Int64(f Field) int64 {
	if n := r.NullInt64(f); n != nil {
		return *n
	}
	return 0
}

func (r Row) NullString(f Field) *string {
	var s string
	switch v := r[f].(type) {
	case nil:
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprint(v)
	}
	return &s
}

func (r Row) String(f Field) string {
	if s := r.NullString(f); s != nil {
		return *s
	}
	return ""
}

func (r Row) Time(f Field) *time.Time {
	switch v := r[f].(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case *time.Time:
		return v
	case string:
		if t, ok := parseDriverDate(v); ok {
			return &t
		}
	case []byte:
		if t, ok := parseDriverDate(string(v)); ok {
			return &t
		}
	}
	return nil
}

// Text classifies a large-text value. Readers become Streaming sources and
// must be resolved before the result set is closed.
func (r Row) Text(f Field) TextSource {
	switch v := r[f].(type) {
	case nil:
		return nil
	case io.Reader:
		return Streaming{Reader: v}
	case string:
		return Materialized(v)
	case []byte:
		return Materialized(string(v))
	default:
		return Materialized(fmt.Sprint(v))
	}
}

// Flag reads Y/N style indicator columns.
func (r Row) Flag(f Field) bool {
	switch v := r[f].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	}
	switch strings.ToUpper(strings.TrimSpace(r.String(f))) {
	case "Y", "YES", "T", "TRUE", "1":
		return true
	}
	return false
}

func parseInt(s string) *int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := int64(f)
		return &n
	}
	return nil
}

// ScanRows maps the column header once, then calls fn for every row. The
// rows are always closed before ScanRows returns.
func ScanRows(rows *sql.Rows, fn func(Row) error) error {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	fields := MapColumns(columns)

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for rows.Next() {
		for i := range values {
			values[i] = nil
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		row := make(Row, len(fields))
		for i, f := range fields {
			if f != "" {
				row[f] = values[i]
			}
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return rows.Err()
}
