package database

import (
	"errors"
	"strconv"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorCode extracts the vendor error code from a driver error, or "" when
// err did not come from a recognised driver.
func ErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return strconv.Itoa(int(myErr.Number))
	}
	return ""
}

// IsForeignKeyViolation reports whether err is a referential integrity
// failure (PostgreSQL 23503, MySQL 1452).
func IsForeignKeyViolation(err error) bool {
	switch ErrorCode(err) {
	case "23503", "1452":
		return true
	}
	return false
}
