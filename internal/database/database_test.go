package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"rotation-tracker-backend/internal/config"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	d, err := Dialector(config.DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(config.DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestDialector_MySQLCountsMatchedRows(t *testing.T) {
	d, err := Dialector(config.DatabaseConfig{
		Driver: "mysql", Host: "db", Port: "3306",
		User: "app", Password: "secret", Database: "rotations",
	})
	require.NoError(t, err)

	dsn, err := mysqldriver.ParseDSN(d.(*gormmysql.Dialector).DSN)
	require.NoError(t, err)
	assert.True(t, dsn.ClientFoundRows)
	assert.True(t, dsn.ParseTime)
	assert.Equal(t, "rotations", dsn.DBName)
}

func TestErrorCode(t *testing.T) {
	pgErr := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	assert.Equal(t, "23503", ErrorCode(pgErr))
	assert.True(t, IsForeignKeyViolation(pgErr))

	myErr := &mysqldriver.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	assert.Equal(t, "1452", ErrorCode(myErr))
	assert.True(t, IsForeignKeyViolation(myErr))

	assert.Equal(t, "", ErrorCode(errors.New("boom")))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestCheck(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	stats, err := Check(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, stats.Healthy)

	require.NoError(t, Close(db))
	stats, err = Check(context.Background(), db)
	assert.Error(t, err)
	assert.False(t, stats.Healthy)
}
