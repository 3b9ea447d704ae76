package database

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mrp-capacity-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5433, User: "mrp", Password: "secret", Name: "capacity", SSLMode: "disable"})

	assert.Equal(t, "host=db port=5433 user=mrp password=secret dbname=capacity sslmode=disable timezone=UTC", dsn)
}

func TestReadyCheck(t *testing.T) {
	raw, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer raw.Close()

	mock.ExpectPing()
	require.NoError(t, ReadyCheck(sqlx.NewDb(raw, "sqlmock"))(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Error(t, ReadyCheck(nil)(context.Background()))
}
