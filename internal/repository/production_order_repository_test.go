package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
)

func TestProductionOrderRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProductionOrderRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "state", "requested_workcenter_id", "requested_shift_type", "requested_date", "requested_duration_minutes", "planned_date", "updated_at"}).
		AddRow("mo-1", "MO/0001", "confirmed", "wc-1", "2", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 90.0, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM mrp_productions WHERE id = $1")).
		WithArgs("mo-1").
		WillReturnRows(rows)

	order, err := repo.FindByID(context.Background(), "mo-1")
	require.NoError(t, err)
	require.NotNil(t, order.RequestedShift)
	assert.Equal(t, models.Shift2, *order.RequestedShift)
	require.NotNil(t, order.RequestedDate)
	assert.Equal(t, models.NewDate(2024, time.March, 4), *order.RequestedDate)
	assert.Nil(t, order.PlannedDate)
	assert.Equal(t, 90.0, order.RequestedMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductionOrderRepositorySetPlannedDateMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProductionOrderRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE mrp_productions SET planned_date = $2")).
		WithArgs("mo-404", "2024-03-05", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPlannedDate(context.Background(), "mo-404", models.NewDate(2024, time.March, 5))
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductionOrderRepositorySumExpectedDuration(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProductionOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM mrp_workorders")).
		WithArgs("mo-1", "wc-2").
		WillReturnRows(sqlmock.NewRows([]string{"operations", "minutes"}).AddRow(2, 135.5))

	minutes, ok, err := repo.SumExpectedDuration(context.Background(), "mo-1", "wc-2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 135.5, minutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkCenterRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWorkCenterRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM mrp_workcenters WHERE id = $1")).
		WithArgs("wc-x").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "wc-x")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}
