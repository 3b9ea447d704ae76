package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var slotColumns = []string{"id", "workcenter_id", "shift_type", "start_datetime", "end_datetime", "allocated_minutes", "production_id", "created_at"}

func TestAllocationRepositoryListOverlapping(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAllocationRepository(db)

	tehran := time.FixedZone("IRST", 3*3600+1800)
	window := models.TimeInterval{
		Start: time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC),
	}
	start := time.Date(2024, 3, 4, 12, 30, 0, 0, tehran)

	rows := sqlmock.NewRows(slotColumns).
		AddRow("slot-1", "wc-1", "1", start, start.Add(time.Hour), 60.0, nil, start)
	mock.ExpectQuery(regexp.QuoteMeta("FROM planning_slots")).
		WithArgs("wc-1", "1", window.End, window.Start).
		WillReturnRows(rows)

	slots, err := repo.ListOverlapping(context.Background(), "wc-1", models.Shift1, window)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, time.UTC, slots[0].StartAt.Location())
	assert.Equal(t, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), slots[0].StartAt)
	assert.Nil(t, slots[0].ProductionOrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepositoryListByWorkCenterFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAllocationRepository(db)

	shift := models.Shift2
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE workcenter_id = $1 AND shift_type = $2 AND start_datetime < $3 AND end_datetime > $4 ORDER BY start_datetime ASC")).
		WithArgs("wc-1", "2", to, from).
		WillReturnRows(sqlmock.NewRows(slotColumns))

	slots, err := repo.ListByWorkCenter(context.Background(), models.AllocationFilter{WorkCenterID: "wc-1", ShiftID: &shift, From: from, To: to})
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAllocationRepository(db)

	alloc := &models.Allocation{
		WorkCenterID:     "wc-1",
		ShiftID:          models.Shift1,
		StartAt:          time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC),
		EndAt:            time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		AllocatedMinutes: 60,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("wc-1", "1", alloc.EndAt, alloc.StartAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO planning_slots")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), alloc))
	assert.NotEmpty(t, alloc.ID)
	assert.False(t, alloc.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepositoryCreateRejectsOverlap(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAllocationRepository(db)

	alloc := &models.Allocation{
		WorkCenterID: "wc-1",
		ShiftID:      models.Shift1,
		StartAt:      time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("slot-9"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), alloc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrDoubleBooking))
	assert.Contains(t, err.Error(), "slot-9")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepositoryCreateMapsExclusionViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAllocationRepository(db)

	alloc := &models.Allocation{
		WorkCenterID: "wc-1",
		ShiftID:      models.Shift3,
		StartAt:      time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO planning_slots")).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "planning_slots_no_overlap"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), alloc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrDoubleBooking))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsExclusionViolation(t *testing.T) {
	assert.True(t, IsExclusionViolation(&pq.Error{Code: "23P01"}))
	assert.False(t, IsExclusionViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsExclusionViolation(errors.New("boom")))
}
