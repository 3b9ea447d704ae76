package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
)

// exclusionViolation is the SQLSTATE raised by the planning_slots_no_overlap constraint.
const exclusionViolation = pq.ErrorCode("23P01")

const allocationColumns = `id, workcenter_id, shift_type, start_datetime, end_datetime, allocated_minutes, production_id, created_at`

// AllocationRepository persists planning slots, the committed busy blocks of a work center shift.
type AllocationRepository struct {
	db *sqlx.DB
}

// NewAllocationRepository constructs the repository.
func NewAllocationRepository(db *sqlx.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// ListOverlapping returns the slots of a work center shift that overlap window, ordered by start.
func (r *AllocationRepository) ListOverlapping(ctx context.Context, workCenterID string, shiftID models.ShiftID, window models.TimeInterval) ([]models.Allocation, error) {
	const query = `SELECT ` + allocationColumns + `
FROM planning_slots
WHERE workcenter_id = $1 AND shift_type = $2 AND start_datetime < $3 AND end_datetime > $4
ORDER BY start_datetime ASC`
	var rows []models.Allocation
	if err := r.db.SelectContext(ctx, &rows, query, workCenterID, string(shiftID), window.End.UTC(), window.Start.UTC()); err != nil {
		return nil, fmt.Errorf("list overlapping planning slots: %w", err)
	}
	normalizeAllocations(rows)
	return rows, nil
}

// ListByWorkCenter lists slots of a work center within an optional range and shift.
func (r *AllocationRepository) ListByWorkCenter(ctx context.Context, filter models.AllocationFilter) ([]models.Allocation, error) {
	builder := strings.Builder{}
	builder.WriteString(`SELECT ` + allocationColumns + ` FROM planning_slots WHERE workcenter_id = $1`)
	args := []interface{}{filter.WorkCenterID}

	if filter.ShiftID != nil {
		args = append(args, string(*filter.ShiftID))
		builder.WriteString(fmt.Sprintf(" AND shift_type = $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To.UTC())
		builder.WriteString(fmt.Sprintf(" AND start_datetime < $%d", len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From.UTC())
		builder.WriteString(fmt.Sprintf(" AND end_datetime > $%d", len(args)))
	}
	builder.WriteString(" ORDER BY start_datetime ASC")

	var rows []models.Allocation
	if err := r.db.SelectContext(ctx, &rows, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list planning slots: %w", err)
	}
	normalizeAllocations(rows)
	return rows, nil
}

// Create inserts a slot after checking, under row locks, that no slot on the same work center
// shift overlaps it. The exclusion constraint catches commits that race past the check.
func (r *AllocationRepository) Create(ctx context.Context, alloc *models.Allocation) (err error) {
	if alloc.ID == "" {
		alloc.ID = uuid.NewString()
	}
	if alloc.CreatedAt.IsZero() {
		alloc.CreatedAt = time.Now().UTC()
	}
	alloc.StartAt = alloc.StartAt.UTC()
	alloc.EndAt = alloc.EndAt.UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin planning slot transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const lockQuery = `SELECT id FROM planning_slots
WHERE workcenter_id = $1 AND shift_type = $2 AND start_datetime < $3 AND end_datetime > $4
LIMIT 1 FOR UPDATE`
	var conflictID string
	err = tx.GetContext(ctx, &conflictID, lockQuery, alloc.WorkCenterID, string(alloc.ShiftID), alloc.EndAt, alloc.StartAt)
	switch {
	case err == nil:
		err = appErrors.Clone(appErrors.ErrDoubleBooking, fmt.Sprintf("shift %s on work center %s is already booked by slot %s", alloc.ShiftID, alloc.WorkCenterID, conflictID))
		return err
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("check planning slot overlap: %w", err)
	}

	const insertQuery = `INSERT INTO planning_slots (` + allocationColumns + `)
VALUES (:id, :workcenter_id, :shift_type, :start_datetime, :end_datetime, :allocated_minutes, :production_id, :created_at)`
	if _, err = sqlx.NamedExecContext(ctx, tx, insertQuery, alloc); err != nil {
		if IsExclusionViolation(err) {
			err = appErrors.Wrap(err, appErrors.ErrDoubleBooking.Code, appErrors.ErrDoubleBooking.Status, appErrors.ErrDoubleBooking.Message)
			return err
		}
		return fmt.Errorf("insert planning slot: %w", err)
	}

	if err = tx.Commit(); err != nil {
		if IsExclusionViolation(err) {
			err = appErrors.Wrap(err, appErrors.ErrDoubleBooking.Code, appErrors.ErrDoubleBooking.Status, appErrors.ErrDoubleBooking.Message)
			return err
		}
		return fmt.Errorf("commit planning slot: %w", err)
	}
	return nil
}

// IsExclusionViolation reports whether err was raised by an exclusion constraint.
func IsExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == exclusionViolation
}

func normalizeAllocations(rows []models.Allocation) {
	for i := range rows {
		rows[i].StartAt = rows[i].StartAt.UTC()
		rows[i].EndAt = rows[i].EndAt.UTC()
		rows[i].CreatedAt = rows[i].CreatedAt.UTC()
	}
}
