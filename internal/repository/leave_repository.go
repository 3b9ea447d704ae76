package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
)

// LeaveRepository reads resource calendar leave periods (holidays and closures).
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository constructs the repository.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// ExistsOverlapping reports whether any leave of the calendar strictly overlaps window.
func (r *LeaveRepository) ExistsOverlapping(ctx context.Context, calendarID string, window models.TimeInterval) (bool, error) {
	const query = `SELECT EXISTS (
	SELECT 1 FROM resource_calendar_leaves
	WHERE calendar_id = $1 AND date_from < $2 AND date_to > $3
)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, calendarID, window.End.UTC(), window.Start.UTC()); err != nil {
		return false, fmt.Errorf("check calendar leaves: %w", err)
	}
	return exists, nil
}
