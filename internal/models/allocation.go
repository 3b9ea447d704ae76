package models

import "time"

// Allocation is a committed block of time on a work center shift (a planning slot).
type Allocation struct {
	ID                string    `db:"id" json:"id"`
	WorkCenterID      string    `db:"workcenter_id" json:"workcenter_id"`
	ShiftID           ShiftID   `db:"shift_type" json:"shift_type"`
	StartAt           time.Time `db:"start_datetime" json:"start_datetime"`
	EndAt             time.Time `db:"end_datetime" json:"end_datetime"`
	AllocatedMinutes  float64   `db:"allocated_minutes" json:"allocated_minutes"`
	ProductionOrderID *string   `db:"production_id" json:"production_id,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// Interval returns the allocation bounds in UTC.
func (a Allocation) Interval() TimeInterval {
	return TimeInterval{Start: a.StartAt.UTC(), End: a.EndAt.UTC()}
}

// AllocationFilter narrows allocation listings.
type AllocationFilter struct {
	WorkCenterID string
	ShiftID      *ShiftID
	From         time.Time
	To           time.Time
}
