package dto

import "time"

// CreateAllocationRequest books a block of time on a work center shift.
type CreateAllocationRequest struct {
	WorkCenterID      string    `json:"workcenter_id" validate:"required"`
	ShiftType         string    `json:"shift_type" validate:"required,oneof=1 2 3"`
	Start             time.Time `json:"start_datetime" validate:"required"`
	End               time.Time `json:"end_datetime" validate:"required,gtfield=Start"`
	AllocatedMinutes  float64   `json:"allocated_minutes" validate:"omitempty,gte=0"`
	ProductionOrderID *string   `json:"production_id,omitempty"`
}

// AllocationQuery filters GET /allocations.
type AllocationQuery struct {
	WorkCenterID string `form:"workcenter_id" validate:"required"`
	ShiftType    string `form:"shift_type" validate:"omitempty,oneof=1 2 3"`
	From         string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To           string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}
