package dto

import "github.com/noah-isme/mrp-capacity-api/internal/models"

// AssignWorkCenterRequest changes the requested work center of a production order.
// Without DurationMinutes the duration defaults to the order's work orders on that work center.
type AssignWorkCenterRequest struct {
	WorkCenterID    string       `json:"workcenter_id" validate:"required"`
	ShiftType       *string      `json:"shift_type,omitempty" validate:"omitempty,oneof=1 2 3"`
	Date            *models.Date `json:"date,omitempty"`
	DurationMinutes *float64     `json:"duration_minutes,omitempty" validate:"omitempty,gt=0,max=527040"`
}

// PlanResponse reports the outcome of a check or plan action.
type PlanResponse struct {
	OrderID             string               `json:"order_id"`
	Outcome             models.SearchOutcome `json:"outcome"`
	RequestedDate       models.Date          `json:"requested_date"`
	ResolvedDate        models.Date          `json:"resolved_date"`
	ResolvedDateDisplay string               `json:"resolved_date_display"`
	DaysSearched        int                  `json:"days_searched"`
	Message             string               `json:"message"`
	Planned             bool                 `json:"planned"`
}

// PlanningJobResponse identifies an asynchronous plan job.
type PlanningJobResponse struct {
	JobID   string `json:"job_id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
