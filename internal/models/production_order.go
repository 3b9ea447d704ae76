package models

import "time"

// ProductionOrderState mirrors the host application's manufacturing order states.
type ProductionOrderState string

const (
	ProductionOrderDraft     ProductionOrderState = "draft"
	ProductionOrderConfirmed ProductionOrderState = "confirmed"
	ProductionOrderPlanned   ProductionOrderState = "planned"
	ProductionOrderDone      ProductionOrderState = "done"
	ProductionOrderCancelled ProductionOrderState = "cancel"
)

// ProductionOrder carries the requested capacity fields of a manufacturing order.
type ProductionOrder struct {
	ID                    string               `db:"id" json:"id"`
	Name                  string               `db:"name" json:"name"`
	State                 ProductionOrderState `db:"state" json:"state"`
	RequestedWorkCenterID *string              `db:"requested_workcenter_id" json:"requested_workcenter_id,omitempty"`
	RequestedShift        *ShiftID             `db:"requested_shift_type" json:"requested_shift_type,omitempty"`
	RequestedDate         *Date                `db:"requested_date" json:"requested_date,omitempty"`
	RequestedMinutes      float64              `db:"requested_duration_minutes" json:"requested_duration_minutes"`
	PlannedDate           *Date                `db:"planned_date" json:"planned_date,omitempty"`
	UpdatedAt             time.Time            `db:"updated_at" json:"updated_at"`
}

// Plannable reports whether the order can still be planned.
func (p *ProductionOrder) Plannable() bool {
	return p.State != ProductionOrderDone && p.State != ProductionOrderCancelled
}
