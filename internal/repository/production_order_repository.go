package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
)

const productionOrderColumns = `id, name, state, requested_workcenter_id, requested_shift_type, requested_date,
       requested_duration_minutes, planned_date, updated_at`

// ProductionOrderRepository reads and updates the capacity fields of production orders.
type ProductionOrderRepository struct {
	db *sqlx.DB
}

// NewProductionOrderRepository constructs the repository.
func NewProductionOrderRepository(db *sqlx.DB) *ProductionOrderRepository {
	return &ProductionOrderRepository{db: db}
}

// FindByID returns an order or sql.ErrNoRows.
func (r *ProductionOrderRepository) FindByID(ctx context.Context, id string) (*models.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM mrp_productions WHERE id = $1`
	var order models.ProductionOrder
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateRequest stores the requested work center, shift, date and duration.
func (r *ProductionOrderRepository) UpdateRequest(ctx context.Context, order *models.ProductionOrder) error {
	order.UpdatedAt = time.Now().UTC()
	const query = `UPDATE mrp_productions
SET requested_workcenter_id = :requested_workcenter_id,
    requested_shift_type = :requested_shift_type,
    requested_date = :requested_date,
    requested_duration_minutes = :requested_duration_minutes,
    updated_at = :updated_at
WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, order)
	if err != nil {
		return fmt.Errorf("update production order request: %w", err)
	}
	return expectOneRow(res, "production order request")
}

// SetPlannedDate writes the resolved date back onto the order.
func (r *ProductionOrderRepository) SetPlannedDate(ctx context.Context, id string, date models.Date) error {
	const query = `UPDATE mrp_productions SET planned_date = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, date, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set planned date: %w", err)
	}
	return expectOneRow(res, "planned date")
}

// SumExpectedDuration adds up the expected minutes of the order's work orders on a work center.
// ok is false when the order has no work orders there.
func (r *ProductionOrderRepository) SumExpectedDuration(ctx context.Context, orderID, workCenterID string) (float64, bool, error) {
	const query = `SELECT COUNT(*) AS operations, COALESCE(SUM(duration_expected), 0) AS minutes
FROM mrp_workorders WHERE production_id = $1 AND workcenter_id = $2`
	var row struct {
		Operations int     `db:"operations"`
		Minutes    float64 `db:"minutes"`
	}
	if err := r.db.GetContext(ctx, &row, query, orderID, workCenterID); err != nil {
		return 0, false, fmt.Errorf("sum work order durations: %w", err)
	}
	return row.Minutes, row.Operations > 0, nil
}

func expectOneRow(res sql.Result, what string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check %s rows: %w", what, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
