package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
)

// WorkCenterRepository reads work centers.
type WorkCenterRepository struct {
	db *sqlx.DB
}

// NewWorkCenterRepository constructs the repository.
func NewWorkCenterRepository(db *sqlx.DB) *WorkCenterRepository {
	return &WorkCenterRepository{db: db}
}

// FindByID returns a work center or sql.ErrNoRows.
func (r *WorkCenterRepository) FindByID(ctx context.Context, id string) (*models.WorkCenter, error) {
	const query = `SELECT id, name, resource_calendar_id, department_id, active FROM mrp_workcenters WHERE id = $1`
	var wc models.WorkCenter
	if err := r.db.GetContext(ctx, &wc, query, id); err != nil {
		return nil, err
	}
	return &wc, nil
}
