package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	costcenter "financeiro-cloud/internal/costcenter/domain"
)

// CostCenterRepository persists cost centers in postgres.
type CostCenterRepository struct {
	db *sql.DB
}

// NewCostCenterRepository constructs a repository.
func NewCostCenterRepository(db *sql.DB) *CostCenterRepository {
	return &CostCenterRepository{db: db}
}

// Create inserts a cost center.
func (r *CostCenterRepository) Create(ctx context.Context, center *costcenter.CostCenter) error {
	if r == nil || r.db == nil {
		return errors.New("costcenter repo: nil db")
	}
	if center == nil {
		return costcenter.ErrNilCenter
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO cost_centers (id, tenant_id, code, name, active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		center.ID, center.TenantID, center.Code, center.Name, center.Active,
		center.CreatedAt, center.UpdatedAt)
	return err
}

// GetByID loads one cost center; nil when absent.
func (r *CostCenterRepository) GetByID(ctx context.Context, tenantID, id string) (*costcenter.CostCenter, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("costcenter repo: nil db")
	}
	var center costcenter.CostCenter
	err := r.db.QueryRowContext(ctx, `
SELECT id, tenant_id, code, name, active, created_at, updated_at
FROM cost_centers
WHERE tenant_id = $1 AND id = $2`, tenantID, id).Scan(
		&center.ID, &center.TenantID, &center.Code, &center.Name, &center.Active,
		&center.CreatedAt, &center.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &center, nil
}

// List returns the tenant's cost centers ordered by code.
func (r *CostCenterRepository) List(ctx context.Context, tenantID string, activeOnly bool) ([]costcenter.CostCenter, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("costcenter repo: nil db")
	}
	query := `
SELECT id, tenant_id, code, name, active, created_at, updated_at
FROM cost_centers
WHERE tenant_id = $1`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []costcenter.CostCenter
	for rows.Next() {
		var center costcenter.CostCenter
		if err := rows.Scan(&center.ID, &center.TenantID, &center.Code, &center.Name,
			&center.Active, &center.CreatedAt, &center.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, center)
	}
	return list, rows.Err()
}

// Deactivate flips the active flag.
func (r *CostCenterRepository) Deactivate(ctx context.Context, tenantID, id string, at time.Time) error {
	if r == nil || r.db == nil {
		return errors.New("costcenter repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `
UPDATE cost_centers SET active = false, updated_at = $1
WHERE tenant_id = $2 AND id = $3`, at, tenantID, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return costcenter.ErrNotFound
	}
	return nil
}
