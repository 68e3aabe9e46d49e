package costcenter

import (
	"context"
	"errors"
	"time"
)

// CostCenter groups títulos for reporting. Code is unique per tenant by
// convention; the registry does not enforce it.
type CostCenter struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository persists cost centers.
type Repository interface {
	Create(ctx context.Context, center *CostCenter) error
	GetByID(ctx context.Context, tenantID, id string) (*CostCenter, error)
	List(ctx context.Context, tenantID string, activeOnly bool) ([]CostCenter, error)
	Deactivate(ctx context.Context, tenantID, id string, at time.Time) error
}

var (
	ErrNotFound    = errors.New("costcenter: cost center not found")
	ErrNilCenter   = errors.New("costcenter: nil cost center")
	ErrEmptyTenant = errors.New("costcenter: empty tenant id")
	ErrEmptyCode   = errors.New("costcenter: empty code")
	ErrEmptyName   = errors.New("costcenter: empty name")
)
