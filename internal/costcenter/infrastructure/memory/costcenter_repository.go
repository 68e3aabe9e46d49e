package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	costcenter "financeiro-cloud/internal/costcenter/domain"
)

// CostCenterRepository is an in-memory repository for cost centers.
type CostCenterRepository struct {
	mu   sync.RWMutex
	data map[string]costcenter.CostCenter
}

// NewCostCenterRepository constructs a repository.
func NewCostCenterRepository() *CostCenterRepository {
	return &CostCenterRepository{data: make(map[string]costcenter.CostCenter)}
}

// Create inserts a cost center (overwrites existing id).
func (r *CostCenterRepository) Create(ctx context.Context, center *costcenter.CostCenter) error {
	_ = ctx
	if center == nil {
		return costcenter.ErrNilCenter
	}
	r.mu.Lock()
	r.data[center.TenantID+"|"+center.ID] = *center
	r.mu.Unlock()
	return nil
}

// GetByID loads one cost center; nil when absent.
func (r *CostCenterRepository) GetByID(ctx context.Context, tenantID, id string) (*costcenter.CostCenter, error) {
	_ = ctx
	r.mu.RLock()
	center, ok := r.data[tenantID+"|"+id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	copied := center
	return &copied, nil
}

// List returns the tenant's cost centers ordered by code.
func (r *CostCenterRepository) List(ctx context.Context, tenantID string, activeOnly bool) ([]costcenter.CostCenter, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []costcenter.CostCenter
	for _, center := range r.data {
		if center.TenantID != tenantID {
			continue
		}
		if activeOnly && !center.Active {
			continue
		}
		list = append(list, center)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

// Deactivate flips the active flag.
func (r *CostCenterRepository) Deactivate(ctx context.Context, tenantID, id string, at time.Time) error {
	_ = ctx
	key := tenantID + "|" + id
	r.mu.Lock()
	defer r.mu.Unlock()
	center, ok := r.data[key]
	if !ok {
		return costcenter.ErrNotFound
	}
	center.Active = false
	center.UpdatedAt = at
	r.data[key] = center
	return nil
}
