package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	contracts "financeiro-cloud/internal/contracts/domain"
)

// ContractRepository is an in-memory repository for contracts.
type ContractRepository struct {
	mu   sync.RWMutex
	data map[string]contracts.Contract
}

// NewContractRepository constructs a repository.
func NewContractRepository() *ContractRepository {
	return &ContractRepository{data: make(map[string]contracts.Contract)}
}

// Create inserts a contract (overwrites existing id).
func (r *ContractRepository) Create(ctx context.Context, contract *contracts.Contract) error {
	_ = ctx
	if contract == nil {
		return contracts.ErrNilContract
	}
	r.mu.Lock()
	r.data[contract.TenantID+"|"+contract.ID] = *contract
	r.mu.Unlock()
	return nil
}

// Update overwrites an existing contract.
func (r *ContractRepository) Update(ctx context.Context, contract *contracts.Contract) error {
	_ = ctx
	if contract == nil {
		return contracts.ErrNilContract
	}
	key := contract.TenantID + "|" + contract.ID
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[key]; !ok {
		return contracts.ErrNotFound
	}
	r.data[key] = *contract
	return nil
}

// GetByID loads one contract; nil when absent.
func (r *ContractRepository) GetByID(ctx context.Context, tenantID, id string) (*contracts.Contract, error) {
	_ = ctx
	r.mu.RLock()
	contract, ok := r.data[tenantID+"|"+id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	copied := contract
	return &copied, nil
}

// List returns the tenant's contracts ordered by number.
func (r *ContractRepository) List(ctx context.Context, tenantID string, activeOnly bool) ([]contracts.Contract, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []contracts.Contract
	for _, contract := range r.data {
		if contract.TenantID != tenantID {
			continue
		}
		if activeOnly && !contract.Active {
			continue
		}
		list = append(list, contract)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	return list, nil
}

// Deactivate flips the active flag.
func (r *ContractRepository) Deactivate(ctx context.Context, tenantID, id string, at time.Time) error {
	_ = ctx
	key := tenantID + "|" + id
	r.mu.Lock()
	defer r.mu.Unlock()
	contract, ok := r.data[key]
	if !ok {
		return contracts.ErrNotFound
	}
	contract.Active = false
	contract.UpdatedAt = at
	r.data[key] = contract
	return nil
}
