package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	accounts "financeiro-cloud/internal/accounts/domain"
)

// AccountRepository is an in-memory repository for bank accounts.
type AccountRepository struct {
	mu   sync.RWMutex
	data map[string]accounts.BankAccount
}

// NewAccountRepository constructs a repository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{data: make(map[string]accounts.BankAccount)}
}

// Create inserts an account (overwrites existing id).
func (r *AccountRepository) Create(ctx context.Context, account *accounts.BankAccount) error {
	_ = ctx
	if account == nil {
		return accounts.ErrNilAccount
	}
	r.mu.Lock()
	r.data[account.TenantID+"|"+account.ID] = *account
	r.mu.Unlock()
	return nil
}

// Update overwrites an existing account.
func (r *AccountRepository) Update(ctx context.Context, account *accounts.BankAccount) error {
	_ = ctx
	if account == nil {
		return accounts.ErrNilAccount
	}
	key := account.TenantID + "|" + account.ID
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[key]; !ok {
		return accounts.ErrNotFound
	}
	r.data[key] = *account
	return nil
}

// GetByID loads one account; nil when absent.
func (r *AccountRepository) GetByID(ctx context.Context, tenantID, id string) (*accounts.BankAccount, error) {
	_ = ctx
	r.mu.RLock()
	account, ok := r.data[tenantID+"|"+id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	copied := account
	return &copied, nil
}

// List returns the tenant's accounts ordered by name.
func (r *AccountRepository) List(ctx context.Context, tenantID string, activeOnly bool) ([]accounts.BankAccount, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []accounts.BankAccount
	for _, account := range r.data {
		if account.TenantID != tenantID {
			continue
		}
		if activeOnly && !account.Active {
			continue
		}
		list = append(list, account)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// Deactivate flips the active flag.
func (r *AccountRepository) Deactivate(ctx context.Context, tenantID, id string, at time.Time) error {
	_ = ctx
	key := tenantID + "|" + id
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.data[key]
	if !ok {
		return accounts.ErrNotFound
	}
	account.Active = false
	account.UpdatedAt = at
	r.data[key] = account
	return nil
}
