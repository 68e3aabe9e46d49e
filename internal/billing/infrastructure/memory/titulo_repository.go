package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	billing "financeiro-cloud/internal/billing/domain"
)

// TituloRepository is an in-memory repository for títulos.
type TituloRepository struct {
	mu   sync.RWMutex
	data map[string]billing.Titulo
}

// NewTituloRepository constructs a repository.
func NewTituloRepository() *TituloRepository {
	return &TituloRepository{data: make(map[string]billing.Titulo)}
}

// Create inserts a título (overwrites existing id).
func (r *TituloRepository) Create(ctx context.Context, titulo *billing.Titulo) error {
	_ = ctx
	if titulo == nil {
		return billing.ErrNilTitulo
	}
	r.mu.Lock()
	r.data[titulo.TenantID+"|"+titulo.ID] = *titulo
	r.mu.Unlock()
	return nil
}

// Update overwrites an existing título.
func (r *TituloRepository) Update(ctx context.Context, titulo *billing.Titulo) error {
	_ = ctx
	if titulo == nil {
		return billing.ErrNilTitulo
	}
	key := titulo.TenantID + "|" + titulo.ID
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[key]; !ok {
		return billing.ErrNotFound
	}
	r.data[key] = *titulo
	return nil
}

// GetByID loads one título; nil when absent.
func (r *TituloRepository) GetByID(ctx context.Context, tenantID, id string) (*billing.Titulo, error) {
	_ = ctx
	r.mu.RLock()
	titulo, ok := r.data[tenantID+"|"+id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	copied := titulo
	return &copied, nil
}

// List returns títulos matching the filter, ordered by due date.
func (r *TituloRepository) List(ctx context.Context, tenantID string, filter billing.ListFilter) ([]billing.Titulo, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []billing.Titulo
	for _, titulo := range r.data {
		if titulo.TenantID != tenantID {
			continue
		}
		if filter.Kind != "" && titulo.Kind != filter.Kind {
			continue
		}
		if filter.Status != "" && titulo.Status != filter.Status {
			continue
		}
		if !filter.DueFrom.IsZero() && titulo.DueDate.Before(filter.DueFrom) {
			continue
		}
		if !filter.DueUntil.IsZero() && titulo.DueDate.After(filter.DueUntil) {
			continue
		}
		list = append(list, titulo)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].DueDate.Equal(list[j].DueDate) {
			return list[i].ID < list[j].ID
		}
		return list[i].DueDate.Before(list[j].DueDate)
	})
	return list, nil
}

// ListOpenDueBefore returns open títulos due strictly before the cutoff.
func (r *TituloRepository) ListOpenDueBefore(ctx context.Context, tenantID string, cutoff time.Time) ([]billing.Titulo, error) {
	list, err := r.List(ctx, tenantID, billing.ListFilter{Status: billing.StatusOpen})
	if err != nil {
		return nil, err
	}
	var lapsed []billing.Titulo
	for _, titulo := range list {
		if titulo.DueDate.Before(cutoff) {
			lapsed = append(lapsed, titulo)
		}
	}
	return lapsed, nil
}

// MarkOverdue transitions the given títulos to overdue.
func (r *TituloRepository) MarkOverdue(ctx context.Context, tenantID string, ids []string, at time.Time) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		key := tenantID + "|" + id
		titulo, ok := r.data[key]
		if !ok || titulo.Status != billing.StatusOpen {
			continue
		}
		titulo.Status = billing.StatusOverdue
		titulo.UpdatedAt = at
		r.data[key] = titulo
	}
	return nil
}
