package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	billing "financeiro-cloud/internal/billing/domain"
	"financeiro-cloud/internal/observability/metrics"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Service handles título workflows.
type Service struct {
	repo  billing.Repository
	clock Clock
}

// NewService constructs a service.
func NewService(repo billing.Repository, clock Clock) (*Service, error) {
	if repo == nil {
		return nil, errors.New("billing service: nil repo")
	}
	if clock == nil {
		return nil, errors.New("billing service: nil clock")
	}
	return &Service{repo: repo, clock: clock}, nil
}

// Create registers a new título in the open state.
func (s *Service) Create(ctx context.Context, titulo billing.Titulo) (*billing.Titulo, error) {
	if titulo.TenantID == "" {
		return nil, billing.ErrEmptyTenant
	}
	if !titulo.Kind.IsValid() {
		return nil, billing.ErrInvalidKind
	}
	if !titulo.Amount.IsPositive() {
		return nil, billing.ErrInvalidAmount
	}
	if titulo.DueDate.IsZero() {
		return nil, billing.ErrMissingDueDate
	}
	now := s.clock.Now().UTC()
	if titulo.ID == "" {
		titulo.ID = newTituloID()
	}
	titulo.Status = billing.StatusOpen
	titulo.SettlementDate = time.Time{}
	titulo.CreatedAt = now
	titulo.UpdatedAt = now
	if err := s.repo.Create(ctx, &titulo); err != nil {
		metrics.IncTituloOp("create", metrics.ResultError)
		return nil, err
	}
	metrics.IncTituloOp("create", metrics.ResultSuccess)
	return &titulo, nil
}

// Settle records the baixa: the título becomes settled on the given date.
// Settling an overdue título is allowed (late payment); settling twice or
// settling a canceled título is not.
func (s *Service) Settle(ctx context.Context, tenantID, id string, settlementDate time.Time) (*billing.Titulo, error) {
	titulo, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if titulo == nil {
		return nil, billing.ErrNotFound
	}
	if titulo.Status == billing.StatusSettled {
		return nil, billing.ErrAlreadySettled
	}
	if titulo.Status == billing.StatusCanceled {
		return nil, billing.ErrCanceled
	}
	now := s.clock.Now().UTC()
	if settlementDate.IsZero() {
		settlementDate = now
	}
	titulo.Status = billing.StatusSettled
	titulo.SettlementDate = settlementDate.UTC()
	titulo.UpdatedAt = now
	if err := s.repo.Update(ctx, titulo); err != nil {
		metrics.IncTituloOp("settle", metrics.ResultError)
		return nil, err
	}
	metrics.IncTituloOp("settle", metrics.ResultSuccess)
	return titulo, nil
}

// Cancel removes a título from every view.
func (s *Service) Cancel(ctx context.Context, tenantID, id string) (*billing.Titulo, error) {
	titulo, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if titulo == nil {
		return nil, billing.ErrNotFound
	}
	if titulo.Status == billing.StatusSettled {
		return nil, billing.ErrAlreadySettled
	}
	titulo.Status = billing.StatusCanceled
	titulo.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, titulo); err != nil {
		return nil, err
	}
	return titulo, nil
}

// Get returns one título.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*billing.Titulo, error) {
	titulo, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if titulo == nil {
		return nil, billing.ErrNotFound
	}
	return titulo, nil
}

// List returns títulos matching the filter.
func (s *Service) List(ctx context.Context, tenantID string, filter billing.ListFilter) ([]billing.Titulo, error) {
	if tenantID == "" {
		return nil, billing.ErrEmptyTenant
	}
	return s.repo.List(ctx, tenantID, filter)
}

func newTituloID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return "tit-" + hex.EncodeToString(buf)
}
