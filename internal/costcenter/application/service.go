package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	costcenter "financeiro-cloud/internal/costcenter/domain"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Service handles cost center registry workflows.
type Service struct {
	repo  costcenter.Repository
	clock Clock
}

// NewService constructs a service.
func NewService(repo costcenter.Repository, clock Clock) (*Service, error) {
	if repo == nil {
		return nil, errors.New("costcenter service: nil repo")
	}
	if clock == nil {
		return nil, errors.New("costcenter service: nil clock")
	}
	return &Service{repo: repo, clock: clock}, nil
}

// Create registers a new cost center.
func (s *Service) Create(ctx context.Context, center costcenter.CostCenter) (*costcenter.CostCenter, error) {
	if center.TenantID == "" {
		return nil, costcenter.ErrEmptyTenant
	}
	if center.Code == "" {
		return nil, costcenter.ErrEmptyCode
	}
	if center.Name == "" {
		return nil, costcenter.ErrEmptyName
	}
	now := s.clock.Now().UTC()
	if center.ID == "" {
		center.ID = newCenterID()
	}
	center.Active = true
	center.CreatedAt = now
	center.UpdatedAt = now
	if err := s.repo.Create(ctx, &center); err != nil {
		return nil, err
	}
	return &center, nil
}

// Get returns one cost center.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*costcenter.CostCenter, error) {
	center, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, costcenter.ErrNotFound
	}
	return center, nil
}

// List returns the tenant's cost centers.
func (s *Service) List(ctx context.Context, tenantID string, activeOnly bool) ([]costcenter.CostCenter, error) {
	if tenantID == "" {
		return nil, costcenter.ErrEmptyTenant
	}
	return s.repo.List(ctx, tenantID, activeOnly)
}

// Deactivate retires a cost center.
func (s *Service) Deactivate(ctx context.Context, tenantID, id string) error {
	if tenantID == "" {
		return costcenter.ErrEmptyTenant
	}
	return s.repo.Deactivate(ctx, tenantID, id, s.clock.Now().UTC())
}

func newCenterID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return "cc-" + hex.EncodeToString(buf)
}
