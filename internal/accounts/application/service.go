package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	accounts "financeiro-cloud/internal/accounts/domain"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Service handles bank account registry workflows.
type Service struct {
	repo  accounts.Repository
	clock Clock
}

// NewService constructs a service.
func NewService(repo accounts.Repository, clock Clock) (*Service, error) {
	if repo == nil {
		return nil, errors.New("accounts service: nil repo")
	}
	if clock == nil {
		return nil, errors.New("accounts service: nil clock")
	}
	return &Service{repo: repo, clock: clock}, nil
}

// Create registers a new bank account.
func (s *Service) Create(ctx context.Context, account accounts.BankAccount) (*accounts.BankAccount, error) {
	if account.TenantID == "" {
		return nil, accounts.ErrEmptyTenant
	}
	if account.Name == "" {
		return nil, accounts.ErrEmptyName
	}
	now := s.clock.Now().UTC()
	if account.ID == "" {
		account.ID = newAccountID()
	}
	if account.InitialBalanceDate.IsZero() {
		account.InitialBalanceDate = now
	}
	account.Active = true
	account.CreatedAt = now
	account.UpdatedAt = now
	if err := s.repo.Create(ctx, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Update overwrites mutable account fields.
func (s *Service) Update(ctx context.Context, account accounts.BankAccount) (*accounts.BankAccount, error) {
	if account.TenantID == "" {
		return nil, accounts.ErrEmptyTenant
	}
	existing, err := s.repo.GetByID(ctx, account.TenantID, account.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, accounts.ErrNotFound
	}
	account.CreatedAt = existing.CreatedAt
	account.Active = existing.Active
	account.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Get returns one account.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*accounts.BankAccount, error) {
	account, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, accounts.ErrNotFound
	}
	return account, nil
}

// List returns the tenant's accounts.
func (s *Service) List(ctx context.Context, tenantID string, activeOnly bool) ([]accounts.BankAccount, error) {
	if tenantID == "" {
		return nil, accounts.ErrEmptyTenant
	}
	return s.repo.List(ctx, tenantID, activeOnly)
}

// Deactivate retires an account. Historical movements keep referencing it.
func (s *Service) Deactivate(ctx context.Context, tenantID, id string) error {
	if tenantID == "" {
		return accounts.ErrEmptyTenant
	}
	return s.repo.Deactivate(ctx, tenantID, id, s.clock.Now().UTC())
}

func newAccountID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return "acc-" + hex.EncodeToString(buf)
}
