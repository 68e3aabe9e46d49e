package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	billing "financeiro-cloud/internal/billing/domain"
	contracts "financeiro-cloud/internal/contracts/domain"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// TituloCreator opens títulos on behalf of a contract.
type TituloCreator interface {
	Create(ctx context.Context, titulo billing.Titulo) (*billing.Titulo, error)
}

// Service handles contract registry workflows and installment generation.
type Service struct {
	repo    contracts.Repository
	titulos TituloCreator
	clock   Clock
}

// NewService constructs a service. The título creator may be nil when
// installment generation is not wired.
func NewService(repo contracts.Repository, titulos TituloCreator, clock Clock) (*Service, error) {
	if repo == nil {
		return nil, errors.New("contracts service: nil repo")
	}
	if clock == nil {
		return nil, errors.New("contracts service: nil clock")
	}
	return &Service{repo: repo, titulos: titulos, clock: clock}, nil
}

// Create registers a new contract.
func (s *Service) Create(ctx context.Context, contract contracts.Contract) (*contracts.Contract, error) {
	if contract.TenantID == "" {
		return nil, contracts.ErrEmptyTenant
	}
	if contract.Number == "" {
		return nil, contracts.ErrEmptyNumber
	}
	if !contract.Side.IsValid() {
		return nil, contracts.ErrInvalidSide
	}
	if !contract.TotalAmount.IsPositive() {
		return nil, contracts.ErrInvalidAmount
	}
	if !contract.EndDate.IsZero() && contract.EndDate.Before(contract.StartDate) {
		return nil, contracts.ErrInvalidValidity
	}
	now := s.clock.Now().UTC()
	if contract.ID == "" {
		contract.ID = newContractID()
	}
	contract.Active = true
	contract.CreatedAt = now
	contract.UpdatedAt = now
	if err := s.repo.Create(ctx, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

// Update overwrites mutable contract fields.
func (s *Service) Update(ctx context.Context, contract contracts.Contract) (*contracts.Contract, error) {
	if contract.TenantID == "" {
		return nil, contracts.ErrEmptyTenant
	}
	existing, err := s.repo.GetByID(ctx, contract.TenantID, contract.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, contracts.ErrNotFound
	}
	if !contract.Side.IsValid() {
		return nil, contracts.ErrInvalidSide
	}
	if !contract.TotalAmount.IsPositive() {
		return nil, contracts.ErrInvalidAmount
	}
	contract.Active = existing.Active
	contract.CreatedAt = existing.CreatedAt
	contract.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

// Get returns one contract.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*contracts.Contract, error) {
	contract, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, contracts.ErrNotFound
	}
	return contract, nil
}

// List returns the tenant's contracts.
func (s *Service) List(ctx context.Context, tenantID string, activeOnly bool) ([]contracts.Contract, error) {
	if tenantID == "" {
		return nil, contracts.ErrEmptyTenant
	}
	return s.repo.List(ctx, tenantID, activeOnly)
}

// Deactivate retires a contract. Existing títulos stay untouched.
func (s *Service) Deactivate(ctx context.Context, tenantID, id string) error {
	if tenantID == "" {
		return contracts.ErrEmptyTenant
	}
	return s.repo.Deactivate(ctx, tenantID, id, s.clock.Now().UTC())
}

// GenerateInstallments splits the contract's total amount into count monthly
// títulos starting at firstDueDate. Each installment carries an equal share
// rounded to cents; the last one absorbs the rounding remainder so the sum
// always equals the contract total.
func (s *Service) GenerateInstallments(ctx context.Context, tenantID, contractID string, count int, firstDueDate time.Time) ([]billing.Titulo, error) {
	if s.titulos == nil {
		return nil, errors.New("contracts service: no título creator wired")
	}
	if count <= 0 {
		return nil, contracts.ErrBadInstallments
	}
	contract, err := s.Get(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}
	if !contract.Active {
		return nil, contracts.ErrInactive
	}
	if firstDueDate.IsZero() {
		firstDueDate = contract.StartDate
	}

	kind := billing.KindReceivable
	if contract.Side == contracts.SidePayable {
		kind = billing.KindPayable
	}

	total := contract.TotalAmount
	share := total.DivRound(decimal.NewFromInt(int64(count)), 2)
	created := make([]billing.Titulo, 0, count)
	for i := 0; i < count; i++ {
		amount := share
		if i == count-1 {
			amount = total.Sub(share.Mul(decimal.NewFromInt(int64(count - 1))))
		}
		titulo := billing.Titulo{
			TenantID:      tenantID,
			Kind:          kind,
			Description:   fmt.Sprintf("Contrato %s - parcela %d/%d", contract.Number, i+1, count),
			ContractID:    contract.ID,
			CostCenterID:  contract.CostCenterID,
			BankAccountID: contract.BankAccountID,
			Amount:        amount,
			DueDate:       firstDueDate.UTC().AddDate(0, i, 0),
		}
		saved, err := s.titulos.Create(ctx, titulo)
		if err != nil {
			return created, err
		}
		created = append(created, *saved)
	}
	return created, nil
}

func newContractID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return "ctr-" + hex.EncodeToString(buf)
}
