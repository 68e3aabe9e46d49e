package contracts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Side tells whether the contract generates receivables or payables.
type Side string

const (
	SideReceivable Side = "receivable"
	SidePayable    Side = "payable"
)

// IsValid checks if the side is one of the supported values.
func (s Side) IsValid() bool {
	return s == SideReceivable || s == SidePayable
}

// Contract is a registered agreement with a counterparty. TotalAmount is the
// full contract value; installment generation splits it into títulos.
// ReadjustmentIndex is the name of the index the parties agreed on (IPCA,
// IGP-M); looking the index value up is an external concern.
type Contract struct {
	ID                string          `json:"id"`
	TenantID          string          `json:"tenant_id"`
	Number            string          `json:"number"`
	Counterparty      string          `json:"counterparty"`
	CounterpartyCNPJ  string          `json:"counterparty_cnpj,omitempty"`
	Side              Side            `json:"side"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	StartDate         time.Time       `json:"start_date"`
	EndDate           time.Time       `json:"end_date"`
	ReadjustmentIndex string          `json:"readjustment_index,omitempty"`
	CostCenterID      string          `json:"cost_center_id,omitempty"`
	BankAccountID     string          `json:"bank_account_id,omitempty"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Repository persists contracts.
type Repository interface {
	Create(ctx context.Context, contract *Contract) error
	Update(ctx context.Context, contract *Contract) error
	GetByID(ctx context.Context, tenantID, id string) (*Contract, error)
	List(ctx context.Context, tenantID string, activeOnly bool) ([]Contract, error)
	Deactivate(ctx context.Context, tenantID, id string, at time.Time) error
}
