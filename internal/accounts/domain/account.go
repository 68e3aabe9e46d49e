package accounts

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is a registered bank account with its reference balance.
// InitialBalance is the balance observed on InitialBalanceDate; the cash-flow
// engine folds realized movements on top of it.
type BankAccount struct {
	ID                 string          `json:"id"`
	TenantID           string          `json:"tenant_id"`
	Name               string          `json:"name"`
	BankCode           string          `json:"bank_code"`
	Branch             string          `json:"branch"`
	Number             string          `json:"number"`
	InitialBalance     decimal.Decimal `json:"initial_balance"`
	InitialBalanceDate time.Time       `json:"initial_balance_date"`
	Active             bool            `json:"active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Repository persists bank accounts.
type Repository interface {
	Create(ctx context.Context, account *BankAccount) error
	Update(ctx context.Context, account *BankAccount) error
	GetByID(ctx context.Context, tenantID, id string) (*BankAccount, error)
	List(ctx context.Context, tenantID string, activeOnly bool) ([]BankAccount, error)
	Deactivate(ctx context.Context, tenantID, id string, at time.Time) error
}
