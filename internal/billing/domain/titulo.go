package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Kind tells which side of the ledger a título sits on.
type Kind string

const (
	KindReceivable Kind = "receivable"
	KindPayable    Kind = "payable"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == KindReceivable || k == KindPayable
}

// Status is the lifecycle state of a título.
type Status string

const (
	// StatusOpen means the título awaits settlement and is not yet due-lapsed.
	StatusOpen Status = "open"
	// StatusSettled means the título was paid or received ("baixado").
	StatusSettled Status = "settled"
	// StatusOverdue means the due date passed without settlement.
	StatusOverdue Status = "overdue"
	// StatusCanceled removes the título from every view.
	StatusCanceled Status = "canceled"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusSettled, StatusOverdue, StatusCanceled:
		return true
	default:
		return false
	}
}

// Titulo is a receivable or payable obligation. SettlementDate is zero while
// the título has not settled.
type Titulo struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenant_id"`
	Kind           Kind            `json:"kind"`
	Description    string          `json:"description"`
	ContractID     string          `json:"contract_id,omitempty"`
	CostCenterID   string          `json:"cost_center_id,omitempty"`
	BankAccountID  string          `json:"bank_account_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        time.Time       `json:"due_date"`
	SettlementDate time.Time       `json:"settlement_date,omitempty"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// IsSettled reports whether the título has a settlement on record.
func (t Titulo) IsSettled() bool {
	return t.Status == StatusSettled && !t.SettlementDate.IsZero()
}

// ListFilter narrows List queries. Zero fields are ignored.
type ListFilter struct {
	Kind     Kind
	Status   Status
	DueFrom  time.Time
	DueUntil time.Time
}

// Repository persists títulos.
type Repository interface {
	Create(ctx context.Context, titulo *Titulo) error
	Update(ctx context.Context, titulo *Titulo) error
	GetByID(ctx context.Context, tenantID, id string) (*Titulo, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]Titulo, error)
	// ListOpenDueBefore returns open títulos whose due date is strictly
	// before the cutoff, for the overdue sweep.
	ListOpenDueBefore(ctx context.Context, tenantID string, cutoff time.Time) ([]Titulo, error)
	MarkOverdue(ctx context.Context, tenantID string, ids []string, at time.Time) error
}
