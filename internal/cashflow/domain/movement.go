package cashflow

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells which way money moves relative to the company.
type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == DirectionInflow || d == DirectionOutflow
}

// Status is the settlement state of a movement.
type Status string

const (
	// StatusRealized means the título has settled (paid or received).
	StatusRealized Status = "realized"
	// StatusPending means the título is open and not yet lapsed.
	StatusPending Status = "pending"
	// StatusOverdue means the due date passed without settlement.
	// Overdue movements contribute zero to every balance view.
	StatusOverdue Status = "overdue"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	switch s {
	case StatusRealized, StatusPending, StatusOverdue:
		return true
	default:
		return false
	}
}

// MovementRecord is the uniform movement shape the ledger operates on.
// EffectiveDate is the settlement date for realized movements and the due
// date otherwise, always truncated to midnight UTC. BankAccountID is empty
// when the source row is not attributed to an account.
type MovementRecord struct {
	Amount        decimal.Decimal
	Direction     Direction
	Status        Status
	EffectiveDate time.Time
	BankAccountID string
}

// SourceRow is a raw receivable or payable row as the data layer hands it
// over. Dates arrive as strings in whatever shape the source stored them;
// SettlementDate is empty while the row has not settled.
type SourceRow struct {
	Amount         decimal.Decimal
	DueDate        string
	SettlementDate string
	Status         Status
	BankAccountID  string
}

// Classify maps a source row into a MovementRecord. The direction comes from
// the row's origin (receivables flow in, payables flow out) and is never
// inferred from the row itself. The effective date is the normalized
// settlement date when the row is realized and one is present, otherwise the
// normalized due date. Status passes through unchanged. Pure; no side
// effects.
func Classify(row SourceRow, direction Direction) (MovementRecord, error) {
	if !direction.IsValid() {
		return MovementRecord{}, ErrInvalidDirection
	}
	if !row.Status.IsValid() {
		return MovementRecord{}, ErrInvalidStatus
	}
	if !row.Amount.IsPositive() {
		return MovementRecord{}, ErrNonPositiveAmount
	}

	var effective time.Time
	if row.Status == StatusRealized && row.SettlementDate != "" {
		parsed, err := NormalizeDate(row.SettlementDate)
		if err != nil {
			return MovementRecord{}, err
		}
		effective = parsed
	} else {
		if row.DueDate == "" {
			return MovementRecord{}, ErrMissingDueDate
		}
		parsed, err := NormalizeDate(row.DueDate)
		if err != nil {
			return MovementRecord{}, err
		}
		effective = parsed
	}

	return MovementRecord{
		Amount:        row.Amount,
		Direction:     direction,
		Status:        row.Status,
		EffectiveDate: effective,
		BankAccountID: row.BankAccountID,
	}, nil
}

// ClassifyAll maps a batch of rows sharing one direction.
func ClassifyAll(rows []SourceRow, direction Direction) ([]MovementRecord, error) {
	movements := make([]MovementRecord, 0, len(rows))
	for _, row := range rows {
		movement, err := Classify(row, direction)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, nil
}
