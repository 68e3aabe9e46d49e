package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	cashflow "financeiro-cloud/internal/cashflow/domain"
)

// TituloMovementReader feeds the cash-flow engine from the titulos table.
// Dates are read back as text so the engine's date normalizer sees them the
// way the source stored them. Canceled títulos never leave the query.
type TituloMovementReader struct {
	db *sql.DB
}

// NewTituloMovementReader constructs a reader.
func NewTituloMovementReader(db *sql.DB) *TituloMovementReader {
	return &TituloMovementReader{db: db}
}

// ListReceivables returns receivable rows for a tenant.
func (r *TituloMovementReader) ListReceivables(ctx context.Context, tenantID string) ([]cashflow.SourceRow, error) {
	return r.list(ctx, tenantID, "receivable")
}

// ListPayables returns payable rows for a tenant.
func (r *TituloMovementReader) ListPayables(ctx context.Context, tenantID string) ([]cashflow.SourceRow, error) {
	return r.list(ctx, tenantID, "payable")
}

func (r *TituloMovementReader) list(ctx context.Context, tenantID, kind string) ([]cashflow.SourceRow, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("titulo movement reader: nil db")
	}
	if tenantID == "" {
		return nil, errors.New("titulo movement reader: empty tenant id")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT amount, due_date::text, COALESCE(settlement_date::text, ''), status,
	COALESCE(bank_account_id, '')
FROM titulos
WHERE tenant_id = $1 AND kind = $2 AND status <> 'canceled'
ORDER BY due_date, id`, tenantID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []cashflow.SourceRow
	for rows.Next() {
		var row cashflow.SourceRow
		var amount string
		var status string
		if err := rows.Scan(&amount, &row.DueDate, &row.SettlementDate, &status, &row.BankAccountID); err != nil {
			return nil, err
		}
		row.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, err
		}
		row.Status, err = movementStatus(status)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// movementStatus maps título statuses onto engine statuses.
func movementStatus(status string) (cashflow.Status, error) {
	switch status {
	case "open":
		return cashflow.StatusPending, nil
	case "settled":
		return cashflow.StatusRealized, nil
	case "overdue":
		return cashflow.StatusOverdue, nil
	default:
		return "", fmt.Errorf("titulo movement reader: unmapped status %q", status)
	}
}
