package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	cashflow "financeiro-cloud/internal/cashflow/domain"
)

// SnapshotReader loads bank account snapshots straight from the accounts
// table. Only active accounts participate in cash-flow computations.
type SnapshotReader struct {
	db *sql.DB
}

// NewSnapshotReader constructs a reader.
func NewSnapshotReader(db *sql.DB) *SnapshotReader {
	return &SnapshotReader{db: db}
}

// ListSnapshots returns the tenant's active accounts as engine snapshots.
func (r *SnapshotReader) ListSnapshots(ctx context.Context, tenantID string) ([]cashflow.BankAccountSnapshot, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("snapshot reader: nil db")
	}
	if tenantID == "" {
		return nil, errors.New("snapshot reader: empty tenant id")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, initial_balance, initial_balance_date
FROM bank_accounts
WHERE tenant_id = $1 AND active
ORDER BY id`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []cashflow.BankAccountSnapshot
	for rows.Next() {
		var snapshot cashflow.BankAccountSnapshot
		var balance string
		if err := rows.Scan(&snapshot.ID, &balance, &snapshot.EffectiveFrom); err != nil {
			return nil, err
		}
		snapshot.InitialBalance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, err
		}
		snapshot.EffectiveFrom = cashflow.DayStart(snapshot.EffectiveFrom)
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}
