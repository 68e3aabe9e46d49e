package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	contracts "financeiro-cloud/internal/contracts/domain"
)

// ContractRepository persists contracts in postgres.
type ContractRepository struct {
	db *sql.DB
}

// NewContractRepository constructs a repository.
func NewContractRepository(db *sql.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

const contractColumns = `id, tenant_id, number, counterparty, counterparty_cnpj, side,
	total_amount, start_date, end_date, readjustment_index, cost_center_id,
	bank_account_id, active, created_at, updated_at`

// Create inserts a contract.
func (r *ContractRepository) Create(ctx context.Context, contract *contracts.Contract) error {
	if r == nil || r.db == nil {
		return errors.New("contract repo: nil db")
	}
	if contract == nil {
		return contracts.ErrNilContract
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO contracts (
	id, tenant_id, number, counterparty, counterparty_cnpj, side,
	total_amount, start_date, end_date, readjustment_index, cost_center_id,
	bank_account_id, active, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		contract.ID, contract.TenantID, contract.Number, contract.Counterparty,
		nullString(contract.CounterpartyCNPJ), contract.Side,
		contract.TotalAmount.String(), contract.StartDate, nullTime(contract.EndDate),
		nullString(contract.ReadjustmentIndex), nullString(contract.CostCenterID),
		nullString(contract.BankAccountID), contract.Active, contract.CreatedAt, contract.UpdatedAt)
	return err
}

// Update overwrites a contract.
func (r *ContractRepository) Update(ctx context.Context, contract *contracts.Contract) error {
	if r == nil || r.db == nil {
		return errors.New("contract repo: nil db")
	}
	if contract == nil {
		return contracts.ErrNilContract
	}
	result, err := r.db.ExecContext(ctx, `
UPDATE contracts
SET number = $1, counterparty = $2, counterparty_cnpj = $3, side = $4,
	total_amount = $5, start_date = $6, end_date = $7, readjustment_index = $8,
	cost_center_id = $9, bank_account_id = $10, updated_at = $11
WHERE tenant_id = $12 AND id = $13`,
		contract.Number, contract.Counterparty, nullString(contract.CounterpartyCNPJ), contract.Side,
		contract.TotalAmount.String(), contract.StartDate, nullTime(contract.EndDate),
		nullString(contract.ReadjustmentIndex), nullString(contract.CostCenterID),
		nullString(contract.BankAccountID), contract.UpdatedAt,
		contract.TenantID, contract.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return contracts.ErrNotFound
	}
	return nil
}

// GetByID loads one contract; nil when absent.
func (r *ContractRepository) GetByID(ctx context.Context, tenantID, id string) (*contracts.Contract, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("contract repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+contractColumns+`
FROM contracts
WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return scanContract(row)
}

// List returns the tenant's contracts ordered by number.
func (r *ContractRepository) List(ctx context.Context, tenantID string, activeOnly bool) ([]contracts.Contract, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("contract repo: nil db")
	}
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE tenant_id = $1`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY number`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []contracts.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *contract)
	}
	return list, rows.Err()
}

// Deactivate flips the active flag.
func (r *ContractRepository) Deactivate(ctx context.Context, tenantID, id string, at time.Time) error {
	if r == nil || r.db == nil {
		return errors.New("contract repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `
UPDATE contracts SET active = false, updated_at = $1
WHERE tenant_id = $2 AND id = $3`, at, tenantID, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return contracts.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*contracts.Contract, error) {
	var contract contracts.Contract
	var amount string
	var cnpj, index, costCenter, bankAccount sql.NullString
	var endDate sql.NullTime
	err := row.Scan(
		&contract.ID, &contract.TenantID, &contract.Number, &contract.Counterparty, &cnpj, &contract.Side,
		&amount, &contract.StartDate, &endDate, &index, &costCenter,
		&bankAccount, &contract.Active, &contract.CreatedAt, &contract.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	contract.TotalAmount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	contract.CounterpartyCNPJ = cnpj.String
	contract.ReadjustmentIndex = index.String
	contract.CostCenterID = costCenter.String
	contract.BankAccountID = bankAccount.String
	if endDate.Valid {
		contract.EndDate = endDate.Time
	}
	return &contract, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullTime(value time.Time) sql.NullTime {
	return sql.NullTime{Time: value, Valid: !value.IsZero()}
}
