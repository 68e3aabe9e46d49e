package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	accounts "financeiro-cloud/internal/accounts/domain"

	"github.com/shopspring/decimal"
)

// AccountRepository persists bank accounts.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository constructs a repository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts an account.
func (r *AccountRepository) Create(ctx context.Context, account *accounts.BankAccount) error {
	if r == nil || r.db == nil {
		return errors.New("account repo: nil db")
	}
	if account == nil {
		return accounts.ErrNilAccount
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO bank_accounts (
	id, tenant_id, name, bank_code, branch, number,
	initial_balance, initial_balance_date, active, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		account.ID, account.TenantID, account.Name, account.BankCode, account.Branch, account.Number,
		account.InitialBalance.String(), account.InitialBalanceDate, account.Active, account.CreatedAt, account.UpdatedAt)
	return err
}

// Update overwrites mutable fields.
func (r *AccountRepository) Update(ctx context.Context, account *accounts.BankAccount) error {
	if r == nil || r.db == nil {
		return errors.New("account repo: nil db")
	}
	if account == nil {
		return accounts.ErrNilAccount
	}
	result, err := r.db.ExecContext(ctx, `
UPDATE bank_accounts
SET name = $1, bank_code = $2, branch = $3, number = $4,
	initial_balance = $5, initial_balance_date = $6, updated_at = $7
WHERE tenant_id = $8 AND id = $9`,
		account.Name, account.BankCode, account.Branch, account.Number,
		account.InitialBalance.String(), account.InitialBalanceDate, account.UpdatedAt,
		account.TenantID, account.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

// GetByID loads one account; nil when absent.
func (r *AccountRepository) GetByID(ctx context.Context, tenantID, id string) (*accounts.BankAccount, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("account repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, tenant_id, name, bank_code, branch, number,
	initial_balance, initial_balance_date, active, created_at, updated_at
FROM bank_accounts
WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return scanAccount(row)
}

// List returns the tenant's accounts ordered by name.
func (r *AccountRepository) List(ctx context.Context, tenantID string, activeOnly bool) ([]accounts.BankAccount, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("account repo: nil db")
	}
	query := `
SELECT id, tenant_id, name, bank_code, branch, number,
	initial_balance, initial_balance_date, active, created_at, updated_at
FROM bank_accounts
WHERE tenant_id = $1`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []accounts.BankAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *account)
	}
	return list, rows.Err()
}

// Deactivate flips the active flag.
func (r *AccountRepository) Deactivate(ctx context.Context, tenantID, id string, at time.Time) error {
	if r == nil || r.db == nil {
		return errors.New("account repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `
UPDATE bank_accounts SET active = false, updated_at = $1
WHERE tenant_id = $2 AND id = $3`, at, tenantID, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*accounts.BankAccount, error) {
	var account accounts.BankAccount
	var balance string
	err := row.Scan(
		&account.ID, &account.TenantID, &account.Name, &account.BankCode, &account.Branch, &account.Number,
		&balance, &account.InitialBalanceDate, &account.Active, &account.CreatedAt, &account.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	account.InitialBalance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
