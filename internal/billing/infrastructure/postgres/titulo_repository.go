package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	billing "financeiro-cloud/internal/billing/domain"

	"github.com/shopspring/decimal"
)

// TituloRepository persists títulos.
type TituloRepository struct {
	db *sql.DB
}

// NewTituloRepository constructs a repository.
func NewTituloRepository(db *sql.DB) *TituloRepository {
	return &TituloRepository{db: db}
}

const tituloColumns = `id, tenant_id, kind, description, contract_id, cost_center_id,
	bank_account_id, amount, due_date, settlement_date, status, created_at, updated_at`

// Create inserts a título.
func (r *TituloRepository) Create(ctx context.Context, titulo *billing.Titulo) error {
	if r == nil || r.db == nil {
		return errors.New("titulo repo: nil db")
	}
	if titulo == nil {
		return billing.ErrNilTitulo
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO titulos (
	id, tenant_id, kind, description, contract_id, cost_center_id,
	bank_account_id, amount, due_date, settlement_date, status, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		titulo.ID, titulo.TenantID, titulo.Kind, titulo.Description,
		nullString(titulo.ContractID), nullString(titulo.CostCenterID), nullString(titulo.BankAccountID),
		titulo.Amount.String(), titulo.DueDate, nullTime(titulo.SettlementDate), titulo.Status,
		titulo.CreatedAt, titulo.UpdatedAt)
	return err
}

// Update overwrites a título.
func (r *TituloRepository) Update(ctx context.Context, titulo *billing.Titulo) error {
	if r == nil || r.db == nil {
		return errors.New("titulo repo: nil db")
	}
	if titulo == nil {
		return billing.ErrNilTitulo
	}
	result, err := r.db.ExecContext(ctx, `
UPDATE titulos
SET description = $1, contract_id = $2, cost_center_id = $3, bank_account_id = $4,
	amount = $5, due_date = $6, settlement_date = $7, status = $8, updated_at = $9
WHERE tenant_id = $10 AND id = $11`,
		titulo.Description, nullString(titulo.ContractID), nullString(titulo.CostCenterID), nullString(titulo.BankAccountID),
		titulo.Amount.String(), titulo.DueDate, nullTime(titulo.SettlementDate), titulo.Status, titulo.UpdatedAt,
		titulo.TenantID, titulo.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return billing.ErrNotFound
	}
	return nil
}

// GetByID loads one título; nil when absent.
func (r *TituloRepository) GetByID(ctx context.Context, tenantID, id string) (*billing.Titulo, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("titulo repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+tituloColumns+`
FROM titulos
WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return scanTitulo(row)
}

// List returns títulos matching the filter, ordered by due date.
func (r *TituloRepository) List(ctx context.Context, tenantID string, filter billing.ListFilter) ([]billing.Titulo, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("titulo repo: nil db")
	}
	query := `SELECT ` + tituloColumns + ` FROM titulos WHERE tenant_id = $1`
	args := []any{tenantID}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		query += ` AND kind = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if !filter.DueFrom.IsZero() {
		args = append(args, filter.DueFrom)
		query += ` AND due_date >= $` + strconv.Itoa(len(args))
	}
	if !filter.DueUntil.IsZero() {
		args = append(args, filter.DueUntil)
		query += ` AND due_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY due_date, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTitulos(rows)
}

// ListOpenDueBefore returns open títulos due strictly before the cutoff.
func (r *TituloRepository) ListOpenDueBefore(ctx context.Context, tenantID string, cutoff time.Time) ([]billing.Titulo, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("titulo repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+tituloColumns+`
FROM titulos
WHERE tenant_id = $1 AND status = $2 AND due_date < $3
ORDER BY due_date, id`, tenantID, billing.StatusOpen, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTitulos(rows)
}

// MarkOverdue transitions the given títulos to overdue.
func (r *TituloRepository) MarkOverdue(ctx context.Context, tenantID string, ids []string, at time.Time) error {
	if r == nil || r.db == nil {
		return errors.New("titulo repo: nil db")
	}
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(ids))
	args := []any{billing.StatusOverdue, at, tenantID, billing.StatusOpen}
	for _, id := range ids {
		args = append(args, id)
		placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE titulos SET status = $1, updated_at = $2
WHERE tenant_id = $3 AND status = $4 AND id IN (`+strings.Join(placeholders, ",")+`)`, args...)
	return err
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullTime(value time.Time) sql.NullTime {
	return sql.NullTime{Time: value, Valid: !value.IsZero()}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTitulo(row rowScanner) (*billing.Titulo, error) {
	var titulo billing.Titulo
	var contractID, costCenterID, bankAccountID sql.NullString
	var settlementDate sql.NullTime
	var amount string
	err := row.Scan(
		&titulo.ID, &titulo.TenantID, &titulo.Kind, &titulo.Description,
		&contractID, &costCenterID, &bankAccountID,
		&amount, &titulo.DueDate, &settlementDate, &titulo.Status,
		&titulo.CreatedAt, &titulo.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	titulo.ContractID = contractID.String
	titulo.CostCenterID = costCenterID.String
	titulo.BankAccountID = bankAccountID.String
	if settlementDate.Valid {
		titulo.SettlementDate = settlementDate.Time
	}
	titulo.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	return &titulo, nil
}

func collectTitulos(rows *sql.Rows) ([]billing.Titulo, error) {
	var list []billing.Titulo
	for rows.Next() {
		titulo, err := scanTitulo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *titulo)
	}
	return list, rows.Err()
}
