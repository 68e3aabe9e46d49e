package auth

import (
	"context"
	"database/sql"
	"errors"
)

// AccountTenantChecker validates bank account tenant ownership.
type AccountTenantChecker interface {
	EnsureAccountTenant(ctx context.Context, tenantID, accountID string) error
}

// AccountChecker checks account ownership against the registry table.
type AccountChecker struct {
	db *sql.DB
}

// NewAccountChecker constructs an AccountChecker.
func NewAccountChecker(db *sql.DB) *AccountChecker {
	if db == nil {
		return nil
	}
	return &AccountChecker{db: db}
}

// EnsureAccountTenant verifies the account belongs to the tenant.
func (c *AccountChecker) EnsureAccountTenant(ctx context.Context, tenantID, accountID string) error {
	if c == nil || c.db == nil {
		return nil
	}
	if tenantID == "" || accountID == "" {
		return nil
	}
	var owner string
	err := c.db.QueryRowContext(ctx, `SELECT tenant_id FROM bank_accounts WHERE id = $1`, accountID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if owner != tenantID {
		return ErrTenantMismatch
	}
	return nil
}
