package accounts

import "errors"

var (
	ErrNotFound    = errors.New("accounts: account not found")
	ErrEmptyName   = errors.New("accounts: empty account name")
	ErrEmptyTenant = errors.New("accounts: empty tenant id")
	ErrNilAccount  = errors.New("accounts: nil account")
)
