package contracts

import "errors"

var (
	ErrNotFound        = errors.New("contracts: contract not found")
	ErrNilContract     = errors.New("contracts: nil contract")
	ErrEmptyTenant     = errors.New("contracts: empty tenant id")
	ErrEmptyNumber     = errors.New("contracts: empty contract number")
	ErrInvalidSide     = errors.New("contracts: invalid side")
	ErrInvalidAmount   = errors.New("contracts: amount must be positive")
	ErrInvalidValidity = errors.New("contracts: end date before start date")
	ErrInactive        = errors.New("contracts: contract inactive")
	ErrBadInstallments = errors.New("contracts: installment count must be positive")
)
