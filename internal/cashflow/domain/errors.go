package cashflow

import "errors"

var (
	// ErrUnparseableDate is returned when a raw date string cannot be
	// reduced to a calendar date.
	ErrUnparseableDate = errors.New("cashflow: unparseable date")
	// ErrInvalidRange is returned when the period end precedes the start.
	ErrInvalidRange = errors.New("cashflow: period end before period start")
	// ErrInvalidDirection is returned for an unknown movement direction.
	ErrInvalidDirection = errors.New("cashflow: invalid movement direction")
	// ErrInvalidStatus is returned for an unknown movement status.
	ErrInvalidStatus = errors.New("cashflow: invalid movement status")
	// ErrNonPositiveAmount is returned when a movement amount is zero or negative.
	ErrNonPositiveAmount = errors.New("cashflow: movement amount must be positive")
	// ErrMissingDueDate is returned when a source row carries no due date.
	ErrMissingDueDate = errors.New("cashflow: missing due date")
)
