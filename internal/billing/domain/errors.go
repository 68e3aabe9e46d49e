package billing

import "errors"

var (
	ErrNotFound         = errors.New("billing: titulo not found")
	ErrNilTitulo        = errors.New("billing: nil titulo")
	ErrEmptyTenant      = errors.New("billing: empty tenant id")
	ErrInvalidKind      = errors.New("billing: invalid kind")
	ErrInvalidStatus    = errors.New("billing: invalid status")
	ErrInvalidAmount    = errors.New("billing: amount must be positive")
	ErrMissingDueDate   = errors.New("billing: due date required")
	ErrAlreadySettled   = errors.New("billing: titulo already settled")
	ErrCanceled         = errors.New("billing: titulo is canceled")
)
