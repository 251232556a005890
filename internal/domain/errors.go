package domain

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrConflict          = errors.New("concurrent transition conflict")
	ErrOrderNotTradable  = errors.New("order is not in a tradable status")
	ErrSettlementFailed  = errors.New("settlement transfer failed")
	ErrExternalService   = errors.New("execution service error")
	ErrNoBalance         = errors.New("no balance to recover")

	// ErrTransactionNotFound is returned by the executor when a transaction
	// id is not known to the indexer yet. Refresh treats it as QUEUED, not
	// as a failure.
	ErrTransactionNotFound = errors.New("transaction not found")
)
