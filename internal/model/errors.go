package model

import "errors"

// Domain errors. Services return these (usually wrapped with %w and context);
// handlers map them to HTTP statuses with errors.Is. Every failing call leaves
// state untouched — there is no partial application anywhere in the core.
var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidAdjustment = errors.New("adjustment out of batch bounds")
	ErrShiftNotOpen      = errors.New("shift is not open")
	ErrShiftClosed       = errors.New("shift is closed")
	ErrAlreadyClosing    = errors.New("shift close already in progress")
	ErrNotFound          = errors.New("not found")
)
