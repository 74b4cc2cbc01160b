package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound          = errors.New("event not found")
	ErrTicketNotFound         = errors.New("ticket not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrEventInactive          = errors.New("event is not active")
	ErrInsufficientInventory  = errors.New("insufficient tickets available")
	ErrForbidden              = errors.New("not allowed to access this ticket")
	ErrTicketAlreadyCancelled = errors.New("ticket is already cancelled")
	ErrTicketAlreadyUsed      = errors.New("ticket has already been used")
	ErrTicketCancelled        = errors.New("ticket is cancelled")
	ErrInvalidTicketState     = errors.New("ticket is in an invalid state")
	ErrInvalidQuantity        = errors.New("invalid ticket quantity")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrDuplicateTicketCode    = errors.New("duplicate ticket code")
)

type InsufficientInventoryError struct {
	Requested int
	Remaining int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("only %d tickets available, requested %d", e.Remaining, e.Requested)
}

func (e *InsufficientInventoryError) Is(target error) bool {
	return target == ErrInsufficientInventory
}

// IsNotFound matches any missing-entity error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrTicketNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}
