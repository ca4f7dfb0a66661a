package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrOutOfStock is returned when an increment would drive stock below zero.
	ErrOutOfStock = errors.New("out of stock")
	// ErrMinimumQuantity is returned when decrementing a quantity-1 cart line.
	ErrMinimumQuantity = errors.New("minimum quantity is 1")
	// ErrConcurrentModification indicates the storage layer detected a
	// conflicting concurrent write; the operation may be retried.
	ErrConcurrentModification = errors.New("concurrent modification")
	// ErrInvalidTransition is returned for a disallowed status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrEmptyCart is returned when placing an order over an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrForbidden indicates the caller may not act on the entity.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError marks rejected user input so transports can report it as a
// client error rather than a server fault.
type ValidationError struct {
	msg string
}

// Invalid wraps a validation message in a ValidationError.
func Invalid(msg string) error {
	return ValidationError{msg: msg}
}

func (e ValidationError) Error() string {
	return e.msg
}
