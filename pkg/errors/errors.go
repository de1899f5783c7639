package errors

import (
	"fmt"

	"github.com/alpiedelaletra/storefront/internal/domain"
)

// ErrNotFound is returned when a catalog entry or cart cannot be found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrInvalidInput is returned when a request carries data the store refuses to hold
type ErrInvalidInput struct {
	Field   string
	Message string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ErrInvalidOption is returned when a selected option is not offered by the product
type ErrInvalidOption struct {
	Field   string
	Value   string
	Product string
}

func (e *ErrInvalidOption) Error() string {
	return fmt.Sprintf("%s %q is not available for %s", e.Field, e.Value, e.Product)
}

// ErrInvalidStateTransition is returned when a checkout moves to a state it cannot reach
type ErrInvalidStateTransition struct {
	From domain.HandoffState
	To   domain.HandoffState
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrEmptyCart is returned when checkout is attempted without items
type ErrEmptyCart struct{}

func (e *ErrEmptyCart) Error() string {
	return "cart is empty"
}

// ErrHandoffFailed is returned when the messaging link could not be opened
type ErrHandoffFailed struct {
	Link  string
	Cause error
}

func (e *ErrHandoffFailed) Error() string {
	return fmt.Sprintf("failed to open hand-off link: %v", e.Cause)
}

func (e *ErrHandoffFailed) Unwrap() error {
	return e.Cause
}

// ErrTotalMismatch is returned when a cart total disagrees with its rendered subtotals
type ErrTotalMismatch struct {
	Total    string
	Computed string
}

func (e *ErrTotalMismatch) Error() string {
	return fmt.Sprintf("total %s does not match sum of subtotals %s", e.Total, e.Computed)
}
