package errs

import (
	"errors"
	"fmt"
)

var (
	ErrQuantityExceeded  = errors.New("quantity exceeds ordered quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyFulfilled  = errors.New("order is already fulfilled")
)

// QuantityScope tells which bookkeeping bound a dispatch request violated.
type QuantityScope string

const (
	ScopeLine  QuantityScope = "line"
	ScopeOrder QuantityScope = "order"
)

// QuantityExceededError is returned when a dispatch would push the shipped
// quantity of a line (or of the whole order) past what was ordered.
type QuantityExceededError struct {
	Scope      QuantityScope
	Ref        string
	Ordered    int
	Dispatched int
	Requested  int
}

func NewQuantityExceededError(scope QuantityScope, ref string, ordered, dispatched, requested int) *QuantityExceededError {
	return &QuantityExceededError{
		Scope:      scope,
		Ref:        ref,
		Ordered:    ordered,
		Dispatched: dispatched,
		Requested:  requested,
	}
}

func (e *QuantityExceededError) Error() string {
	return fmt.Sprintf("%s: %s %s ordered %d, dispatched %d, requested %d",
		ErrQuantityExceeded, e.Scope, e.Ref, e.Ordered, e.Dispatched, e.Requested)
}

func (e *QuantityExceededError) Unwrap() error {
	return ErrQuantityExceeded
}

func (e *QuantityExceededError) Is(target error) bool {
	return target == ErrValidation
}

// InsufficientStockError is returned when available inventory of a catalog
// item is below the requested quantity.
type InsufficientStockError struct {
	CatalogItemID string
	Available     int
	Requested     int
}

func NewInsufficientStockError(catalogItemID string, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{CatalogItemID: catalogItemID, Available: available, Requested: requested}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: item %s available %d, requested %d",
		ErrInsufficientStock, e.CatalogItemID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// InvalidTransitionError is returned when a status change is not in the
// allowed transition table.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String()}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AlreadyFulfilledError is returned by auto-dispatch when nothing remains to ship.
type AlreadyFulfilledError struct {
	OrderID string
}

func NewAlreadyFulfilledError(orderID string) *AlreadyFulfilledError {
	return &AlreadyFulfilledError{OrderID: orderID}
}

func (e *AlreadyFulfilledError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyFulfilled, e.OrderID)
}

func (e *AlreadyFulfilledError) Unwrap() error {
	return ErrAlreadyFulfilled
}
