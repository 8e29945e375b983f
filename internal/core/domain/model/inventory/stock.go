package inventory

import (
	"errors"
	"fmt"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrStockIsNotConstructed = errors.New("Stock must be created via NewStock constructor")

// MaxQuantity is the largest figure the stocks table can hold (int4).
const MaxQuantity = math.MaxInt32

// Stock is the shared available quantity of one catalog item. It is the only
// inventory figure the ledger touches: dispatches withdraw from it, returns
// put units back.
//
// Invariant: available >= 0.
type Stock struct {
	catalogItemID kernel.UUID
	available     int

	guard guard.ConstructorGuard
}

// NewStock creates a stock record. available must not be negative.
func NewStock(catalogItemID kernel.UUID, available int) (*Stock, error) {
	stock := &Stock{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		stock.setCatalogItemID(catalogItemID),
		stock.setAvailable(available),
	); err != nil {
		return nil, err
	}

	return stock, nil
}

// RestoreStock rebuilds a stock record read from persistence.
func RestoreStock(catalogItemID kernel.UUID, available int) (*Stock, error) {
	return NewStock(catalogItemID, available)
}

func (s *Stock) Validate() error {
	if s == nil {
		return ErrStockIsNotConstructed
	}
	return s.guard.Validate(ErrStockIsNotConstructed)
}

func (s *Stock) CatalogItemID() kernel.UUID {
	return s.catalogItemID
}

func (s *Stock) Available() int {
	return s.available
}

// EnsureAvailable fails with InsufficientStockError when fewer than quantity
// units are on hand. It never mutates the record.
func (s *Stock) EnsureAvailable(quantity int) error {
	if s.available < quantity {
		return errs.NewInsufficientStockError(s.catalogItemID.String(), s.available, quantity)
	}
	return nil
}

// Withdraw removes quantity units for a shipment.
func (s *Stock) Withdraw(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if err := s.EnsureAvailable(quantity); err != nil {
		return err
	}

	s.available -= quantity
	return nil
}

// Restock puts quantity units back (returns, receipts).
func (s *Stock) Restock(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if quantity > MaxQuantity-s.available {
		return errs.NewValueIsOutOfRangeError("restocked quantity", quantity, 1, MaxQuantity-s.available)
	}

	s.available += quantity
	return nil
}

func (s *Stock) setCatalogItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.catalogItemID = id
	return nil
}

func (s *Stock) setAvailable(available int) error {
	if available < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"available quantity is invalid",
			fmt.Errorf("%d is negative", available),
		)
	}
	if available > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("available quantity", available, 0, MaxQuantity)
	}
	s.available = available
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return nil
}
