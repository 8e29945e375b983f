package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one product line of an order. Its ordered quantity is tracked
// independently for fulfillment.
type LineItem struct {
	id              kernel.UUID
	catalogItemID   kernel.UUID
	orderedQuantity int
	unitPrice       decimal.Decimal

	guard guard.ConstructorGuard
}

// NewLineItem validates and builds a line. orderedQuantity must be positive,
// unitPrice must not be negative.
func NewLineItem(
	id kernel.UUID,
	catalogItemID kernel.UUID,
	orderedQuantity int,
	unitPrice decimal.Decimal,
) (*LineItem, error) {
	item := &LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setCatalogItemID(catalogItemID),
		item.setOrderedQuantity(orderedQuantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (l *LineItem) Validate() error {
	if l == nil {
		return ErrLineItemIsNotConstructed
	}
	return l.guard.Validate(ErrLineItemIsNotConstructed)
}

func (l *LineItem) ID() kernel.UUID {
	return l.id
}

func (l *LineItem) CatalogItemID() kernel.UUID {
	return l.catalogItemID
}

func (l *LineItem) OrderedQuantity() int {
	return l.orderedQuantity
}

func (l *LineItem) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

// OrderedValue is unit price times ordered quantity.
func (l *LineItem) OrderedValue() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.orderedQuantity)))
}

func (l *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *LineItem) setCatalogItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.catalogItemID = id
	return nil
}

func (l *LineItem) setOrderedQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"ordered quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	l.orderedQuantity = quantity
	return nil
}

func (l *LineItem) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid",
			fmt.Errorf("%s is negative", price.String()),
		)
	}
	l.unitPrice = price
	return nil
}
