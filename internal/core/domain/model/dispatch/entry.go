package dispatch

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Entry is one shipped line of a dispatch note. It is written once, when the
// note is created, and never changed afterwards.
type Entry struct {
	lineItemID    kernel.UUID
	catalogItemID kernel.UUID
	quantity      int
}

func NewEntry(lineItemID, catalogItemID kernel.UUID, quantity int) (Entry, error) {
	if err := errors.Join(lineItemID.Validate(), catalogItemID.Validate()); err != nil {
		return Entry{}, err
	}
	if quantity <= 0 {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause(
			"entry quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return Entry{lineItemID: lineItemID, catalogItemID: catalogItemID, quantity: quantity}, nil
}

func (e Entry) LineItemID() kernel.UUID {
	return e.lineItemID
}

func (e Entry) CatalogItemID() kernel.UUID {
	return e.catalogItemID
}

func (e Entry) Quantity() int {
	return e.quantity
}
