package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetDispatchNoteQueryIsNotConstructed = errors.New(
	"GetDispatchNoteQuery must be created via NewGetDispatchNoteQuery constructor",
)

type GetDispatchNoteQuery struct {
	noteID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDispatchNoteQuery(noteID kernel.UUID) (GetDispatchNoteQuery, error) {
	if err := noteID.Validate(); err != nil {
		return GetDispatchNoteQuery{}, err
	}
	return GetDispatchNoteQuery{noteID: noteID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDispatchNoteQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchNoteQueryIsNotConstructed)
}

func (q GetDispatchNoteQuery) NoteID() kernel.UUID {
	return q.noteID
}

type DispatchEntryView struct {
	LineItemID    kernel.UUID
	CatalogItemID kernel.UUID
	Quantity      int
}

// GetDispatchNoteQueryResponse is a flat read model of a note.
type GetDispatchNoteQueryResponse struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	Number       string
	Status       string
	DispatchDate *time.Time
	DeliveryDate *time.Time
	ReversedAt   *time.Time
	CreatedAt    time.Time
	Entries      []DispatchEntryView
}
