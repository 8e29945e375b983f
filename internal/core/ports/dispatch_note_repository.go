package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
)

// DispatchNoteRepository persists dispatch notes with their entries.
type DispatchNoteRepository interface {
	// Add persists a new note and its entries. Numbers are unique.
	Add(ctx context.Context, note *dispatch.Note) error

	// Update writes status and dates. Entries are never rewritten.
	Update(ctx context.Context, note *dispatch.Note) error

	Get(ctx context.Context, id kernel.UUID) (*dispatch.Note, error)

	// GetForUpdate locks the note row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*dispatch.Note, error)

	// ListByOrder returns every note of an order, reversed ones included,
	// oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*dispatch.Note, error)
}
