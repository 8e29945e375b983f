// Package dispatchrepo persists dispatch notes and their entries.
package dispatchrepo

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DispatchNoteDTO maps dispatch_notes. ReversedAt is set exactly once, by
// the transition into RETURNED.
type DispatchNoteDTO struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	Number       string             `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status       int                `gorm:"type:smallint;not null;index"`
	DispatchDate *time.Time         `gorm:"type:timestamptz"`
	DeliveryDate *time.Time         `gorm:"type:timestamptz"`
	ReversedAt   *time.Time         `gorm:"type:timestamptz"`
	CreatedAt    time.Time          `gorm:"type:timestamptz;not null"`
	Entries      []DispatchEntryDTO `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}

func (DispatchNoteDTO) TableName() string {
	return "dispatch_notes"
}

// DispatchEntryDTO maps dispatch_entries. A line item appears at most once
// per note.
type DispatchEntryDTO struct {
	NoteID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineItemID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position      int       `gorm:"type:int;not null"`
	CatalogItemID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity      int       `gorm:"type:int;not null;check:chk_dispatch_entries_quantity,quantity > 0"`
}

func (DispatchEntryDTO) TableName() string {
	return "dispatch_entries"
}

func fromDomain(note *dispatch.Note) DispatchNoteDTO {
	entries := note.Entries()
	rows := make([]DispatchEntryDTO, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, DispatchEntryDTO{
			NoteID:        note.ID().Bytes(),
			LineItemID:    entry.LineItemID().Bytes(),
			Position:      i,
			CatalogItemID: entry.CatalogItemID().Bytes(),
			Quantity:      entry.Quantity(),
		})
	}

	return DispatchNoteDTO{
		ID:           note.ID().Bytes(),
		OrderID:      note.OrderID().Bytes(),
		Number:       note.Number().String(),
		Status:       int(note.Status()),
		DispatchDate: note.DispatchDate(),
		DeliveryDate: note.DeliveryDate(),
		ReversedAt:   note.ReversedAt(),
		CreatedAt:    note.CreatedAt(),
		Entries:      rows,
	}
}

func toDomain(dto DispatchNoteDTO) (*dispatch.Note, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	orderID, orderErr := kernel.UUIDFromBytes(dto.OrderID[:])
	if err := errors.Join(idErr, orderErr); err != nil {
		return nil, err
	}

	entries := make([]dispatch.Entry, 0, len(dto.Entries))
	for _, row := range dto.Entries {
		lineID, lineErr := kernel.UUIDFromBytes(row.LineItemID[:])
		catalogID, catalogErr := kernel.UUIDFromBytes(row.CatalogItemID[:])
		if err := errors.Join(lineErr, catalogErr); err != nil {
			return nil, err
		}
		entry, err := dispatch.NewEntry(lineID, catalogID, row.Quantity)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return dispatch.RestoreNote(dispatch.RestoreNoteParams{
		ID:           id,
		OrderID:      orderID,
		Number:       dispatch.Number(dto.Number),
		Status:       dispatch.Status(dto.Status),
		DispatchDate: dto.DispatchDate,
		DeliveryDate: dto.DeliveryDate,
		ReversedAt:   dto.ReversedAt,
		CreatedAt:    dto.CreatedAt,
		Entries:      entries,
	})
}
