package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetDispatchNoteQueryHandler struct {
	db *gorm.DB
}

func NewGetDispatchNoteQueryHandler(db *gorm.DB) GetDispatchNoteQueryHandler {
	return GetDispatchNoteQueryHandler{db: db}
}

func (h GetDispatchNoteQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchNoteQuery,
) (GetDispatchNoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDispatchNoteQueryResponse{}, err
	}

	var (
		orderID                             uuid.UUID
		number                              string
		status                              int
		dispatchDate, deliveryDate, reverse sql.NullTime
		createdAt                           time.Time
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT order_id, number, status, dispatch_date, delivery_date, reversed_at, created_at
		FROM dispatch_notes
		WHERE id = ?`, query.NoteID().Bytes()).Row()
	err := row.Scan(&orderID, &number, &status, &dispatchDate, &deliveryDate, &reverse, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDispatchNoteQueryResponse{}, errs.NewObjectNotFoundError("dispatchNote", query.NoteID().String())
	}
	if err != nil {
		return GetDispatchNoteQueryResponse{}, err
	}

	owner, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return GetDispatchNoteQueryResponse{}, err
	}

	entries, err := h.entries(ctx, query.NoteID())
	if err != nil {
		return GetDispatchNoteQueryResponse{}, err
	}

	return GetDispatchNoteQueryResponse{
		ID:           query.NoteID(),
		OrderID:      owner,
		Number:       number,
		Status:       dispatch.Status(status).String(),
		DispatchDate: nullTime(dispatchDate),
		DeliveryDate: nullTime(deliveryDate),
		ReversedAt:   nullTime(reverse),
		CreatedAt:    createdAt,
		Entries:      entries,
	}, nil
}

func (h GetDispatchNoteQueryHandler) entries(ctx context.Context, noteID kernel.UUID) ([]DispatchEntryView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT line_item_id, catalog_item_id, quantity
		FROM dispatch_entries
		WHERE note_id = ?
		ORDER BY position`, noteID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]DispatchEntryView, 0)
	for rows.Next() {
		var (
			lineID, catalogID uuid.UUID
			quantity          int
		)
		if err = rows.Scan(&lineID, &catalogID, &quantity); err != nil {
			return nil, err
		}
		lineItemID, lineErr := kernel.UUIDFromBytes(lineID[:])
		catalogItemID, catalogErr := kernel.UUIDFromBytes(catalogID[:])
		if err = errors.Join(lineErr, catalogErr); err != nil {
			return nil, err
		}
		entries = append(entries, DispatchEntryView{
			LineItemID:    lineItemID,
			CatalogItemID: catalogItemID,
			Quantity:      quantity,
		})
	}

	return entries, rows.Err()
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
