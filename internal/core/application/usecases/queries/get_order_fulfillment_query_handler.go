package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderLinesSQL = `
	SELECT
		li.id,
		li.catalog_item_id,
		li.ordered_quantity,
		li.unit_price,
		COALESCE(SUM(e.quantity) FILTER (WHERE n.status <> ?), 0)
	FROM order_line_items li
	LEFT JOIN dispatch_entries e ON e.line_item_id = li.id
	LEFT JOIN dispatch_notes n ON n.id = e.note_id
	WHERE li.order_id = ?
	GROUP BY li.id, li.catalog_item_id, li.ordered_quantity, li.unit_price, li.position
	ORDER BY li.position`

type GetOrderFulfillmentQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderFulfillmentQueryHandler(db *gorm.DB) GetOrderFulfillmentQueryHandler {
	return GetOrderFulfillmentQueryHandler{db: db}
}

// Handle fails with errs.ErrObjectNotFound for an unknown order.
func (h GetOrderFulfillmentQueryHandler) Handle(
	ctx context.Context,
	query GetOrderFulfillmentQuery,
) (GetOrderFulfillmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	var (
		number string
		status int
	)
	err := h.db.WithContext(ctx).
		Raw(`SELECT number, status FROM orders WHERE id = ?`, query.OrderID().Bytes()).
		Row().
		Scan(&number, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderFulfillmentQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).
		Raw(orderLinesSQL, int(dispatch.Returned), query.OrderID().Bytes()).
		Rows()
	if err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}
	defer rows.Close()

	var (
		lines        = make([]LineFulfillment, 0)
		ordered      int
		dispatched   int
		orderedValue = decimal.Zero
	)
	for rows.Next() {
		var (
			lineID, catalogID uuid.UUID
			qty, shipped      int
			price             decimal.Decimal
		)
		if err = rows.Scan(&lineID, &catalogID, &qty, &price, &shipped); err != nil {
			return GetOrderFulfillmentQueryResponse{}, err
		}

		lineItemID, lineErr := kernel.UUIDFromBytes(lineID[:])
		catalogItemID, catalogErr := kernel.UUIDFromBytes(catalogID[:])
		if err = errors.Join(lineErr, catalogErr); err != nil {
			return GetOrderFulfillmentQueryResponse{}, err
		}

		lines = append(lines, LineFulfillment{
			LineItemID:         lineItemID,
			CatalogItemID:      catalogItemID,
			OrderedQuantity:    qty,
			DispatchedQuantity: shipped,
			RemainingQuantity:  max(qty-shipped, 0),
		})
		ordered += qty
		dispatched += shipped
		orderedValue = orderedValue.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	if err = rows.Err(); err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	return GetOrderFulfillmentQueryResponse{
		Summary: NewOrderSummary(
			query.OrderID(), number, order.Status(status).String(), ordered, orderedValue, dispatched,
		),
		Lines: lines,
	}, nil
}
