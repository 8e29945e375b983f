package queries

import (
	"context"
	"database/sql"
	"fmt"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const summarySQL = `
	WITH ordered AS (
		SELECT order_id,
			SUM(ordered_quantity) AS quantity,
			SUM(ordered_quantity * unit_price) AS value
		FROM order_line_items
		GROUP BY order_id
	), shipped AS (
		SELECT n.order_id, SUM(e.quantity) AS quantity
		FROM dispatch_notes n
		JOIN dispatch_entries e ON e.note_id = n.id
		WHERE n.status <> ?
		GROUP BY n.order_id
	)
	SELECT
		o.id,
		o.number,
		o.status,
		COALESCE(od.quantity, 0),
		COALESCE(od.value, 0),
		COALESCE(s.quantity, 0)
	FROM orders o
	LEFT JOIN ordered od ON od.order_id = o.id
	LEFT JOIN shipped s ON s.order_id = o.id
	ORDER BY o.created_at, o.id`

// GetDispatchSummaryQueryHandler rolls up dispatch state per order.
type GetDispatchSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetDispatchSummaryQueryHandler(db *gorm.DB) GetDispatchSummaryQueryHandler {
	return GetDispatchSummaryQueryHandler{db: db}
}

// Handle counts and pages inside one read-only REPEATABLE READ transaction,
// so Total and Orders come from the same snapshot even next to writers.
func (h GetDispatchSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchSummaryQuery,
) (GetDispatchSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDispatchSummaryQueryResponse{}, err
	}

	var resp GetDispatchSummaryQueryResponse
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Raw(`SELECT COUNT(*) FROM orders`).Scan(&total).Error; err != nil {
			return err
		}

		summaries, err := h.page(tx, query)
		if err != nil {
			return err
		}

		resp = GetDispatchSummaryQueryResponse{Orders: summaries, Total: int(total)}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return GetDispatchSummaryQueryResponse{}, err
	}

	return resp, nil
}

func (h GetDispatchSummaryQueryHandler) page(tx *gorm.DB, query GetDispatchSummaryQuery) ([]OrderSummary, error) {
	stmt := summarySQL
	args := []any{int(dispatch.Returned)}
	if query.Limit() > 0 {
		stmt += ` LIMIT ?`
		args = append(args, query.Limit())
	}
	if query.Offset() > 0 {
		stmt += ` OFFSET ?`
		args = append(args, query.Offset())
	}

	rows, err := tx.Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		var (
			id           uuid.UUID
			number       string
			status       int
			ordered      int
			orderedValue decimal.Decimal
			dispatched   int
		)
		if err = rows.Scan(&id, &number, &status, &ordered, &orderedValue, &dispatched); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, fmt.Errorf("order %s: %w", id, idErr)
		}

		summaries = append(summaries, NewOrderSummary(
			orderID, number, order.Status(status).String(), ordered, orderedValue, dispatched,
		))
	}

	return summaries, rows.Err()
}
