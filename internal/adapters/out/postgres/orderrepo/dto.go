// Package orderrepo persists order aggregates: one row per order plus one
// row per line item.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO maps the orders table. DispatchedQuantity is the cached
// aggregate, refreshed by every ledger write.
type OrderDTO struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Number             string        `gorm:"type:varchar(64);not null;index"`
	Status             int           `gorm:"type:smallint;not null"`
	DispatchedQuantity int           `gorm:"type:int;not null;default:0;check:chk_orders_dispatched,dispatched_quantity >= 0"`
	CreatedAt          time.Time     `gorm:"not null"`
	LineItems          []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO maps order_line_items. Position keeps the order's line
// sequence.
type LineItemDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position        int             `gorm:"type:int;not null"`
	CatalogItemID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderedQuantity int             `gorm:"type:int;not null;check:chk_line_items_quantity,ordered_quantity > 0"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric(18,4);not null"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.LineItems()
	lines := make([]LineItemDTO, 0, len(items))
	for i, item := range items {
		lines = append(lines, LineItemDTO{
			ID:              item.ID().Bytes(),
			OrderID:         aggregate.ID().Bytes(),
			Position:        i,
			CatalogItemID:   item.CatalogItemID().Bytes(),
			OrderedQuantity: item.OrderedQuantity(),
			UnitPrice:       item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		Number:             aggregate.Number(),
		Status:             int(aggregate.Status()),
		DispatchedQuantity: aggregate.DispatchedQuantity(),
		LineItems:          lines,
	}
}

// toDomain rebuilds the aggregate; lines must already be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.LineItem, 0, len(dto.LineItems))
	for _, line := range dto.LineItems {
		lineID, lineErr := kernel.UUIDFromBytes(line.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		catalogID, lineErr := kernel.UUIDFromBytes(line.CatalogItemID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		item, lineErr := order.NewLineItem(lineID, catalogID, line.OrderedQuantity, line.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, item)
	}

	return order.RestoreOrder(id, dto.Number, order.Status(dto.Status), lines, dto.DispatchedQuantity)
}
