// Package stockrepo persists per catalog item stock rows.
package stockrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// StockDTO maps inventory_stocks. The CHECK constraint backs the
// non-negative invariant at the database level.
type StockDTO struct {
	CatalogItemID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	AvailableQuantity int       `gorm:"type:int;not null;check:chk_stocks_available,available_quantity >= 0"`
	UpdatedAt         time.Time
}

func (StockDTO) TableName() string {
	return "inventory_stocks"
}

func fromDomain(stock *inventory.Stock) StockDTO {
	return StockDTO{
		CatalogItemID:     stock.CatalogItemID().Bytes(),
		AvailableQuantity: stock.Available(),
	}
}

func toDomain(dto StockDTO) (*inventory.Stock, error) {
	id, err := kernel.UUIDFromBytes(dto.CatalogItemID[:])
	if err != nil {
		return nil, err
	}
	return inventory.RestoreStock(id, dto.AvailableQuantity)
}
