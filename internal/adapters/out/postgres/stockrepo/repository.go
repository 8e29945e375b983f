package stockrepo

import (
	"context"
	"errors"
	"slices"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStockRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormStockRepository(db *gorm.DB, tracker aggregateTracker) *GormStockRepository {
	return &GormStockRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormStockRepository) Add(ctx context.Context, stock *inventory.Stock) error {
	if err := stock.Validate(); err != nil {
		return err
	}

	dto := fromDomain(stock)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewObjectConflictError("catalogItemID", stock.CatalogItemID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(stock.CatalogItemID(), stock)
	return nil
}

func (r *GormStockRepository) Update(ctx context.Context, stock *inventory.Stock) error {
	if err := stock.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&StockDTO{}).
		Where("catalog_item_id = ?", stock.CatalogItemID().Bytes()).
		Update("available_quantity", stock.Available())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("catalogItemID", stock.CatalogItemID().String())
	}

	r.tracker.TrackAggregate(stock.CatalogItemID(), stock)
	return nil
}

func (r *GormStockRepository) Get(ctx context.Context, catalogItemID kernel.UUID) (*inventory.Stock, error) {
	if err := catalogItemID.Validate(); err != nil {
		return nil, err
	}

	var dto StockDTO
	if err := r.db.WithContext(ctx).First(&dto, "catalog_item_id = ?", catalogItemID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("catalogItemID", catalogItemID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate locks the rows in ascending catalog item order. PostgreSQL
// applies FOR UPDATE after the sort, so two transactions asking for
// overlapping sets queue on the same first row instead of deadlocking.
func (r *GormStockRepository) GetForUpdate(
	ctx context.Context,
	catalogItemIDs ...kernel.UUID,
) ([]*inventory.Stock, error) {
	ids := make([]kernel.UUID, 0, len(catalogItemIDs))
	for _, id := range catalogItemIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	slices.SortFunc(ids, func(a, b kernel.UUID) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	ids = slices.CompactFunc(ids, kernel.UUID.IsEqual)

	keys := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.Bytes())
	}

	var dtos []StockDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("catalog_item_id IN ?", keys).
		Order("catalog_item_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]StockDTO, len(dtos))
	for _, dto := range dtos {
		found[dto.CatalogItemID] = dto
	}

	stocks := make([]*inventory.Stock, 0, len(ids))
	for _, id := range ids {
		dto, ok := found[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("catalogItemID", id.String())
		}
		stock, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, stock)
	}

	return stocks, nil
}
