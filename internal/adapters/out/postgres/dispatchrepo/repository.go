package dispatchrepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormDispatchNoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDispatchNoteRepository(db *gorm.DB, tracker aggregateTracker) *GormDispatchNoteRepository {
	return &GormDispatchNoteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the note and its entries in one statement batch.
func (r *GormDispatchNoteRepository) Add(ctx context.Context, note *dispatch.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	dto := fromDomain(note)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewObjectConflictError("dispatch note", note.Number().String())
		}
		return err
	}

	r.tracker.TrackAggregate(note.ID(), note)
	return nil
}

// Update writes status, dates and the reversal stamp. Entries are never
// rewritten.
func (r *GormDispatchNoteRepository) Update(ctx context.Context, note *dispatch.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DispatchNoteDTO{}).
		Where("id = ?", note.ID().Bytes()).
		Updates(map[string]any{
			"status":        int(note.Status()),
			"dispatch_date": note.DispatchDate(),
			"delivery_date": note.DeliveryDate(),
			"reversed_at":   note.ReversedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("dispatchNote", note.ID().String())
	}

	r.tracker.TrackAggregate(note.ID(), note)
	return nil
}

func (r *GormDispatchNoteRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Note, error) {
	return r.load(ctx, r.db.WithContext(ctx), id)
}

func (r *GormDispatchNoteRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*dispatch.Note, error) {
	return r.load(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormDispatchNoteRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*dispatch.Note, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DispatchNoteDTO
	if err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, number").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	notes := make([]*dispatch.Note, 0, len(dtos))
	for _, dto := range dtos {
		note, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, nil
}

func (r *GormDispatchNoteRepository) load(ctx context.Context, query *gorm.DB, id kernel.UUID) (*dispatch.Note, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DispatchNoteDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatchNote", id.String())
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("note_id = ?", dto.ID).
		Order("position").
		Find(&dto.Entries).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}
