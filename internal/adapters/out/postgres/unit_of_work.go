// Package postgres implements the ledger's unit of work on PostgreSQL with
// GORM. One GormUnitOfWork is one database transaction shared by the order,
// stock and dispatch note repositories and the day sequence.
//
// Usage:
//
//	factory := postgres.NewGormUnitOfWorkFactory(db,
//	    postgres.WithEventPublisher(publisher),
//	    postgres.WithLogger(logger),
//	)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	// ... lock stock rows, validate, write
//
//	return uow.Commit(ctx)
//
// Aggregates written through the repositories are tracked. After a
// successful commit their domain events are handed to the EventPublisher;
// a failed or rolled back transaction publishes nothing. With
// WithAsyncPublish the hand-off happens on a bounded set of background
// goroutines and Commit returns once the batch is queued.
package postgres

import (
	"context"
	"sync"
	"time"

	"fulfillment/internal/adapters/out/postgres/dispatchrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/sequencerepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	sequence  ports.DispatchSequence
	publisher ports.EventPublisher
	async     *asyncPublish
	logger    *zap.Logger
}

type asyncPublish struct {
	slots   *semaphore.Weighted
	timeout time.Duration
	wg      sync.WaitGroup
}

type Option func(*GormUnitOfWorkFactory)

// WithDispatchSequence replaces the in-transaction counter table with an
// external numbering source such as Redis.
func WithDispatchSequence(sequence ports.DispatchSequence) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.sequence = sequence
	}
}

func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.publisher = publisher
	}
}

// WithAsyncPublish publishes committed events off the caller's goroutine.
// At most maxInFlight batches are in flight; each gets timeout to finish
// and keeps the commit context's values but not its cancellation. When no
// slot frees up before the commit context ends, the batch is dropped and
// logged.
func WithAsyncPublish(maxInFlight int64, timeout time.Duration) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.async = &asyncPublish{slots: semaphore.NewWeighted(maxInFlight), timeout: timeout}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.logger = logger
	}
}

func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Drain waits for background publishes to finish. Call it after the last
// Commit, before closing the publisher.
func (f *GormUnitOfWorkFactory) Drain(ctx context.Context) error {
	if f.async == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		f.async.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Create returns a fresh unit of work. Instances are not safe for use by
// more than one goroutine.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		sequence:          f.sequence,
		publisher:         f.publisher,
		async:             f.async,
		logger:            f.logger.With(zap.String("component", "unit_of_work")),
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	sequence          ports.DispatchSequence
	publisher         ports.EventPublisher
	async             *asyncPublish
	logger            *zap.Logger
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. A second call while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit finalizes the transaction and then publishes the domain events of
// every tracked aggregate, inline or in the background. Publish failures are
// logged, never returned: the ledger state is already durable at that point.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishTracked(ctx)
	return nil
}

// Rollback discards the transaction. It returns nil when nothing is open,
// so it can be deferred unconditionally after Begin.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) StockRepository() ports.StockRepository {
	return stockrepo.NewGormStockRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DispatchNoteRepository() ports.DispatchNoteRepository {
	return dispatchrepo.NewGormDispatchNoteRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DispatchSequence() ports.DispatchSequence {
	if uow.sequence != nil {
		return uow.sequence
	}
	return sequencerepo.NewGormDispatchSequence(uow.conn())
}

// TrackAggregate is called by the repositories on every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishTracked(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	seen := make(map[kernel.EventSource]struct{}, len(tracked))
	var events []kernel.DomainEvent
	for _, t := range tracked {
		source, ok := t.Aggregate.(kernel.EventSource)
		if !ok {
			continue
		}
		if _, dup := seen[source]; dup {
			continue
		}
		seen[source] = struct{}{}
		events = append(events, source.DomainEvents()...)
		source.ClearDomainEvents()
	}

	if len(events) == 0 || uow.publisher == nil {
		return
	}

	publisher, logger := uow.publisher, uow.logger
	if uow.async == nil {
		publishEvents(ctx, publisher, logger, events)
		return
	}

	async := uow.async
	if err := async.slots.Acquire(ctx, 1); err != nil {
		logger.Error("drop domain events",
			zap.Int("count", len(events)),
			zap.Error(err),
		)
		return
	}

	async.wg.Add(1)
	go func() {
		defer async.wg.Done()
		defer async.slots.Release(1)

		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), async.timeout)
		defer cancel()
		publishEvents(publishCtx, publisher, logger, events)
	}()
}

func publishEvents(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, events []kernel.DomainEvent) {
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Error("publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err),
		)
	}
}
