package cmd

import (
	"context"
	"errors"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/sequencerepo"
	redisseq "fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ServiceName is reported as the OpenTelemetry service name.
const ServiceName = "fulfillment"

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	settings   commands.LedgerSettings
	uowFactory *postgres.GormUnitOfWorkFactory
	pruner     ports.DispatchSequencePruner

	closers []func() error
}

// NewCompositionRoot wires the unit of work with the configured numbering
// source and, when KAFKA_HOST is set, the event publisher.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	settings, err := commands.NewLedgerSettings(cfg.DispatchNumberPrefix, cfg.Location())
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		cfg:      cfg,
		gormDB:   gormDB,
		logger:   logger,
		settings: settings,
		pruner:   sequencerepo.NewGormDispatchSequence(gormDB),
	}

	opts := []postgres.Option{postgres.WithLogger(logger.With(zap.String("component", "unit_of_work")))}

	if cfg.SequenceBackend == SequenceBackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		root.closers = append(root.closers, client.Close)
		sequence := redisseq.NewDispatchSequence(client)
		opts = append(opts, postgres.WithDispatchSequence(sequence))
		root.pruner = sequence
	}

	if cfg.KafkaHost != "" {
		publisher := kafka.NewEventPublisher(
			kafka.NewWriter(cfg.KafkaHost, cfg.KafkaDispatchEventsTopic),
			logger.With(zap.String("component", "event_publisher")),
		)
		root.closers = append(root.closers, publisher.Close)
		opts = append(opts,
			postgres.WithEventPublisher(publisher),
			postgres.WithAsyncPublish(int64(cfg.EventPublishConcurrency), cfg.EventPublishTimeout),
		)
	}

	root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, opts...)
	root.closers = append(root.closers, root.drainEvents)
	return root, nil
}

func (c *CompositionRoot) drainEvents() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.EventPublishTimeout)
	defer cancel()
	return c.uowFactory.Drain(ctx)
}

// Close waits for queued events, then releases the Kafka writer and the
// Redis client.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewCreateOrderCommandHandler(f)
	return &handler
}

func (c *CompositionRoot) CreateReceiveStockCommandHandler() commands.ReceiveStockCommandHandler {
	var f commands.StockUoWFactory = FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReceiveStockCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDispatchCommandHandler() commands.CreateDispatchCommandHandler {
	return commands.NewCreateDispatchCommandHandler(c.ledgerUoWFactory(), c.settings)
}

func (c *CompositionRoot) CreateTransitionDispatchCommandHandler() commands.TransitionDispatchCommandHandler {
	return commands.NewTransitionDispatchCommandHandler(c.ledgerUoWFactory(), c.settings)
}

func (c *CompositionRoot) CreateDispatchRemainingCommandHandler() commands.DispatchRemainingCommandHandler {
	return commands.NewDispatchRemainingCommandHandler(c.ledgerUoWFactory(), c.settings)
}

func (c *CompositionRoot) CreatePruneDispatchSequencesCommandHandler() commands.PruneDispatchSequencesCommandHandler {
	return commands.NewPruneDispatchSequencesCommandHandler(c.pruner, c.settings)
}

func (c *CompositionRoot) CreateGetDispatchSummaryQueryHandler() queries.GetDispatchSummaryQueryHandler {
	return queries.NewGetDispatchSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderFulfillmentQueryHandler() queries.GetOrderFulfillmentQueryHandler {
	return queries.NewGetOrderFulfillmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDispatchNoteQueryHandler() queries.GetDispatchNoteQueryHandler {
	return queries.NewGetDispatchNoteQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP adapter over every use case.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		CreateDispatch:     c.CreateCreateDispatchCommandHandler(),
		TransitionDispatch: c.CreateTransitionDispatchCommandHandler(),
		DispatchRemaining:  c.CreateDispatchRemainingCommandHandler(),
		ReceiveStock:       c.CreateReceiveStockCommandHandler(),
		Summary:            c.CreateGetDispatchSummaryQueryHandler(),
		Fulfillment:        c.CreateGetOrderFulfillmentQueryHandler(),
		DispatchNote:       c.CreateGetDispatchNoteQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewSequencePruneJob(
			c.CreatePruneDispatchSequencesCommandHandler(),
			c.cfg.SequenceRetentionDays,
			c.cfg.SequencePruneSchedule,
			c.logger,
		),
		jobs.NewSummaryReportJob(c.CreateGetDispatchSummaryQueryHandler(), c.cfg.SummaryReportSchedule, c.logger),
	)
}

// DSN is the PostgreSQL connection string for cfg.
func DSN(cfg Config) string {
	return postgres.ConnectionString(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSslMode)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}
