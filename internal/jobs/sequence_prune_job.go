package jobs

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const runTimeout = time.Minute

// SequencePruner is satisfied by commands.PruneDispatchSequencesCommandHandler.
type SequencePruner interface {
	Handle(ctx context.Context, cmd commands.PruneDispatchSequencesCommand) (int64, error)
}

// SequencePruneJob drops day counters older than the retention window.
type SequencePruneJob struct {
	handler       SequencePruner
	retentionDays int
	schedule      string
	cron          *cron.Cron
	logger        *zap.Logger
}

// NewSequencePruneJob schedules pruning with a standard five-field cron
// expression.
func NewSequencePruneJob(handler SequencePruner, retentionDays int, schedule string, logger *zap.Logger) *SequencePruneJob {
	return &SequencePruneJob{
		handler:       handler,
		retentionDays: retentionDays,
		schedule:      schedule,
		cron:          cron.New(),
		logger:        logger.With(zap.String("component", "sequence_prune_job")),
	}
}

// Run prunes once.
func (j *SequencePruneJob) Run(ctx context.Context) {
	cmd, err := commands.NewPruneDispatchSequencesCommand(j.retentionDays)
	if err != nil {
		j.logger.Error("invalid retention window", zap.Int("retention_days", j.retentionDays), zap.Error(err))
		return
	}

	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("dispatch sequence pruning failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("dispatch sequences pruned", zap.Int64("removed", removed))
	}
}

func (j *SequencePruneJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		j.Run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("sequence prune job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running prune to finish.
func (j *SequencePruneJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("sequence prune job stopped")
}
