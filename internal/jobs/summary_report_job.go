package jobs

import (
	"context"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SummaryReader is satisfied by queries.GetDispatchSummaryQueryHandler.
type SummaryReader interface {
	Handle(ctx context.Context, q queries.GetDispatchSummaryQuery) (queries.GetDispatchSummaryQueryResponse, error)
}

// SummaryReportJob logs how many orders sit in each classification.
type SummaryReportJob struct {
	reader   SummaryReader
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewSummaryReportJob(reader SummaryReader, schedule string, logger *zap.Logger) *SummaryReportJob {
	return &SummaryReportJob{
		reader:   reader,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With(zap.String("component", "summary_report_job")),
	}
}

// Run reads the full summary and logs one line with the counts.
func (j *SummaryReportJob) Run(ctx context.Context) {
	q, err := queries.NewGetDispatchSummaryQuery(0, 0)
	if err != nil {
		j.logger.Error("building summary query failed", zap.Error(err))
		return
	}

	page, err := j.reader.Handle(ctx, q)
	if err != nil {
		j.logger.Error("dispatch summary failed", zap.Error(err))
		return
	}

	counts := page.CountByClassification()
	j.logger.Info("dispatch summary",
		zap.Int("orders", page.Total),
		zap.Int("not_dispatched", counts[queries.NotDispatched]),
		zap.Int("partial", counts[queries.Partial]),
		zap.Int("full", counts[queries.Full]),
	)
}

func (j *SummaryReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		j.Run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("summary report job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *SummaryReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("summary report job stopped")
}
