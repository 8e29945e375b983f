// Package jobs provides the scheduled housekeeping tasks of the fulfillment
// ledger, built on github.com/robfig/cron/v3 with standard five-field
// expressions.
//
// # Available Jobs
//
// 1. SequencePruneJob - deletes dispatch number day counters older than the
// retention window (SEQUENCE_PRUNE_SCHEDULE, default "15 3 * * *")
// 2. SummaryReportJob - logs the number of orders per classification
// (SUMMARY_REPORT_SCHEDULE, default "*/15 * * * *")
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewSequencePruneJob(pruneHandler, 35, "15 3 * * *", logger),
//		jobs.NewSummaryReportJob(summaryHandler, "*/15 * * * *", logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs never stop on a failed run; failures are logged and the next tick
// tries again. Each run gets its own timeout. StopAll waits for runs in
// flight.
package jobs
