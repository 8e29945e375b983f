package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the housekeeping jobs together.
type JobManager struct {
	jobs  []Job
	names []string
}

// NewJobManager wires the sequence prune and summary report jobs.
func NewJobManager(prune *SequencePruneJob, report *SummaryReportJob) *JobManager {
	return &JobManager{
		jobs:  []Job{prune, report},
		names: []string{"sequence prune", "summary report"},
	}
}

// StartAll starts every job in order. When one fails, the jobs already
// running are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", jm.names[i], err)
		}
	}
	return nil
}

// StopAll stops the jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
