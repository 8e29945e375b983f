package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPruneDispatchSequencesCommandIsNotConstructed = errors.New(
	"PruneDispatchSequencesCommand must be created via NewPruneDispatchSequencesCommand constructor",
)

// PruneDispatchSequencesCommand drops day counters older than the retention
// window. Today's counter is never touched.
type PruneDispatchSequencesCommand struct {
	retentionDays int

	guard guard.ConstructorGuard
}

func NewPruneDispatchSequencesCommand(retentionDays int) (PruneDispatchSequencesCommand, error) {
	if retentionDays < 1 {
		return PruneDispatchSequencesCommand{}, errs.NewValueIsOutOfRangeError("retention days", retentionDays, 1, "unbounded")
	}
	return PruneDispatchSequencesCommand{retentionDays: retentionDays, guard: guard.NewConstructorGuard()}, nil
}

func (c PruneDispatchSequencesCommand) Validate() error {
	return c.guard.Validate(ErrPruneDispatchSequencesCommandIsNotConstructed)
}

func (c PruneDispatchSequencesCommand) RetentionDays() int {
	return c.retentionDays
}

// cutoff is the first day kept.
func (c PruneDispatchSequencesCommand) cutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -c.retentionDays)
}
