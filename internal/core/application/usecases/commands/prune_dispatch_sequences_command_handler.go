package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/ports"
)

// PruneDispatchSequencesCommandHandler removes stale day counters. It runs
// outside any ledger transaction: counters of past days are never read
// again.
type PruneDispatchSequencesCommandHandler struct {
	pruner   ports.DispatchSequencePruner
	settings LedgerSettings
}

func NewPruneDispatchSequencesCommandHandler(
	pruner ports.DispatchSequencePruner,
	settings LedgerSettings,
) PruneDispatchSequencesCommandHandler {
	return PruneDispatchSequencesCommandHandler{pruner: pruner, settings: settings}
}

// Handle returns the number of counters removed.
func (h PruneDispatchSequencesCommandHandler) Handle(ctx context.Context, cmd PruneDispatchSequencesCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	window := dispatch.DayWindow(cmd.cutoff(h.settings.now()))
	return h.pruner.PruneBefore(ctx, window)
}
