package ports

import "context"

// DispatchSequence hands out dispatch note ordinals per day window
// (YYYYMMDD). The first call for a window returns 1; every later call returns
// the previous value plus one, also under concurrent callers.
type DispatchSequence interface {
	Next(ctx context.Context, window string) (int64, error)
}

// DispatchSequencePruner drops counters of windows strictly before the given
// one and reports how many were removed.
type DispatchSequencePruner interface {
	PruneBefore(ctx context.Context, window string) (int64, error)
}
