package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order as owned by
// upstream order management. The ledger only reads it to decide whether the
// order accepts dispatches.
//
// State transitions:
//
//	Draft ──> Open ──> Cancelled
//	  │                    ▲
//	  └────────────────────┘
//
// Line items are immutable once the order leaves Draft.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft orders are still being edited upstream; their lines may change.
	Draft

	// Open orders are placed and accept dispatches.
	Open

	// Cancelled orders accept no further dispatches. Final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Draft:     "Draft",
		Open:      "Open",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is one of Draft, Open or Cancelled.
// Used when restoring orders from persistence.
func (s Status) Validate() error {
	if s == Draft || s == Open || s == Cancelled {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
}

// String returns the human-readable name of the status; "Unknown" for
// invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateDispatchable reports whether goods may ship against an order in
// this status. Only Open orders are dispatchable.
func (s Status) ValidateDispatchable() error {
	if s != Open {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to dispatch against", s.String()),
		)
	}
	return nil
}

// Open transitions Draft -> Open.
func (s Status) Open() (Status, error) {
	if s != Draft {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to open", s.String()),
		)
	}
	return Open, nil
}

// Cancel transitions Draft or Open -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Draft && s != Open {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}
