package dispatch

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the state of a dispatch note.
//
// State transitions:
//
//	DRAFT ──> DISPATCHED ──┬──> DELIVERED ──> RETURNED
//	                       ├──> RETURNED
//	                       └──> REJECTED
//
// RETURNED and REJECTED are terminal. Entering RETURNED reverses the note's
// effect on stock and on the order aggregate; it is the only reversing state.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Draft
	Dispatched
	Delivered
	Returned
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Draft:      "DRAFT",
		Dispatched: "DISPATCHED",
		Delivered:  "DELIVERED",
		Returned:   "RETURNED",
		Rejected:   "REJECTED",
	}
}

// ParseStatus maps the wire name (case-insensitive) to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a dispatch status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Targets lists the statuses reachable from s in one step.
func (s Status) Targets() []Status {
	switch s {
	case Draft:
		return []Status{Dispatched}
	case Dispatched:
		return []Status{Delivered, Returned, Rejected}
	case Delivered:
		return []Status{Returned}
	case Returned, Rejected, Unknown:
		return nil
	}
	return nil
}

// CanTransitionTo reports whether (s, to) is in the transition table.
func (s Status) CanTransitionTo(to Status) bool {
	for _, target := range s.Targets() {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminal is true for states with no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(s.Targets()) == 0
}

// IsReversed is true for the state whose entries no longer count as shipped.
func (s Status) IsReversed() bool {
	return s == Returned
}

// ValidateInitial checks the status a note may be created in. Notes start as
// DRAFT, DISPATCHED or DELIVERED; the terminal states are reachable only
// through a transition.
func (s Status) ValidateInitial() error {
	if s != Draft && s != Dispatched && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid initial status", s.String()),
		)
	}
	return nil
}
