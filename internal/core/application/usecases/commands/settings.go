package commands

import (
	"errors"
	"strings"
	"time"
)

const DefaultNumberPrefix = "DN"

var ErrNumberPrefixIsInvalid = errors.New("number prefix must not contain whitespace")

// LedgerSettings are shared by the handlers that create or move dispatch
// notes. The day of a dispatch number is the calendar day of Now in Location.
type LedgerSettings struct {
	NumberPrefix string
	Location     *time.Location
	Now          func() time.Time
}

// NewLedgerSettings fills defaults: prefix DN, UTC, wall clock.
func NewLedgerSettings(prefix string, location *time.Location) (LedgerSettings, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	if strings.ContainsAny(prefix, " \t\n") {
		return LedgerSettings{}, ErrNumberPrefixIsInvalid
	}
	if location == nil {
		location = time.UTC
	}
	return LedgerSettings{NumberPrefix: prefix, Location: location, Now: time.Now}, nil
}

func (s LedgerSettings) now() time.Time {
	if s.Now == nil {
		return time.Now().In(s.location())
	}
	return s.Now().In(s.location())
}

func (s LedgerSettings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s LedgerSettings) prefix() string {
	if s.NumberPrefix == "" {
		return DefaultNumberPrefix
	}
	return s.NumberPrefix
}
