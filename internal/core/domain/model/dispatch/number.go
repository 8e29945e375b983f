package dispatch

import (
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

const (
	dayWindowLayout = "20060102"
	ordinalWidth    = 4
)

// DayWindow is the key of the per-day numbering counter for t, in t's location.
func DayWindow(t time.Time) string {
	return t.Format(dayWindowLayout)
}

// Number is the human-readable code of a dispatch note:
// <prefix>-<YYYYMMDD>-<ordinal>, e.g. DN-20240312-0007.
type Number string

// NewNumber formats a code from the day counter value. The ordinal is padded
// to four digits and grows past that when a day exceeds 9999 notes.
func NewNumber(prefix string, day time.Time, ordinal int64) (Number, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errs.NewValueIsRequiredError("number prefix")
	}
	if ordinal <= 0 {
		return "", errs.NewValueIsOutOfRangeError("ordinal", ordinal, 1, "unbounded")
	}
	return Number(fmt.Sprintf("%s-%s-%0*d", prefix, DayWindow(day), ordinalWidth, ordinal)), nil
}

func (n Number) String() string {
	return string(n)
}

func (n Number) Validate() error {
	if strings.TrimSpace(string(n)) == "" {
		return errs.NewValueIsRequiredError("number")
	}
	return nil
}
