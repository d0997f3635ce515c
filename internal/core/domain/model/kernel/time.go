package kernel

import (
	"fmt"
	"time"

	"jobdispatch/internal/pkg/errs"
)

// TimestampLayout is the wall-clock format used by job due dates on the wire.
const TimestampLayout = "2006-01-02 15:04:05"

// Clock supplies the current time. Handlers depend on it instead of time.Now.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

// ParseTimestamp accepts TimestampLayout (read as UTC) or RFC 3339.
func ParseTimestamp(paramName, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errs.NewValueIsRequiredError(paramName)
	}
	if t, err := time.ParseInLocation(TimestampLayout, raw, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(
			paramName,
			fmt.Errorf("%q is neither %q nor RFC 3339", raw, TimestampLayout),
		)
	}
	return t.UTC(), nil
}

// FormatTimestamp renders t in TimestampLayout after converting it to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
