package job

import (
	"fmt"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"
)

// Flag is a yes/no marker stored as text.
type Flag string

const (
	FlagYes Flag = "yes"
	FlagNo  Flag = "no"
)

// FlagFromInput maps client input to a Flag: exactly "true" is yes, anything else is no.
func FlagFromInput(raw string) Flag {
	if raw == "true" {
		return FlagYes
	}
	return FlagNo
}

// Validate accepts FlagYes and FlagNo only.
func (f Flag) Validate() error {
	if f != FlagYes && f != FlagNo {
		return errs.NewValueIsInvalidErrorWithCause("flag is invalid", fmt.Errorf("%q is neither yes nor no", string(f)))
	}
	return nil
}

// Bool reports whether the flag is set.
func (f Flag) Bool() bool {
	return f == FlagYes
}

// TelemetryInput is a partial telemetry feed. A nil field means the key was absent.
type TelemetryInput struct {
	Distance        *string
	Time            *string
	SessionTime     *string
	Flagged         *string
	ManuallyHandled *string
	ByAdmin         *string
	AdminComments   *string
}

// DistanceUpdate carries the distance/time pair of a feed. Nil fields keep the stored value.
type DistanceUpdate struct {
	Distance *string
	Time     *string
}

// TelemetryPatch is the normalized merge set derived from a TelemetryInput.
type TelemetryPatch struct {
	Distance        *DistanceUpdate
	SessionTime     *string
	Flagged         *Flag
	ManuallyHandled *Flag
	ByAdmin         *Flag
	AdminComments   *string
}

// NewTelemetryPatch normalizes a feed. The distance record is touched only when distance or
// time is present and non-empty; flags map through FlagFromInput; text fields pass verbatim.
func NewTelemetryPatch(in TelemetryInput) TelemetryPatch {
	var p TelemetryPatch

	if nonEmpty(in.Distance) || nonEmpty(in.Time) {
		p.Distance = &DistanceUpdate{
			Distance: copyString(in.Distance),
			Time:     copyString(in.Time),
		}
	}

	p.SessionTime = copyString(in.SessionTime)
	p.AdminComments = copyString(in.AdminComments)
	p.Flagged = flagPtr(in.Flagged)
	p.ManuallyHandled = flagPtr(in.ManuallyHandled)
	p.ByAdmin = flagPtr(in.ByAdmin)

	return p
}

// HasDistance reports whether the patch upserts the distance record.
func (p TelemetryPatch) HasDistance() bool {
	return p.Distance != nil
}

// HasJobFields reports whether the patch writes any column of the job itself.
func (p TelemetryPatch) HasJobFields() bool {
	return p.SessionTime != nil || p.AdminComments != nil ||
		p.Flagged != nil || p.ManuallyHandled != nil || p.ByAdmin != nil
}

// IsEmpty reports whether applying the patch would write nothing at all.
func (p TelemetryPatch) IsEmpty() bool {
	return !p.HasDistance() && !p.HasJobFields()
}

// Distance is the per-job distance/time record, created lazily by the first feed.
type Distance struct {
	JobID    kernel.UUID
	Distance string
	Time     string
}

// Merge applies u on top of d and returns the result. A zero d stands for a missing record.
func (d Distance) Merge(jobID kernel.UUID, u DistanceUpdate) Distance {
	merged := Distance{JobID: jobID, Distance: d.Distance, Time: d.Time}
	if u.Distance != nil {
		merged.Distance = *u.Distance
	}
	if u.Time != nil {
		merged.Time = *u.Time
	}
	return merged
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func flagPtr(raw *string) *Flag {
	if raw == nil {
		return nil
	}
	f := FlagFromInput(*raw)
	return &f
}
