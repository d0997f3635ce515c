package job

import (
	"fmt"

	"jobdispatch/internal/pkg/errs"
)

// Status is the lifecycle state of a job. Values are persisted as integers, so the order of
// the constants below must never change.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	Open
	Offered
	Accepted
	Completed
	Cancelled
	// Reopened is still read from rows written by older producers. It is treated like Open;
	// Reopen itself always writes Open.
	Reopened
	// NotCarriedOutByCustomer closes an Accepted job the customer did not show up for.
	NotCarriedOutByCustomer
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Open:      "Open",
		Offered:   "Offered",
		Accepted:  "Accepted",
		Completed: "Completed",
		Cancelled: "Cancelled",
		Reopened:  "Reopened",

		NotCarriedOutByCustomer: "NotCarriedOutByCustomer",
	}
}

// Validate rejects Unknown and any value outside the declared constants.
func (s Status) Validate() error {
	if s <= Unknown || s > NotCarriedOutByCustomer {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus is the inverse of String. Matching is exact.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// IsOpen reports whether an offer may be posted from s.
func (s Status) IsOpen() bool {
	return s == Open || s == Reopened
}

// IsTerminal reports whether no further work happens on a job in status s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == NotCarriedOutByCustomer
}

// HasTranslator reports whether a job in status s must carry a translator.
func (s Status) HasTranslator() bool {
	return s == Accepted || s == Completed || s == NotCarriedOutByCustomer
}

// Offer transitions Open or Reopened to Offered.
func (s Status) Offer() (Status, error) {
	if !s.IsOpen() {
		return 0, errs.NewInvalidStateError("offer", s.String())
	}
	return Offered, nil
}

// Accept transitions Offered to Accepted.
func (s Status) Accept() (Status, error) {
	if s != Offered {
		return 0, errs.NewInvalidStateError("accept", s.String())
	}
	return Accepted, nil
}

// Expire transitions Offered to Cancelled.
func (s Status) Expire() (Status, error) {
	if s != Offered {
		return 0, errs.NewInvalidStateError("expire", s.String())
	}
	return Cancelled, nil
}

// End transitions Accepted to Completed.
func (s Status) End() (Status, error) {
	if s != Accepted {
		return 0, errs.NewInvalidStateError("end", s.String())
	}
	return Completed, nil
}

// CustomerNotCall transitions Accepted to NotCarriedOutByCustomer.
func (s Status) CustomerNotCall() (Status, error) {
	if s != Accepted {
		return 0, errs.NewInvalidStateError("customer not call", s.String())
	}
	return NotCarriedOutByCustomer, nil
}

// Cancel transitions Offered or Accepted to Cancelled. Cancelled maps to itself so that
// repeating a cancel is harmless; callers detect the no-op by comparing statuses.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Offered, Accepted, Cancelled:
		return Cancelled, nil
	default:
		return 0, errs.NewInvalidStateError("cancel", s.String())
	}
}

// Reopen transitions Offered, Accepted or Cancelled back to Open.
func (s Status) Reopen() (Status, error) {
	switch s {
	case Offered, Accepted, Cancelled:
		return Open, nil
	default:
		return 0, errs.NewInvalidStateError("reopen", s.String())
	}
}
