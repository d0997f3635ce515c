package errs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrInvalidState      = errors.New("invalid state")
	ErrOfferExpired      = errors.New("offer expired")
	ErrAlreadyAccepted   = errors.New("job already accepted")
	ErrGateway           = errors.New("notification gateway failure")
)

// ObjectNotFoundError reports a lookup by identifier that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a parameter whose value breaks a validation rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory parameter.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateError reports a lifecycle operation that is not allowed from the current status.
type InvalidStateError struct {
	Operation string
	Status    string
}

func NewInvalidStateError(operation, status string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Status: status}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s is not a valid status to %s", ErrInvalidState, e.Status, e.Operation)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// OfferExpiredError reports an accept attempted at or after the offer deadline.
type OfferExpiredError struct {
	JobID     string
	ExpiresAt time.Time
	Now       time.Time
}

func NewOfferExpiredError(jobID string, expiresAt, now time.Time) *OfferExpiredError {
	return &OfferExpiredError{JobID: jobID, ExpiresAt: expiresAt, Now: now}
}

func (e *OfferExpiredError) Error() string {
	return fmt.Sprintf("%s: job %s expired at %s (now %s)",
		ErrOfferExpired, e.JobID, e.ExpiresAt.Format(time.RFC3339), e.Now.Format(time.RFC3339))
}

func (e *OfferExpiredError) Unwrap() error {
	return ErrOfferExpired
}

// AlreadyAcceptedError is returned to the caller that lost an accept race.
type AlreadyAcceptedError struct {
	JobID string
}

func NewAlreadyAcceptedError(jobID string) *AlreadyAcceptedError {
	return &AlreadyAcceptedError{JobID: jobID}
}

func (e *AlreadyAcceptedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyAccepted, e.JobID)
}

func (e *AlreadyAcceptedError) Unwrap() error {
	return ErrAlreadyAccepted
}

// GatewayError wraps a failed notification send together with the channel it went through.
type GatewayError struct {
	Channel string
	Cause   error
}

func NewGatewayError(channel string, cause error) *GatewayError {
	return &GatewayError{Channel: channel, Cause: cause}
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: channel %s (cause: %v)", ErrGateway, e.Channel, e.Cause)
	}
	return fmt.Sprintf("%s: channel %s", ErrGateway, e.Channel)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is/As.
func (e *GatewayError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrGateway}
	}
	return []error{ErrGateway, e.Cause}
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}
