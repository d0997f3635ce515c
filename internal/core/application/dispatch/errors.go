package dispatch

import (
	"errors"
	"fmt"

	"jobdispatch/internal/pkg/errs"
)

// ErrorKind classifies a failed facade call for the caller.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindInvalidState    ErrorKind = "invalid_state"
	KindOfferExpired    ErrorKind = "offer_expired"
	KindAlreadyAccepted ErrorKind = "already_accepted"
	KindInvalid         ErrorKind = "invalid"
	KindForbidden       ErrorKind = "forbidden"
	KindGateway         ErrorKind = "gateway"
	KindInternal        ErrorKind = "internal"
)

// Error is the only error type returned by Facade methods.
// Channel is set for KindGateway.
type Error struct {
	Kind    ErrorKind
	Message string
	Channel string

	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// toError maps an engine error onto its caller-visible kind. Anything unclassified is
// reported as internal without leaking its text.
func toError(err error) *Error {
	var facadeErr *Error
	if errors.As(err, &facadeErr) {
		return facadeErr
	}

	e := &Error{Message: err.Error(), cause: err}

	var gatewayErr *errs.GatewayError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		e.Kind = KindNotFound
	case errors.Is(err, errs.ErrAlreadyAccepted):
		e.Kind = KindAlreadyAccepted
	case errors.Is(err, errs.ErrOfferExpired):
		e.Kind = KindOfferExpired
	case errors.Is(err, errs.ErrInvalidState):
		e.Kind = KindInvalidState
	case errors.As(err, &gatewayErr):
		e.Kind = KindGateway
		e.Channel = gatewayErr.Channel
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		e.Kind = KindInvalid
	default:
		e.Kind = KindInternal
		e.Message = "internal error"
	}
	return e
}
