// Package errs provides the error taxonomy shared by the dispatch service.
//
// Two families live here:
//   - value errors raised while validating input (ValueIsRequiredError,
//     ValueIsInvalidError, ValueIsOutOfRangeError) and ObjectNotFoundError;
//   - lifecycle outcomes of the job engine: InvalidStateError, OfferExpiredError,
//     AlreadyAcceptedError and GatewayError.
//
// Each type pairs a sentinel (ErrObjectNotFound, ErrInvalidState, ...) with a struct
// carrying the details. Constructors return pointers and Unwrap returns the sentinel,
// so callers branch with errors.Is and read details with errors.As.
package errs
