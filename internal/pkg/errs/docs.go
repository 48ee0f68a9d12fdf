// Package errs provides the error taxonomy shared by the marketplace core.
//
// Every error type pairs a sentinel (ErrAccessDenied, ErrPreconditionFailed, ...)
// with a struct that carries details and unwraps to that sentinel. Domain code
// declares its own named errors on top of these structs, so callers can match
// either the precise failure or its category with errors.Is:
//
//	var ErrIllegalTransition = errs.NewPreconditionFailedError("illegal transition")
//
//	errors.Is(err, order.ErrIllegalTransition) // precise
//	errors.Is(err, errs.ErrPreconditionFailed) // category
//
// The HTTP adapter maps categories to status codes.
package errs
