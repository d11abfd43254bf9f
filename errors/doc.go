// Package errors provides structured error types for the scriptfs bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the operation name, the filesystem path
// involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseService, errors.KindIO).
//		Op("read").
//		Path("/etc/hosts").
//		Cause(ioErr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BadArity("read", 2, 3)
//	err := errors.NotFound("stat", "/missing")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
