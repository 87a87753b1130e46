// Package errs provides standardized error types for the dispatch engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package maps the engine's error taxonomy onto typed errors:
//   - ObjectNotFoundError: a referenced order or courier does not exist
//   - ConflictError: a guarded state transition lost a race (order already assigned)
//   - ValueIsInvalidError / ValueIsOutOfRangeError / ValueIsRequiredError: validation failures
//   - ConnectivityError: the database or the message broker is unreachable
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict) for errors.Is classification
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// A courier that is simply not connected is not an error at all; that soft miss
// is reported as a boolean by the notification dispatcher.
package errs
