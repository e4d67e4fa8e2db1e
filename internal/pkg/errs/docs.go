// Package errs provides standardized error types for the back office application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by value objects, entities and the application layer.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an identifier does not resolve to a stored object
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Lifecycle guard violations are not modelled here: every entity package owns a
// tagged error with its own kind enum (see loan.Error, order.Error, ...).
package errs
