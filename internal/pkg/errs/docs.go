// Package errs provides standardized error types for the fulfillment ledger.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//   - Generic value errors: ObjectNotFoundError, ValueIsInvalidError,
//     ValueIsRequiredError, ValueIsOutOfRangeError
//   - Ledger errors: QuantityExceededError, InsufficientStockError,
//     InvalidTransitionError, AlreadyFulfilledError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrInsufficientStock)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// Validation failures additionally match ErrValidation, so transport code can
// map the whole family to one response without enumerating every type.
package errs
