// Package errs provides standardized error types for the freight application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error taxonomy of the order lifecycle:
//   - ObjectNotFoundError: a referenced order or tracking number does not exist
//   - AuthorizationDeniedError: the caller is not the required owner or assignee
//   - InvalidTransitionError: a status change not reachable from the current status
//   - OrderAlreadyAssignedError: an accept attempt on an already-claimed order
//   - ConcurrentModificationError: a conditional update lost to another writer
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed or missing input
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the kind
//
// The HTTP adapter maps each sentinel to a distinct status code, which keeps
// "not found", "forbidden", and "bad transition" programmatically distinguishable.
package errs
