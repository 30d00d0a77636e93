package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrObjectNotFound is the sentinel for lookups of orders (or other objects)
	// that do not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrValueIsInvalid is the sentinel for malformed input values.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsRequired is the sentinel for missing required values.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsOutOfRange is the sentinel for values outside their allowed bounds.
	ErrValueIsOutOfRange = errors.New("value is out of range")

	// ErrAuthorizationDenied is the sentinel for callers whose role or identity
	// does not match the required owner or assignee.
	ErrAuthorizationDenied = errors.New("authorization denied")

	// ErrInvalidTransition is the sentinel for status changes that are not
	// reachable from the order's current status under the caller's role.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrOrderAlreadyAssigned is the sentinel for accept attempts on an order
	// that already has a carrier.
	ErrOrderAlreadyAssigned = errors.New("order already assigned")

	// ErrConcurrentModification is the sentinel for conditional updates whose
	// precondition failed because another writer changed the order first.
	// Callers should retry with fresh state; the server never retries.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// sanitize strips newlines from values embedded in error messages so a single
// log line stays a single line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError reports that an object identified by ParamName/ID
// does not exist.
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

// ValueIsInvalidError reports a malformed value for the named parameter.
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

// ValueIsRequiredError reports a missing required value.
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

// ValueIsOutOfRangeError reports a value outside its [Min, Max] bounds.
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
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s (cause: %v)",
			ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max), e.Cause)
	}
	return fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// AuthorizationDeniedError reports that the caller is not permitted to perform
// the requested operation on the order. The message names the caller and the
// required relation without revealing the owning identity.
type AuthorizationDeniedError struct {
	CallerID int64
	Role     string
	Reason   string
	Cause    error
}

func NewAuthorizationDeniedError(callerID int64, role, reason string) *AuthorizationDeniedError {
	return &AuthorizationDeniedError{CallerID: callerID, Role: role, Reason: reason}
}

func NewAuthorizationDeniedErrorWithCause(callerID int64, role, reason string, cause error) *AuthorizationDeniedError {
	return &AuthorizationDeniedError{CallerID: callerID, Role: role, Reason: reason, Cause: cause}
}

func (e *AuthorizationDeniedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %d %s (cause: %v)",
			ErrAuthorizationDenied, e.Role, e.CallerID, sanitize(e.Reason), e.Cause)
	}
	return fmt.Sprintf("%s: %s %d %s", ErrAuthorizationDenied, e.Role, e.CallerID, sanitize(e.Reason))
}

func (e *AuthorizationDeniedError) Unwrap() error {
	return ErrAuthorizationDenied
}

// InvalidTransitionError reports a status change that is not allowed. It names
// both the current and the requested status so clients can see exactly which
// pair was rejected.
type InvalidTransitionError struct {
	Current   string
	Requested string
	Reason    string
	Cause     error
}

func NewInvalidTransitionError(current, requested, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Requested: requested, Reason: reason}
}

func NewInvalidTransitionErrorWithCause(current, requested, reason string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Requested: requested, Reason: reason, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.Current, e.Requested)
	if e.Reason != "" {
		msg = fmt.Sprintf("%s (%s)", msg, sanitize(e.Reason))
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// OrderAlreadyAssignedError reports an accept attempt on an order that already
// has a carrier. This is a client error, not a retryable condition.
type OrderAlreadyAssignedError struct {
	OrderID int64
	Cause   error
}

func NewOrderAlreadyAssignedError(orderID int64) *OrderAlreadyAssignedError {
	return &OrderAlreadyAssignedError{OrderID: orderID}
}

func NewOrderAlreadyAssignedErrorWithCause(orderID int64, cause error) *OrderAlreadyAssignedError {
	return &OrderAlreadyAssignedError{OrderID: orderID, Cause: cause}
}

func (e *OrderAlreadyAssignedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: order %d (cause: %v)", ErrOrderAlreadyAssigned, e.OrderID, e.Cause)
	}
	return fmt.Sprintf("%s: order %d", ErrOrderAlreadyAssigned, e.OrderID)
}

func (e *OrderAlreadyAssignedError) Unwrap() error {
	return ErrOrderAlreadyAssigned
}

// ConcurrentModificationError reports that a conditional update found the order
// changed by another writer between read and write.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

func NewConcurrentModificationErrorWithCause(paramName string, id any, cause error) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConcurrentModificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrConcurrentModification, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrConcurrentModification, e.ParamName, sanitize(e.ID))
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
