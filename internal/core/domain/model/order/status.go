package order

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions:
//
//	PENDING ──> ACCEPTED ──> PICKED_UP ──> IN_TRANSIT ──> DELIVERED
//	   │            │             │             │
//	   └────────────┴─────────────┴─────────────┴──> CANCELLED
//
// PENDING -> ACCEPTED happens only through carrier assignment, never through
// the generic status-update path. The forward stages are strictly sequential
// with no skipping. CANCELLED and DELIVERED are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: created by a shipper,
	// waiting for a carrier to claim it.
	StatusPending

	// StatusAccepted indicates a carrier has claimed the order.
	StatusAccepted

	// StatusPickedUp indicates the carrier has collected the package.
	StatusPickedUp

	// StatusInTransit indicates the package is on its way.
	StatusInTransit

	// StatusDelivered indicates the package reached its destination.
	// Terminal: no further transitions, including shipper cancellation.
	StatusDelivered

	// StatusCancelled indicates the shipper cancelled the order.
	// Terminal: no further transitions of any kind.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		StatusPending:   "PENDING",
		StatusAccepted:  "ACCEPTED",
		StatusPickedUp:  "PICKED_UP",
		StatusInTransit: "IN_TRANSIT",
		StatusDelivered: "DELIVERED",
		StatusCancelled: "CANCELLED",
	}
}

// forwardTransitions is the carrier-only advancement table.
// Any (current, next) pair not present here is an invalid transition.
func forwardTransitions() map[Status]Status {
	return map[Status]Status{
		StatusAccepted:  StatusPickedUp,
		StatusPickedUp:  StatusInTransit,
		StatusInTransit: StatusDelivered,
	}
}

// ParseStatus folds a status string to the closed Status set.
// The case fold happens here, once, at the boundary; the state machine itself
// only ever sees valid Status values.
func ParseStatus(s string) (Status, error) {
	folded := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == folded {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// StatusFromString maps a stored uppercase status string back to its Status.
// Unlike ParseStatus it does not fold: persisted values are already canonical.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a stored status", s))
}

// Validate checks the Status is one of the six lifecycle values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical uppercase name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanAdvanceTo reports whether a carrier may move the order from s to next.
func (s Status) CanAdvanceTo(next Status) bool {
	allowed, ok := forwardTransitions()[s]
	return ok && allowed == next
}

// Advance transitions to the next fulfillment stage.
//
// Valid transitions: ACCEPTED -> PICKED_UP, PICKED_UP -> IN_TRANSIT,
// IN_TRANSIT -> DELIVERED. Everything else fails with an error naming
// the current and requested status.
func (s Status) Advance(next Status) (Status, error) {
	if s.CanAdvanceTo(next) {
		return next, nil
	}
	return StatusUnknown, errs.NewInvalidTransitionError(s.String(), next.String(),
		"not an allowed carrier transition")
}

// Cancel transitions to CANCELLED.
//
// Allowed from PENDING, ACCEPTED, PICKED_UP, and IN_TRANSIT. Delivered orders
// cannot be cancelled; cancelled orders stay cancelled.
func (s Status) Cancel() (Status, error) {
	switch s {
	case StatusDelivered:
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), StatusCancelled.String(),
			"cannot cancel delivered order")
	case StatusCancelled:
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), StatusCancelled.String(),
			"order is already cancelled")
	case StatusPending, StatusAccepted, StatusPickedUp, StatusInTransit:
		return StatusCancelled, nil
	default:
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), StatusCancelled.String(), "")
	}
}

// Accept transitions PENDING to ACCEPTED. This is the assignment path;
// the generic update-status flow never performs it.
func (s Status) Accept() (Status, error) {
	if s != StatusPending {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), StatusAccepted.String(),
			"only pending orders can be accepted")
	}
	return StatusAccepted, nil
}

// ValidateCanHaveCarrier validates consistency between status and assignment.
// Pending orders must not have a carrier; all later stages must.
func (s Status) ValidateCanHaveCarrier(carrier bool) error {
	if carrier && s == StatusPending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order cannot have a carrier", s.String()))
	}
	if !carrier && (s == StatusAccepted || s == StatusPickedUp || s == StatusInTransit || s == StatusDelivered) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must have a carrier", s.String()))
	}
	return nil
}
