// Package services provides domain services that implement business rules
// spanning the order aggregate and the caller's identity.
//
// The package includes:
//   - TransitionEngine: authorization-gated status transitions for orders
//
// Domain services hold no state and perform no I/O; persistence of the
// resulting aggregate state is left to the application layer.
package services
