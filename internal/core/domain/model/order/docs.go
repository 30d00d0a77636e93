// Package order contains the Order aggregate of the freight marketplace:
// the order itself, its line items, and the Status state machine that
// constrains the lifecycle
//
//	PENDING -> ACCEPTED -> PICKED_UP -> IN_TRANSIT -> DELIVERED
//
// with CANCELLED as the shipper's side exit. Authorization (who may trigger
// which transition) lives in the transition engine under domain/services;
// this package only knows which state changes are structurally legal.
package order
