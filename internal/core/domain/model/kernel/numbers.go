package kernel

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Order and tracking numbers are short opaque identifiers handed to customers
// and external tracking systems. Uniqueness is ultimately enforced by the
// storage layer's unique indexes; the random source makes collisions rare
// enough that a retry is never needed in practice.

// GenerateOrderNumber produces a new order number, e.g. "ORD-1A2B3C4D".
// Generated once at order creation, immutable afterwards.
func GenerateOrderNumber() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("ORD-%s", hex[:8])
}

// GenerateTrackingNumber produces a new tracking number, e.g. "TRK-1A2B3C4D5E".
// Issued exactly once, at carrier assignment.
func GenerateTrackingNumber() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("TRK-%s", hex[:10])
}
