package kernel

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Role is the account role resolved by the identity context.
// It is a closed set: shipper or carrier.
type Role int

const (
	// RoleUnknown catches uninitialized Role values.
	RoleUnknown Role = iota

	// RoleShipper creates orders and owns them permanently.
	RoleShipper

	// RoleCarrier claims unassigned orders and advances them through
	// fulfillment stages.
	RoleCarrier
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleShipper: "shipper",
		RoleCarrier: "carrier",
	}
}

// ParseRole folds a role string to the closed Role set.
// This is the single place the case fold happens.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shipper":
		return RoleShipper, nil
	case "carrier":
		return RoleCarrier, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", s))
	}
}

// Validate checks the Role is one of the known values.
func (r Role) Validate() error {
	if r != RoleShipper && r != RoleCarrier {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase role name.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Identity is the resolved caller of a request: a user id plus role,
// supplied by the external identity context and trusted implicitly.
// It is immutable for the duration of a request.
type Identity struct {
	id   int64
	role Role
}

// NewIdentity creates a validated Identity.
func NewIdentity(id int64, role Role) (Identity, error) {
	if id <= 0 {
		return Identity{}, errs.NewValueIsInvalidErrorWithCause("caller_id",
			fmt.Errorf("%d is not a positive identifier", id))
	}
	if err := role.Validate(); err != nil {
		return Identity{}, err
	}

	return Identity{id: id, role: role}, nil
}

// ID returns the caller's user id.
func (i Identity) ID() int64 {
	return i.id
}

// Role returns the caller's role.
func (i Identity) Role() Role {
	return i.role
}

// IsShipper reports whether the caller has the shipper role.
func (i Identity) IsShipper() bool {
	return i.role == RoleShipper
}

// IsCarrier reports whether the caller has the carrier role.
func (i Identity) IsCarrier() bool {
	return i.role == RoleCarrier
}

// Validate checks the Identity carries a positive id and a known role.
func (i Identity) Validate() error {
	if i.id <= 0 {
		return errs.NewValueIsRequiredError("caller_id")
	}
	return i.role.Validate()
}
