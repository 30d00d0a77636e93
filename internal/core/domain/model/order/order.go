package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// DefaultPaymentStatus is the opaque payment marker set at creation.
const DefaultPaymentStatus = "unpaid"

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Details carries the shipment, customer, and commercial attributes of an
// order. They are set at creation and validated together with the aggregate.
type Details struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	PickupLocation     string
	DeliveryLocation   string
	PickupDate         time.Time
	DeliveryDeadline   time.Time
	PackageDescription string
	Weight             float64
	Dimensions         *string

	TotalAmount float64
	Notes       *string
}

// Order is the aggregate root of the freight domain. It owns its line items
// and guards the lifecycle invariants:
//
//   - is_assigned is true exactly when a carrier id is set
//   - the tracking number exists exactly from the first successful assignment
//   - carrier id and tracking number are monotonic: set once, never cleared
//   - DELIVERED blocks cancellation; CANCELLED blocks everything
//
// All state changes go through Assign, Cancel, and AdvanceTo; a failed call
// leaves the aggregate untouched.
type Order struct {
	id             int64
	orderNumber    string
	trackingNumber *string

	shipperID  int64
	carrierID  *int64
	isAssigned bool

	details       Details
	paymentStatus string
	status        Status

	items []*Item

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new pending, unassigned order owned by the given shipper.
// The order number is generated here; the id stays zero until persistence
// assigns one. Items are validated as part of construction.
func NewOrder(shipperID int64, details Details, items []*Item) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		orderNumber:   kernel.GenerateOrderNumber(),
		paymentStatus: DefaultPaymentStatus,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setShipperID(shipperID),
		o.setDetails(details),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence and re-checks the
// cross-field invariants so corrupted rows never become live aggregates.
func RestoreOrder(
	id int64,
	orderNumber string,
	trackingNumber *string,
	shipperID int64,
	carrierID *int64,
	isAssigned bool,
	details Details,
	paymentStatus string,
	status Status,
	items []*Item,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if isAssigned != (carrierID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("is_assigned",
			fmt.Errorf("assignment flag does not match carrier presence on order %d", id))
	}
	if isAssigned != (trackingNumber != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("tracking_number",
			fmt.Errorf("tracking number presence does not match assignment on order %d", id))
	}
	if err := status.ValidateCanHaveCarrier(carrierID != nil); err != nil {
		return nil, err
	}

	o := &Order{
		id:             id,
		orderNumber:    orderNumber,
		trackingNumber: trackingNumber,
		carrierID:      carrierID,
		isAssigned:     isAssigned,
		paymentStatus:  paymentStatus,
		status:         status,
		items:          items,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setShipperID(shipperID),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Assign claims the order for a carrier: sets the carrier id, marks the order
// assigned, moves PENDING to ACCEPTED, and issues the tracking number. This is
// the only operation that populates carrier id and tracking number.
//
// Fails with OrderAlreadyAssigned if a carrier already holds the order, and
// with InvalidTransition if the order is not PENDING (a cancelled order cannot
// be claimed).
func (o *Order) Assign(carrierID int64) error {
	if carrierID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("carrier_id",
			fmt.Errorf("%d is not a positive identifier", carrierID))
	}
	if o.isAssigned {
		return errs.NewOrderAlreadyAssignedError(o.id)
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	trackingNumber := kernel.GenerateTrackingNumber()
	o.status = newStatus
	o.carrierID = &carrierID
	o.isAssigned = true
	o.trackingNumber = &trackingNumber
	o.touch()
	return nil
}

// Cancel moves the order to CANCELLED. Rejected on delivered and already
// cancelled orders. Ownership checks belong to the transition engine, not here.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// AdvanceTo moves the order one step forward along the fulfillment sequence
// ACCEPTED -> PICKED_UP -> IN_TRANSIT -> DELIVERED. Skipping stages fails.
func (o *Order) AdvanceTo(next Status) error {
	newStatus, err := o.status.Advance(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order's identifier, zero until persisted.
func (o *Order) ID() int64 {
	return o.id
}

// OrderNumber returns the immutable order number generated at creation.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// TrackingNumber returns the tracking number, nil until assignment.
func (o *Order) TrackingNumber() *string {
	return o.trackingNumber
}

// ShipperID returns the owning shipper's id.
func (o *Order) ShipperID() int64 {
	return o.shipperID
}

// CarrierID returns the assigned carrier's id, nil until assignment.
func (o *Order) CarrierID() *int64 {
	return o.carrierID
}

// IsAssigned reports whether a carrier holds the order.
func (o *Order) IsAssigned() bool {
	return o.isAssigned
}

// Details returns the shipment, customer, and commercial attributes.
func (o *Order) Details() Details {
	return o.details
}

// PaymentStatus returns the opaque payment marker.
func (o *Order) PaymentStatus() string {
	return o.paymentStatus
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order's line items.
func (o *Order) Items() []*Item {
	return o.items
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setShipperID(shipperID int64) error {
	if shipperID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("shipper_id",
			fmt.Errorf("%d is not a positive identifier", shipperID))
	}
	o.shipperID = shipperID
	return nil
}

func (o *Order) setDetails(d Details) error {
	var errList []error

	required := map[string]string{
		"customer_name":       d.CustomerName,
		"customer_phone":      d.CustomerPhone,
		"pickup_location":     d.PickupLocation,
		"delivery_location":   d.DeliveryLocation,
		"package_description": d.PackageDescription,
	}
	for param, value := range required {
		if value == "" {
			errList = append(errList, errs.NewValueIsRequiredError(param))
		}
	}

	if d.CustomerEmail == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer_email"))
	} else if !strings.Contains(d.CustomerEmail, "@") {
		errList = append(errList, errs.NewValueIsInvalidError("customer_email"))
	}

	if d.Weight <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v is not greater than 0", d.Weight)))
	}
	if d.TotalAmount <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("total_amount",
			fmt.Errorf("%v is not greater than 0", d.TotalAmount)))
	}

	if d.PickupDate.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("pickup_date"))
	}
	if d.DeliveryDeadline.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("delivery_deadline"))
	}
	if !d.PickupDate.IsZero() && !d.DeliveryDeadline.IsZero() && d.DeliveryDeadline.Before(d.PickupDate) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("delivery_deadline",
			errors.New("delivery deadline must not be before pickup date")))
	}

	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.details = d
	return nil
}

func (o *Order) setItems(items []*Item) error {
	for i, item := range items {
		if item == nil {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item %d is nil", i))
		}
	}
	o.items = items
	return nil
}
