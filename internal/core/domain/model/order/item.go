package order

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
)

// Item is a line item owned exclusively by one Order. Items are created
// together with their order in a single creation operation and are never
// added afterwards.
type Item struct {
	id          int64
	productName string
	productSKU  string
	quantity    int
	unitPrice   float64
}

// NewItem creates a validated line item. Quantity must be a positive integer
// and unit price must be greater than zero.
func NewItem(productName, productSKU string, quantity int, unitPrice float64) (*Item, error) {
	item := &Item{}

	if err := errors.Join(
		item.setProductName(productName),
		item.setProductSKU(productSKU),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs a line item from persistence.
func RestoreItem(id int64, productName, productSKU string, quantity int, unitPrice float64) (*Item, error) {
	item, err := NewItem(productName, productSKU, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	item.id = id
	return item, nil
}

// ID returns the item's identifier, zero until persisted.
func (i *Item) ID() int64 {
	return i.id
}

// ProductName returns the product's display name.
func (i *Item) ProductName() string {
	return i.productName
}

// ProductSKU returns the product's stock keeping unit.
func (i *Item) ProductSKU() string {
	return i.productSKU
}

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit.
func (i *Item) UnitPrice() float64 {
	return i.unitPrice
}

func (i *Item) setProductName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product_name")
	}
	i.productName = name
	return nil
}

func (i *Item) setProductSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("product_sku")
	}
	i.productSKU = sku
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(price float64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit_price",
			fmt.Errorf("%v is not greater than 0", price))
	}
	i.unitPrice = price
	return nil
}
