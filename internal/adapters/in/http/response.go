package http

import (
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/order"
)

// orderToResponse renders a domain aggregate in the same shape the read side
// returns, so command and query responses are indistinguishable to clients.
func orderToResponse(o *order.Order) queries.OrderResponse {
	details := o.Details()

	items := make([]queries.OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, queries.OrderItemResponse{
			ID:          item.ID(),
			ProductName: item.ProductName(),
			ProductSKU:  item.ProductSKU(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
		})
	}

	return queries.OrderResponse{
		ID:                 o.ID(),
		OrderNumber:        o.OrderNumber(),
		TrackingNumber:     o.TrackingNumber(),
		ShipperID:          o.ShipperID(),
		CarrierID:          o.CarrierID(),
		IsAssigned:         o.IsAssigned(),
		Status:             o.Status().String(),
		CustomerName:       details.CustomerName,
		CustomerEmail:      details.CustomerEmail,
		CustomerPhone:      details.CustomerPhone,
		PickupLocation:     details.PickupLocation,
		DeliveryLocation:   details.DeliveryLocation,
		PickupDate:         details.PickupDate,
		DeliveryDeadline:   details.DeliveryDeadline,
		PackageDescription: details.PackageDescription,
		Weight:             details.Weight,
		Dimensions:         details.Dimensions,
		TotalAmount:        details.TotalAmount,
		Notes:              details.Notes,
		PaymentStatus:      o.PaymentStatus(),
		Items:              items,
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}
}
