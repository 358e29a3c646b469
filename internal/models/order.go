package models

import (
	"time"

	"github.com/google/uuid"
)

// Order owns its items. Deleting an order removes every item with it.
type Order struct {
	ID              uuid.UUID    `json:"id" db:"id"`
	DeliveryAddress string       `json:"deliveryAddress" db:"delivery_address"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	OrderItems      []*OrderItem `json:"orderItems"`
}

// AddItem appends an item and points it back at the order.
func (o *Order) AddItem(item *OrderItem) {
	item.OrderID = o.ID
	o.OrderItems = append(o.OrderItems, item)
}

// OrderItemRequest is one requested line of an order.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the order creation payload.
type OrderRequest struct {
	DeliveryAddress string             `json:"deliveryAddress"`
	Products        []OrderItemRequest `json:"products"`
}

// UpdateOrderRequest changes the delivery address of an existing order.
type UpdateOrderRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
}
