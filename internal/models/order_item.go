package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// OrderItem is a line of an order. PriceCents is the product price captured when the
// order was created and is never refreshed from the product directory.
type OrderItem struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OrderID    uuid.UUID `json:"-" db:"order_id"`
	ProductID  uuid.UUID `json:"productId" db:"product_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	PriceCents int       `json:"-" db:"price"`
}

// GetPrice returns the captured price in major units.
func (i *OrderItem) GetPrice() float32 {
	return PriceFromCents(i.PriceCents)
}

func (i OrderItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        uuid.UUID `json:"id"`
		ProductID uuid.UUID `json:"productId"`
		Quantity  int       `json:"quantity"`
		Price     float32   `json:"price"`
	}{
		ID:        i.ID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		Price:     i.GetPrice(),
	})
}
