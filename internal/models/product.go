package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Product is a record in the product directory. Price is held in minor units (cents).
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	PriceCents  int       `json:"-" db:"price"`
	Categories  []string  `json:"categories" db:"categories"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// SetPrice stores a major unit price as cents. The conversion truncates and is not reversible.
func (p *Product) SetPrice(price float32) {
	p.PriceCents = CentsFromPrice(price)
}

// GetPrice returns the price in major units.
func (p *Product) GetPrice() float32 {
	return PriceFromCents(p.PriceCents)
}

type productJSON struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float32   `json:"price"`
	PriceCents  int       `json:"priceCents"`
	Categories  []string  `json:"categories"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MarshalJSON renders the price in major units for display and as exact cents for the order
// service, which copies priceCents into order items unchanged.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.GetPrice(),
		PriceCents:  p.PriceCents,
		Categories:  p.Categories,
		CreatedAt:   p.CreatedAt,
	})
}

// ProductRequest is the create/update payload. Nil fields are left untouched on update.
type ProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float32  `json:"price"`
	Categories  *[]string `json:"categories"`
}
