package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsFromPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float32
		expected int
	}{
		{name: "two decimals", price: 14.99, expected: 1499},
		{name: "whole number", price: 25, expected: 2500},
		{name: "third decimal is truncated", price: 19.999, expected: 1999},
		{name: "large price", price: 1499.99, expected: 149999},
		{name: "sub cent is dropped", price: 0.009, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CentsFromPrice(tt.price))
		})
	}
}

func TestProductPriceRoundTrip(t *testing.T) {
	p := &Product{}
	p.SetPrice(14.99)

	assert.Equal(t, 1499, p.PriceCents)
	assert.Equal(t, float32(14.99), p.GetPrice())
}

func TestProductJSON(t *testing.T) {
	description := "Laptop"
	p := Product{
		ID:          uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Name:        "ThinkPad",
		Description: &description,
		PriceCents:  149999,
		Categories:  []string{"Electronics", "Computers"},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", decoded["id"])
	assert.InDelta(t, 1499.99, decoded["price"], 0.001)
	assert.Equal(t, float64(149999), decoded["priceCents"])
	assert.Equal(t, []interface{}{"Electronics", "Computers"}, decoded["categories"])
	assert.NotContains(t, decoded, "PriceCents")
}

func TestOrderAddItem(t *testing.T) {
	order := &Order{ID: uuid.New()}
	productID := uuid.New()

	order.AddItem(&OrderItem{ProductID: productID, Quantity: 2})

	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, order.ID, order.OrderItems[0].OrderID)
	assert.Equal(t, productID, order.OrderItems[0].ProductID)
}

func TestOrderItemJSON(t *testing.T) {
	item := OrderItem{ID: uuid.New(), OrderID: uuid.New(), ProductID: uuid.New(), Quantity: 3, PriceCents: 1500}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(15), decoded["price"])
	assert.Equal(t, float64(3), decoded["quantity"])
	assert.NotContains(t, decoded, "orderId")
}
