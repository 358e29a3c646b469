package models

// MaxPriceCents is the upper bound for a stored price.
const MaxPriceCents = 100000000

// CentsFromPrice converts a major unit price to cents, truncating toward zero.
// 14.99 becomes 1499 and 19.999 becomes 1999.
func CentsFromPrice(price float32) int {
	return int(float32(price * 100))
}

// PriceFromCents converts cents back to a major unit price.
func PriceFromCents(cents int) float32 {
	return float32(cents) / 100
}
