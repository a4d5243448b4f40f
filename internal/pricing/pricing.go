// Package pricing computes discounted prices and order totals.
// All amounts are integers in the smallest currency unit.
package pricing

import "storefront-service/internal/models"

// Default business constants
const (
	DefaultTaxPercent            int64 = 18
	DefaultShippingFee           int64 = 1500
	DefaultFreeShippingThreshold int64 = 50000
)

// DiscountedPrice returns round(price - price*discount/100), rounding half up.
func DiscountedPrice(price int64, discountPercent int) int64 {
	if discountPercent <= 0 {
		return price
	}
	return roundPercent(price, 100-int64(discountPercent))
}

// UnitPrice returns the price a customer pays for one unit of p
func UnitPrice(p models.Product) int64 {
	return DiscountedPrice(p.Price, p.Discount)
}

// LineTotal returns the unit price times quantity for a cart line
func LineTotal(item models.CartItem) int64 {
	return UnitPrice(item.Product) * int64(item.Quantity)
}

// Subtotal sums the line totals of items
func Subtotal(items []models.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += LineTotal(item)
	}
	return total
}

// ItemCount sums the quantities of items
func ItemCount(items []models.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Savings returns the amount knocked off the list price of p
func Savings(p models.Product) int64 {
	return p.Price - UnitPrice(p)
}

// roundPercent returns round(amount*percent/100) for non-negative amounts.
func roundPercent(amount, percent int64) int64 {
	return (amount*percent + 50) / 100
}

// Calculator applies the tax and shipping rules
type Calculator struct {
	TaxPercent            int64
	ShippingFee           int64
	FreeShippingThreshold int64
}

// NewCalculator returns a calculator with the default business constants
func NewCalculator() *Calculator {
	return &Calculator{
		TaxPercent:            DefaultTaxPercent,
		ShippingFee:           DefaultShippingFee,
		FreeShippingThreshold: DefaultFreeShippingThreshold,
	}
}

// Tax returns TaxPercent of subtotal, rounded half up
func (c *Calculator) Tax(subtotal int64) int64 {
	return roundPercent(subtotal, c.TaxPercent)
}

// Shipping is free strictly above the threshold
func (c *Calculator) Shipping(subtotal int64) int64 {
	if subtotal > c.FreeShippingThreshold {
		return 0
	}
	return c.ShippingFee
}

// GrandTotal returns subtotal + tax + shipping
func (c *Calculator) GrandTotal(subtotal int64) int64 {
	return subtotal + c.Tax(subtotal) + c.Shipping(subtotal)
}

// Summary is the priced view of a cart
type Summary struct {
	ItemCount  int   `json:"itemCount"`
	Subtotal   int64 `json:"subtotal"`
	Tax        int64 `json:"tax"`
	Shipping   int64 `json:"shipping"`
	GrandTotal int64 `json:"grandTotal"`
}

// Summarize prices a list of cart items
func (c *Calculator) Summarize(items []models.CartItem) Summary {
	subtotal := Subtotal(items)
	return Summary{
		ItemCount:  ItemCount(items),
		Subtotal:   subtotal,
		Tax:        c.Tax(subtotal),
		Shipping:   c.Shipping(subtotal),
		GrandTotal: c.GrandTotal(subtotal),
	}
}
