package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Brand is a motorcycle manufacturer
type Brand struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

// Category groups products by riding style
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Image is a product picture
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Review is a single customer review
type Review struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
}

// Product represents a motorcycle in the catalog.
// Prices are integers in the smallest currency unit.
type Product struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	Description    string         `json:"description"`
	Features       []string       `json:"features"`
	Price          int64          `json:"price"`
	Discount       int            `json:"discount,omitempty"`
	Images         []Image        `json:"images"`
	Brand          Brand          `json:"brand"`
	Category       Category       `json:"category"`
	Specifications Specifications `json:"specifications"`
	StockCount     int            `json:"stockCount"`
	Reviews        []Review       `json:"reviews"`
	IsFeatured     bool           `json:"isFeatured,omitempty"`
}

// Stock level labels
const (
	StockLevelInStock    = "In Stock"
	StockLevelOutOfStock = "Out of Stock"
)

// HasDiscount reports whether a percent discount applies
func (p Product) HasDiscount() bool {
	return p.Discount > 0
}

// Rating is the mean review rating rounded to one decimal, 0 without reviews.
func (p Product) Rating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(p.Reviews))
	return math.Round(mean*10) / 10
}

// StockLevel returns a display label for the stock count
func (p Product) StockLevel() string {
	switch {
	case p.StockCount > 10:
		return StockLevelInStock
	case p.StockCount > 0:
		return fmt.Sprintf("Only %d left", p.StockCount)
	default:
		return StockLevelOutOfStock
	}
}

// Validate checks the static constraints of a product record
func (p Product) Validate() error {
	if p.ID == "" {
		return NewInvalidProductError("id", "cannot be empty", p.ID)
	}
	if p.Slug == "" {
		return NewInvalidProductError("slug", "cannot be empty", p.Slug)
	}
	if p.Price <= 0 {
		return NewInvalidProductError("price", "must be positive", p.Price)
	}
	if p.Discount < 0 || p.Discount > 100 {
		return NewInvalidProductError("discount", "must be between 0 and 100", p.Discount)
	}
	if p.StockCount < 0 {
		return NewInvalidProductError("stockCount", "must be non-negative", p.StockCount)
	}
	for _, r := range p.Reviews {
		if r.Rating < 1 || r.Rating > 5 {
			return NewInvalidProductError("reviews.rating", "must be between 1 and 5", r.Rating)
		}
	}
	return nil
}

type productAlias Product

// MarshalJSON adds the derived rating to the encoded product.
// The rating is never decoded back; it is always recomputed from reviews.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		productAlias
		Rating float64 `json:"rating"`
	}{
		productAlias: productAlias(p),
		Rating:       p.Rating(),
	})
}
