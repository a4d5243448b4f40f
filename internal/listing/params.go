package listing

import (
	"fmt"
	"net/url"
)

// NavigationParams seed a listing from the page address. Only category,
// brand and search are recognised.
type NavigationParams struct {
	Category string `form:"category"`
	Brand    string `form:"brand"`
	Search   string `form:"search"`
}

// ParseNavigation reads the recognised parameters and ignores the rest
func ParseNavigation(values url.Values) NavigationParams {
	return NavigationParams{
		Category: values.Get("category"),
		Brand:    values.Get("brand"),
		Search:   values.Get("search"),
	}
}

// Query converts the parameters into an initial query
func (n NavigationParams) Query() Query {
	q := Query{Search: n.Search, Sort: SortFeatured, Page: 1}
	if n.Brand != "" {
		q.Brands = []string{n.Brand}
	}
	if n.Category != "" {
		q.Categories = []string{n.Category}
	}
	return q
}

// CountLabel renders "N products found"
func CountLabel(total int) string {
	if total == 1 {
		return "1 product found"
	}
	return fmt.Sprintf("%d products found", total)
}
