// Package listing filters, sorts and paginates catalog products.
package listing

import (
	"sort"
	"strings"

	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
)

// SortMode orders a listing
type SortMode string

const (
	SortFeatured  SortMode = "featured"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortNewest    SortMode = "newest"
	SortRating    SortMode = "rating"
)

// DefaultPageSize is the number of products per page
const DefaultPageSize = 12

// SortModes lists the supported modes in display order
var SortModes = []SortMode{SortFeatured, SortPriceAsc, SortPriceDesc, SortNewest, SortRating}

// ParseSortMode maps s to a sort mode; anything unknown sorts as featured
func ParseSortMode(s string) SortMode {
	m := SortMode(s)
	if m.Valid() {
		return m
	}
	return SortFeatured
}

// Valid reports whether m is a supported mode
func (m SortMode) Valid() bool {
	for _, s := range SortModes {
		if m == s {
			return true
		}
	}
	return false
}

// PriceRange is an inclusive range on the discounted price
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains reports whether price lies within the range
func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// Query describes one listing request. Empty brand or category sets do not
// filter; a nil price range does not filter.
type Query struct {
	Search     string      `json:"search"`
	Brands     []string    `json:"brands"`
	Categories []string    `json:"categories"`
	Price      *PriceRange `json:"price,omitempty"`
	Sort       SortMode    `json:"sort"`
	Page       int         `json:"page"`
}

// Result is one page of a listing
type Result struct {
	Products   []models.Product `json:"products"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	NoResults  bool             `json:"noResults"`
}

// Apply runs the whole pipeline over products
func Apply(products []models.Product, q Query, pageSize int) Result {
	filtered := Filter(products, q)
	Sort(filtered, q.Sort)
	return NewResult(filtered, q.Page, pageSize)
}

// Filter keeps the products matching the search text, brand set, category
// set and price range of q, preserving their order.
func Filter(products []models.Product, q Query) []models.Product {
	search := strings.ToLower(q.Search)
	brands := toSet(q.Brands)
	categories := toSet(q.Categories)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if len(brands) > 0 && !brands[p.Brand.ID] {
			continue
		}
		if len(categories) > 0 && !categories[p.Category.ID] {
			continue
		}
		if q.Price != nil && !q.Price.Contains(pricing.UnitPrice(p)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p models.Product, lowered string) bool {
	for _, field := range []string{p.Name, p.Description, p.Brand.Name, p.Category.Name} {
		if strings.Contains(strings.ToLower(field), lowered) {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Sort orders products in place. All modes are stable.
func Sort(products []models.Product, mode SortMode) {
	var less func(a, b models.Product) bool

	switch ParseSortMode(string(mode)) {
	case SortPriceAsc:
		less = func(a, b models.Product) bool { return pricing.UnitPrice(a) < pricing.UnitPrice(b) }
	case SortPriceDesc:
		less = func(a, b models.Product) bool { return pricing.UnitPrice(a) > pricing.UnitPrice(b) }
	case SortNewest:
		// ids stand in for recency
		less = func(a, b models.Product) bool { return a.ID > b.ID }
	case SortRating:
		less = func(a, b models.Product) bool { return a.Rating() > b.Rating() }
	default:
		less = func(a, b models.Product) bool { return a.IsFeatured && !b.IsFeatured }
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}

// NewResult slices page out of an already filtered and sorted list
func NewResult(sorted []models.Product, page, pageSize int) Result {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(sorted)
	return Result{
		Products:   Paginate(sorted, page, pageSize),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
		NoResults:  total == 0,
	}
}

// Paginate returns [(page-1)*size, page*size) of products, empty past the end
func Paginate(products []models.Product, page, size int) []models.Product {
	if page < 1 || size <= 0 {
		return []models.Product{}
	}
	start := (page - 1) * size
	if start >= len(products) {
		return []models.Product{}
	}
	end := start + size
	if end > len(products) {
		end = len(products)
	}
	return append([]models.Product(nil), products[start:end]...)
}
