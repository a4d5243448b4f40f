package listing

import (
	"fmt"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
)

// View owns the ephemeral filter state of a product listing page. Every
// change to the search text, brand set, category set, price range or sort
// mode re-runs the pipeline and resets the page to 1.
type View struct {
	catalog  *catalog.Catalog
	nav      NavigationParams
	pageSize int
	bounds   PriceRange

	query    Query
	filtered []models.Product
}

// NewView builds a view seeded from the navigation parameters. The price
// range starts at the catalog's discounted price bounds.
func NewView(c *catalog.Catalog, nav NavigationParams, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	min, max := c.PriceBounds()

	v := &View{
		catalog:  c,
		nav:      nav,
		pageSize: pageSize,
		bounds:   PriceRange{Min: min, Max: max},
		query:    nav.Query(),
	}
	v.query.Price = &PriceRange{Min: min, Max: max}
	v.recompute()
	return v
}

// Query returns a copy of the current query
func (v *View) Query() Query {
	q := v.query
	q.Brands = append([]string(nil), v.query.Brands...)
	q.Categories = append([]string(nil), v.query.Categories...)
	if v.query.Price != nil {
		r := *v.query.Price
		q.Price = &r
	}
	return q
}

// Bounds returns the catalog price bounds
func (v *View) Bounds() PriceRange {
	return v.bounds
}

// SetSearch replaces the search text
func (v *View) SetSearch(text string) {
	v.query.Search = text
	v.recompute()
}

// ToggleBrand adds or removes a brand from the selection
func (v *View) ToggleBrand(id string) {
	v.query.Brands = toggle(v.query.Brands, id)
	v.recompute()
}

// ToggleCategory adds or removes a category from the selection
func (v *View) ToggleCategory(id string) {
	v.query.Categories = toggle(v.query.Categories, id)
	v.recompute()
}

// SetBrands replaces the brand selection; duplicates are dropped
func (v *View) SetBrands(ids []string) {
	v.query.Brands = dedupe(ids)
	v.recompute()
}

// SetCategories replaces the category selection; duplicates are dropped
func (v *View) SetCategories(ids []string) {
	v.query.Categories = dedupe(ids)
	v.recompute()
}

// SetPriceRange replaces the price range; bounds are swapped if reversed
func (v *View) SetPriceRange(min, max int64) {
	if min > max {
		min, max = max, min
	}
	v.query.Price = &PriceRange{Min: min, Max: max}
	v.recompute()
}

// SetSort changes the sort mode
func (v *View) SetSort(mode SortMode) {
	v.query.Sort = ParseSortMode(string(mode))
	v.recompute()
}

// ClearFilters drops brand and category selections, resets the price range
// to the catalog bounds and sorts by featured. The search text is kept.
func (v *View) ClearFilters() {
	v.query.Brands = nil
	v.query.Categories = nil
	v.query.Price = &PriceRange{Min: v.bounds.Min, Max: v.bounds.Max}
	v.query.Sort = SortFeatured
	v.recompute()
}

// SetPage moves to page without re-filtering
func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if pages := v.TotalPages(); pages > 0 && page > pages {
		page = pages
	}
	v.query.Page = page
}

// Page returns the current page number
func (v *View) Page() int {
	return v.query.Page
}

// TotalPages returns the number of pages in the filtered set
func (v *View) TotalPages() int {
	return (len(v.filtered) + v.pageSize - 1) / v.pageSize
}

// Result returns the current page
func (v *View) Result() Result {
	return NewResult(v.filtered, v.query.Page, v.pageSize)
}

// Title describes the listing from the navigation parameters
func (v *View) Title() string {
	switch {
	case v.nav.Search != "":
		return fmt.Sprintf("Search Results for %q", v.nav.Search)
	case v.nav.Category != "":
		if c, ok := v.catalog.Category(v.nav.Category); ok {
			return c.Name
		}
		return "Products"
	case v.nav.Brand != "":
		if b, ok := v.catalog.Brand(v.nav.Brand); ok {
			return b.Name
		}
		return "Products"
	default:
		return "All Superbikes"
	}
}

func (v *View) recompute() {
	v.filtered = Filter(v.catalog.Products(), v.query)
	Sort(v.filtered, v.query.Sort)
	v.query.Page = 1
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func toggle(set []string, id string) []string {
	out := make([]string, 0, len(set)+1)
	found := false
	for _, s := range set {
		if s == id {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, id)
	}
	return out
}
