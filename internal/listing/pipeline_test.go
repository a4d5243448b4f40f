package listing

import (
	"net/url"
	"testing"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	kawasaki = models.Brand{ID: "brand-01", Name: "Kawasaki"}
	ducati   = models.Brand{ID: "brand-02", Name: "Ducati"}
	bmw      = models.Brand{ID: "brand-05", Name: "BMW"}
	sport    = models.Category{ID: "category-01", Name: "Sport Bikes"}
	cruiser  = models.Category{ID: "category-02", Name: "Cruiser Bikes"}
	touring  = models.Category{ID: "category-05", Name: "Touring Bikes"}
)

func fixtureProducts() []models.Product {
	return []models.Product{
		{ID: "product-01", Slug: "ninja", Name: "Ninja ZX-10R", Description: "Supersport for the track.", Price: 1599000, Discount: 5,
			Brand: kawasaki, Category: sport, StockCount: 8, IsFeatured: true, Reviews: []models.Review{{Rating: 5}, {Rating: 4}}},
		{ID: "product-02", Slug: "panigale", Name: "Panigale V4", Description: "MotoGP derived.", Price: 2695000,
			Brand: ducati, Category: sport, StockCount: 5, Reviews: []models.Review{{Rating: 5}}},
		{ID: "product-03", Slug: "vulcan", Name: "Vulcan S", Description: "Relaxed cruiser.", Price: 80000,
			Brand: kawasaki, Category: cruiser, StockCount: 12},
		{ID: "product-04", Slug: "diavel", Name: "Diavel", Description: "Power cruiser.", Price: 1800000, Discount: 10,
			Brand: ducati, Category: cruiser, StockCount: 3, IsFeatured: true, Reviews: []models.Review{{Rating: 3}}},
		{ID: "product-05", Slug: "rt", Name: "R 1250 RT", Description: "Long distance comfort.", Price: 2150000,
			Brand: bmw, Category: touring, StockCount: 4, Reviews: []models.Review{{Rating: 4}}},
	}
}

func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]models.Brand{kawasaki, ducati, bmw},
		[]models.Category{sport, cruiser, touring},
		fixtureProducts(),
	)
	require.NoError(t, err)
	return c
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterSearch(t *testing.T) {
	products := fixtureProducts()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "name", search: "ninja", want: []string{"product-01"}},
		{name: "case insensitive", search: "PANIGALE", want: []string{"product-02"}},
		{name: "description", search: "cruiser", want: []string{"product-03", "product-04"}},
		{name: "brand name", search: "ducati", want: []string{"product-02", "product-04"}},
		{name: "category name", search: "touring", want: []string{"product-05"}},
		{name: "no match", search: "scooter", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(products, Query{Search: tt.search})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterEmptySetsAreIdentity(t *testing.T) {
	products := fixtureProducts()

	unfiltered := Filter(products, Query{})
	withEmptySets := Filter(products, Query{Brands: []string{}, Categories: []string{}})

	assert.Equal(t, ids(products), ids(unfiltered))
	assert.Equal(t, ids(unfiltered), ids(withEmptySets))
}

func TestFilterBrandAndCategory(t *testing.T) {
	products := fixtureProducts()

	got := Filter(products, Query{Brands: []string{"brand-01", "brand-05"}})
	assert.Equal(t, []string{"product-01", "product-03", "product-05"}, ids(got))

	got = Filter(products, Query{Brands: []string{"brand-02"}, Categories: []string{"category-02"}})
	assert.Equal(t, []string{"product-04"}, ids(got))
}

func TestFilterPriceUsesDiscountedPrice(t *testing.T) {
	products := fixtureProducts()

	// Diavel lists at 1,800,000 and sells at 1,620,000
	got := Filter(products, Query{Price: &PriceRange{Min: 1600000, Max: 1700000}})
	assert.Equal(t, []string{"product-04"}, ids(got))

	got = Filter(products, Query{Price: &PriceRange{Min: 1519050, Max: 1519050}})
	assert.Equal(t, []string{"product-01"}, ids(got), "bounds are inclusive")
}

func TestFilterDegeneratePriceRange(t *testing.T) {
	products := fixtureProducts()

	got := Filter(products, Query{Price: &PriceRange{Min: 80000, Max: 80000}})
	require.Len(t, got, 1)
	assert.Equal(t, int64(80000), pricing.UnitPrice(got[0]))

	got = Filter(products, Query{Price: &PriceRange{Min: 80001, Max: 80001}})
	assert.Empty(t, got)
}

func TestSortModes(t *testing.T) {
	tests := []struct {
		mode SortMode
		want []string
	}{
		{mode: SortFeatured, want: []string{"product-01", "product-04", "product-02", "product-03", "product-05"}},
		{mode: SortPriceAsc, want: []string{"product-03", "product-01", "product-04", "product-05", "product-02"}},
		{mode: SortPriceDesc, want: []string{"product-02", "product-05", "product-04", "product-01", "product-03"}},
		{mode: SortNewest, want: []string{"product-05", "product-04", "product-03", "product-02", "product-01"}},
		{mode: SortRating, want: []string{"product-02", "product-01", "product-05", "product-04", "product-03"}},
		{mode: SortMode("bogus"), want: []string{"product-01", "product-04", "product-02", "product-03", "product-05"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			products := fixtureProducts()
			Sort(products, tt.mode)
			assert.Equal(t, tt.want, ids(products))
		})
	}
}

func TestPriceSortsAreReversed(t *testing.T) {
	asc := fixtureProducts()
	desc := fixtureProducts()
	Sort(asc, SortPriceAsc)
	Sort(desc, SortPriceDesc)

	reversed := ids(desc)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	assert.Equal(t, ids(asc), reversed)
}

func TestPaginate(t *testing.T) {
	products := fixtureProducts()

	assert.Equal(t, []string{"product-01", "product-02"}, ids(Paginate(products, 1, 2)))
	assert.Equal(t, []string{"product-05"}, ids(Paginate(products, 3, 2)))
	assert.Empty(t, Paginate(products, 4, 2))
	assert.Empty(t, Paginate(products, 0, 2))
}

func TestApply(t *testing.T) {
	res := Apply(fixtureProducts(), Query{Categories: []string{"category-01", "category-02"}, Sort: SortPriceAsc, Page: 2}, 3)

	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, []string{"product-02"}, ids(res.Products))
	assert.False(t, res.NoResults)

	empty := Apply(fixtureProducts(), Query{Search: "scooter"}, 3)
	assert.True(t, empty.NoResults)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Products)
	assert.Equal(t, 1, empty.Page)
}

func TestParseNavigation(t *testing.T) {
	values := url.Values{
		"category": {"category-01"},
		"brand":    {"brand-02"},
		"search":   {"v4"},
		"sort":     {"price_desc"},
		"page":     {"3"},
	}

	nav := ParseNavigation(values)
	assert.Equal(t, NavigationParams{Category: "category-01", Brand: "brand-02", Search: "v4"}, nav)

	q := nav.Query()
	assert.Equal(t, SortFeatured, q.Sort)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, []string{"brand-02"}, q.Brands)
	assert.Equal(t, []string{"category-01"}, q.Categories)

	assert.Empty(t, NavigationParams{}.Query().Brands)
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortRating, ParseSortMode("rating"))
	assert.Equal(t, SortFeatured, ParseSortMode(""))
	assert.Equal(t, SortFeatured, ParseSortMode("cheapest"))
}

func TestCountLabel(t *testing.T) {
	assert.Equal(t, "0 products found", CountLabel(0))
	assert.Equal(t, "1 product found", CountLabel(1))
	assert.Equal(t, "12 products found", CountLabel(12))
}
