// Package catalog holds the immutable product catalog built at startup.
package catalog

import (
	"math/rand"
	"sort"

	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
)

// Catalog is a read-only collection of brands, categories and products.
// Slices returned by its methods are copies; the nested product slices are
// shared and must not be modified by callers.
type Catalog struct {
	brands     []models.Brand
	categories []models.Category
	products   []models.Product

	byID   map[string]int
	bySlug map[string]int

	minPrice int64
	maxPrice int64
}

// New validates the records and builds a catalog in the given product order
func New(brands []models.Brand, categories []models.Category, products []models.Product) (*Catalog, error) {
	c := &Catalog{
		brands:     append([]models.Brand(nil), brands...),
		categories: append([]models.Category(nil), categories...),
		products:   append([]models.Product(nil), products...),
		byID:       make(map[string]int, len(products)),
		bySlug:     make(map[string]int, len(products)),
	}

	for i, p := range c.products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, models.NewDuplicateProductError("id", p.ID)
		}
		if _, exists := c.bySlug[p.Slug]; exists {
			return nil, models.NewDuplicateProductError("slug", p.Slug)
		}
		c.byID[p.ID] = i
		c.bySlug[p.Slug] = i

		price := pricing.UnitPrice(p)
		if i == 0 || price < c.minPrice {
			c.minPrice = price
		}
		if i == 0 || price > c.maxPrice {
			c.maxPrice = price
		}
	}

	return c, nil
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns all products in catalog order
func (c *Catalog) Products() []models.Product {
	return append([]models.Product(nil), c.products...)
}

// Brands returns all brands
func (c *Catalog) Brands() []models.Brand {
	return append([]models.Brand(nil), c.brands...)
}

// Categories returns all categories
func (c *Catalog) Categories() []models.Category {
	return append([]models.Category(nil), c.categories...)
}

// Brand looks up a brand by id
func (c *Catalog) Brand(id string) (models.Brand, bool) {
	for _, b := range c.brands {
		if b.ID == id {
			return b, true
		}
	}
	return models.Brand{}, false
}

// Category looks up a category by id
func (c *Catalog) Category(id string) (models.Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return models.Category{}, false
}

// ProductByID retrieves a product by id
func (c *Catalog) ProductByID(id string) (models.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, models.NewProductNotFoundError(id)
	}
	return c.products[i], nil
}

// ProductBySlug retrieves a product by slug
func (c *Catalog) ProductBySlug(slug string) (models.Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return models.Product{}, models.NewProductNotFoundError(slug)
	}
	return c.products[i], nil
}

// PriceBounds returns the lowest and highest discounted price
func (c *Catalog) PriceBounds() (min, max int64) {
	return c.minPrice, c.maxPrice
}

// Featured returns the products flagged for priority placement
func (c *Catalog) Featured() []models.Product {
	return c.filter(func(p models.Product) bool { return p.IsFeatured })
}

// SpecialOffers returns the discounted products
func (c *Catalog) SpecialOffers() []models.Product {
	return c.filter(models.Product.HasDiscount)
}

// TotalSavings sums the discount amounts across the special offers
func (c *Catalog) TotalSavings() int64 {
	var total int64
	for _, p := range c.SpecialOffers() {
		total += pricing.Savings(p)
	}
	return total
}

// TopRated returns up to n products by rating, highest first
func (c *Catalog) TopRated(n int) []models.Product {
	out := c.Products()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating() > out[j].Rating()
	})
	return head(out, n)
}

// BestSelling returns up to n products with the lowest stock, a proxy for sales
func (c *Catalog) BestSelling(n int) []models.Product {
	out := c.Products()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StockCount < out[j].StockCount
	})
	return head(out, n)
}

// NewArrivals returns n products picked by a seeded shuffle
func (c *Catalog) NewArrivals(n int, seed int64) []models.Product {
	out := c.Products()
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return head(out, n)
}

// Related returns up to n other products sharing p's brand or category
func (c *Catalog) Related(p models.Product, n int) []models.Product {
	out := c.filter(func(q models.Product) bool {
		return q.ID != p.ID && (q.Category.ID == p.Category.ID || q.Brand.ID == p.Brand.ID)
	})
	return head(out, n)
}

func (c *Catalog) filter(keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func head(products []models.Product, n int) []models.Product {
	if n >= 0 && len(products) > n {
		return products[:n]
	}
	return products
}
