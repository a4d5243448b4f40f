package catalog

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"storefront-service/internal/models"
)

// TargetSize is the number of products a generated catalog holds
const TargetSize = 70

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	slugStripRe  = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify lowercases name, joins words with dashes and drops other symbols
func Slugify(name string) string {
	slug := whitespaceRe.ReplaceAllString(strings.ToLower(name), "-")
	return slugStripRe.ReplaceAllString(slug, "")
}

// Generator builds a pseudo-random catalog. The same seed and clock always
// produce the same catalog.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator creates a generator; now anchors the review dates
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// Generate builds a catalog with the given seed, anchored at the current time
func Generate(seed int64) (*Catalog, error) {
	return NewGenerator(seed, time.Now()).Generate()
}

// Generate produces the fixed showcase products followed by generated ones up
// to TargetSize.
func (g *Generator) Generate() (*Catalog, error) {
	products := g.showcaseProducts()

	used := make(map[string]bool, TargetSize)
	for _, p := range products {
		used[p.Slug] = true
	}

	for _, n := range g.productNames() {
		if len(products) >= TargetSize {
			break
		}
		slug := Slugify(n.name)
		if used[slug] {
			continue
		}
		used[slug] = true
		products = append(products, g.generatedProduct(len(products)+1, n.name, slug, n.brand))
	}

	return New(defaultBrands, defaultCategories, products)
}

type productName struct {
	name  string
	brand models.Brand
}

// productNames returns every brand/model/suffix combination in shuffled order
func (g *Generator) productNames() []productName {
	names := make([]productName, 0, len(defaultBrands)*len(modelNames)*len(modelSuffixes))
	for _, b := range defaultBrands {
		for _, m := range modelNames {
			for _, s := range modelSuffixes {
				names = append(names, productName{name: fmt.Sprintf("%s %s %s", b.Name, m, s), brand: b})
			}
		}
	}
	g.rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	return names
}

func (g *Generator) generatedProduct(seq int, name, slug string, brand models.Brand) models.Product {
	categoryIndex := g.rng.Intn(len(defaultCategories))
	typeIndex := categoryIndex
	if typeIndex > len(bikeTypeImages)-1 {
		typeIndex = len(bikeTypeImages) - 1
	}
	images := bikeTypeImages[typeIndex]

	price := int64(80000 + g.rng.Intn(2920000))
	stock := 1 + g.rng.Intn(20)

	discount := 0
	if g.rng.Float64() > 0.7 {
		discount = 2 + g.rng.Intn(10)
	}

	reviews := g.reviews(g.rng.Intn(16))

	engine := engineSizes[g.rng.Intn(len(engineSizes))]
	features := []string{
		engine + " engine",
		"LED lighting",
		"Digital instrument cluster",
		"ABS braking system",
	}
	extra := append([]string(nil), additionalFeatures...)
	g.rng.Shuffle(len(extra), func(i, j int) { extra[i], extra[j] = extra[j], extra[i] })
	features = append(features, extra[:1+g.rng.Intn(4)]...)

	cooling := "air"
	if g.rng.Float64() > 0.5 {
		cooling = "liquid"
	}

	id := fmt.Sprintf("%02d", seq)

	return models.Product{
		ID:          "product-" + id,
		Name:        name,
		Slug:        slug,
		Description: fmt.Sprintf("The %s is a high-performance motorcycle designed for enthusiasts who demand the best in technology and riding experience.", name),
		Features:    features,
		Price:       price,
		Discount:    discount,
		Images: []models.Image{
			{ID: "img-" + id + "-01", URL: images[g.rng.Intn(len(images))], Alt: name + " Front View"},
			{ID: "img-" + id + "-02", URL: images[g.rng.Intn(len(images))], Alt: name + " Side View"},
		},
		Brand:    brand,
		Category: defaultCategories[categoryIndex],
		Specifications: models.Specifications{
			{Key: "Engine", Value: fmt.Sprintf("%s, %s-cooled", engine, cooling)},
			{Key: "Power", Value: fmt.Sprintf("%d PS @ %d,%d00 rpm", 20+g.rng.Intn(180), 6+g.rng.Intn(8), g.rng.Intn(10))},
			{Key: "Torque", Value: fmt.Sprintf("%d Nm @ %d,%d00 rpm", 20+g.rng.Intn(120), 3+g.rng.Intn(8), g.rng.Intn(10))},
			{Key: "Transmission", Value: fmt.Sprintf("%d-speed", 5+g.rng.Intn(2))},
			{Key: "Weight", Value: fmt.Sprintf("%d kg", 130+g.rng.Intn(180))},
			{Key: "Fuel Capacity", Value: fmt.Sprintf("%d liters", 10+g.rng.Intn(20))},
		},
		StockCount: stock,
		Reviews:    reviews,
		IsFeatured: g.rng.Float64() > 0.9,
	}
}

func (g *Generator) reviews(count int) []models.Review {
	reviews := make([]models.Review, 0, count)
	for i := 0; i < count; i++ {
		rating := 3 + g.rng.Intn(3)
		comment := "Great bike! Very satisfied with the performance."
		if rating == 5 {
			comment = "Great bike! Absolutely love it!"
		}
		age := time.Duration(g.rng.Int63n(10000000000)) * time.Millisecond
		reviews = append(reviews, models.Review{
			ID:       "review-" + g.token(9),
			UserName: reviewerNames[g.rng.Intn(len(reviewerNames))],
			Rating:   rating,
			Comment:  comment,
			Date:     g.now.Add(-age).Format("2006-01-02"),
		})
	}
	return reviews
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func (g *Generator) token(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[g.rng.Intn(len(base36))]
	}
	return string(b)
}
