package service

import (
	"context"

	"storefront-service/internal/catalog"
	"storefront-service/internal/listing"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

const (
	highlightSize = 6
	relatedSize   = 4
)

// ProductDetail is a product with its derived display fields
type ProductDetail struct {
	Product    models.Product   `json:"product"`
	UnitPrice  int64            `json:"unitPrice"`
	Savings    int64            `json:"savings"`
	Rating     float64          `json:"rating"`
	StockLevel string           `json:"stockLevel"`
	Related    []models.Product `json:"related"`
}

// Home is the landing page selection
type Home struct {
	Featured    []models.Product  `json:"featured"`
	TopRated    []models.Product  `json:"topRated"`
	BestSelling []models.Product  `json:"bestSelling"`
	NewArrivals []models.Product  `json:"newArrivals"`
	Brands      []models.Brand    `json:"brands"`
	Categories  []models.Category `json:"categories"`
}

// Offers is the discounted product selection
type Offers struct {
	Products     []models.Product `json:"products"`
	TotalSavings int64            `json:"totalSavings"`
}

// Listing is one page of products with its header
type Listing struct {
	listing.Result
	Title      string             `json:"title"`
	CountLabel string             `json:"countLabel"`
	Query      listing.Query      `json:"query"`
	Bounds     listing.PriceRange `json:"bounds"`
}

// CatalogService serves read-only catalog views
type CatalogService struct {
	catalog      *catalog.Catalog
	pageSize     int
	arrivalsSeed int64
	logger       *zap.Logger
}

func NewCatalogService(c *catalog.Catalog, pageSize int, arrivalsSeed int64) *CatalogService {
	if pageSize <= 0 {
		pageSize = listing.DefaultPageSize
	}
	return &CatalogService{
		catalog:      c,
		pageSize:     pageSize,
		arrivalsSeed: arrivalsSeed,
		logger:       util.GetLogger(),
	}
}

// Catalog returns the underlying catalog
func (s *CatalogService) Catalog() *catalog.Catalog {
	return s.catalog
}

// PageSize is the listing page size
func (s *CatalogService) PageSize() int {
	return s.pageSize
}

// NewView opens a stateful listing seeded from navigation parameters
func (s *CatalogService) NewView(nav listing.NavigationParams) *listing.View {
	return listing.NewView(s.catalog, nav, s.pageSize)
}

// Browse seeds a view from nav, applies the overrides in q and returns the
// requested page. Non-nil brand or category lists in q replace the seeded
// selection, an empty list clears it. A nil price range keeps the catalog
// bounds.
func (s *CatalogService) Browse(ctx context.Context, nav listing.NavigationParams, q *listing.Query) Listing {
	_, span := util.StartSpan(ctx, "CatalogService.Browse")
	defer span.End()

	v := s.NewView(nav)
	page := 1
	if q != nil {
		if q.Search != "" {
			v.SetSearch(q.Search)
		}
		if q.Brands != nil {
			v.SetBrands(q.Brands)
		}
		if q.Categories != nil {
			v.SetCategories(q.Categories)
		}
		if q.Price != nil {
			v.SetPriceRange(q.Price.Min, q.Price.Max)
		}
		v.SetSort(listing.ParseSortMode(string(q.Sort)))
		page = q.Page
	}
	v.SetPage(page)

	result := v.Result()
	util.CatalogQueriesTotal.WithLabelValues(string(v.Query().Sort)).Inc()
	util.CatalogQueryResults.Observe(float64(result.Total))

	return Listing{
		Result:     result,
		Title:      v.Title(),
		CountLabel: listing.CountLabel(result.Total),
		Query:      v.Query(),
		Bounds:     v.Bounds(),
	}
}

// ProductDetail looks a product up by slug
func (s *CatalogService) ProductDetail(ctx context.Context, slug string) (*ProductDetail, error) {
	_, span := util.StartSpan(ctx, "CatalogService.ProductDetail")
	defer span.End()

	p, err := s.catalog.ProductBySlug(slug)
	if err != nil {
		s.logger.Debug("Product lookup failed", zap.String("slug", slug))
		return nil, err
	}
	return &ProductDetail{
		Product:    p,
		UnitPrice:  pricing.UnitPrice(p),
		Savings:    pricing.Savings(p),
		Rating:     p.Rating(),
		StockLevel: p.StockLevel(),
		Related:    s.catalog.Related(p, relatedSize),
	}, nil
}

// Home returns the landing page highlights
func (s *CatalogService) Home(ctx context.Context) Home {
	_, span := util.StartSpan(ctx, "CatalogService.Home")
	defer span.End()

	return Home{
		Featured:    s.catalog.Featured(),
		TopRated:    s.catalog.TopRated(highlightSize),
		BestSelling: s.catalog.BestSelling(highlightSize),
		NewArrivals: s.catalog.NewArrivals(highlightSize, s.arrivalsSeed),
		Brands:      s.catalog.Brands(),
		Categories:  s.catalog.Categories(),
	}
}

// Offers returns the discounted products and their combined savings
func (s *CatalogService) Offers(ctx context.Context) Offers {
	_, span := util.StartSpan(ctx, "CatalogService.Offers")
	defer span.End()

	return Offers{
		Products:     s.catalog.SpecialOffers(),
		TotalSavings: s.catalog.TotalSavings(),
	}
}
