package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/pricing"
	"storefront-service/internal/service"
	"storefront-service/internal/store"
	"storefront-service/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	kawasaki = models.Brand{ID: "brand-01", Name: "Kawasaki"}
	ducati   = models.Brand{ID: "brand-02", Name: "Ducati"}
	sport    = models.Category{ID: "category-01", Name: "Sport Bikes"}

	ninja   = models.Product{ID: "product-01", Slug: "kawasaki-ninja", Name: "Kawasaki Ninja", Price: 40000, Brand: kawasaki, Category: sport, StockCount: 3}
	monster = models.Product{ID: "product-02", Slug: "ducati-monster", Name: "Ducati Monster", Price: 100000, Discount: 10, Brand: ducati, Category: sport, StockCount: 12}
)

type testServer struct {
	router *gin.Engine
	kv     *store.MemoryStore
	cart   *cart.Manager
}

func newTestServer(t *testing.T, ready ReadinessFunc) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.New([]models.Brand{kawasaki, ducati}, []models.Category{sport}, []models.Product{ninja, monster})
	require.NoError(t, err)

	kv := store.NewMemoryStore()
	notes := notify.NewBuffer(10)
	scheduler := worker.NewScheduler()
	t.Cleanup(scheduler.Stop)

	manager := cart.NewManager(context.Background(), kv, cart.DefaultKey, notes)
	calc := pricing.NewCalculator()

	h := NewHandler(
		service.NewCatalogService(cat, 12, 1),
		service.NewCartService(manager, cat, calc, scheduler, 0, 0),
		service.NewCheckoutService(manager, calc, scheduler, service.NewOrderContexts(0), notes,
			service.WithCheckoutDelay(0)),
		notes,
		ready,
	)
	router := gin.New()
	h.SetupRoutes(router)
	return &testServer{router: router, kv: kv, cart: manager}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/ready", nil).Code)

	failing := newTestServer(t, func(context.Context) error { return errors.New("redis down") })
	assert.Equal(t, http.StatusServiceUnavailable, failing.do(t, http.MethodGet, "/ready", nil).Code)
}

func TestListProductsUsesNavigationParams(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/api/v1/products?brand=brand-02&sort=price_asc&page=9", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total    int              `json:"total"`
		Page     int              `json:"page"`
		Title    string           `json:"title"`
		Products []models.Product `json:"products"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Page, "page is not a navigation parameter")
	assert.Equal(t, "Ducati", resp.Title)
	assert.Equal(t, "product-02", resp.Products[0].ID)
}

func TestSearchProducts(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/v1/products/search", gin.H{
		"query": gin.H{"sort": "price_desc", "price": gin.H{"min": 40000, "max": 90000}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total    int              `json:"total"`
		Products []models.Product `json:"products"`
	}
	decode(t, w, &resp)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "product-02", resp.Products[0].ID)
}

func TestGetProduct(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/api/v1/products/kawasaki-ninja", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		StockLevel string           `json:"stockLevel"`
		Related    []models.Product `json:"related"`
	}
	decode(t, w, &detail)
	assert.Equal(t, "Only 3 left", detail.StockLevel)
	assert.Len(t, detail.Related, 1)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/products/nope", nil).Code)
}

func TestCartLifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "product-01", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	var view service.CartView
	decode(t, w, &view)
	assert.Equal(t, 2, view.Summary.ItemCount)
	assert.Equal(t, int64(80000), view.Summary.Subtotal)

	assert.Equal(t, http.StatusConflict,
		s.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "product-01", "quantity": 2}).Code)
	assert.Equal(t, http.StatusBadRequest,
		s.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "product-01", "quantity": 0}).Code)
	assert.Equal(t, http.StatusNotFound,
		s.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "product-99", "quantity": 1}).Code)
	assert.Equal(t, http.StatusBadRequest,
		s.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"quantity": 1}).Code)

	w = s.do(t, http.MethodPut, "/api/v1/cart/items/product-01", gin.H{"quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &view)
	assert.Equal(t, 1, view.Items[0].Quantity)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/api/v1/cart/items/product-01", gin.H{}).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/api/v1/cart/items/product-02", gin.H{"quantity": 1}).Code)

	w = s.do(t, http.MethodDelete, "/api/v1/cart/items/product-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &view)
	assert.Empty(t, view.Items)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/v1/cart", nil).Code)
	assert.True(t, s.cart.IsEmpty())
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t, nil)
	form := gin.H{
		"firstName": "Asha", "lastName": "Rao", "email": "asha@example.com",
		"phone": "9876543210", "address": "12 MG Road", "city": "Pune",
		"state": "MH", "pincode": "411001", "paymentMethod": "cod",
	}

	w := s.do(t, http.MethodPost, "/api/v1/checkout", form)
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty cart")

	require.Equal(t, http.StatusOK,
		s.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "product-02", "quantity": 1}).Code)

	bad := gin.H{"firstName": "A"}
	w = s.do(t, http.MethodPost, "/api/v1/checkout", bad)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var verr struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, w, &verr)
	assert.Equal(t, "First name must be at least 2 characters", verr.Fields["firstName"])

	w = s.do(t, http.MethodPost, "/api/v1/checkout", form)
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		Token           string `json:"token"`
		Reference       string `json:"reference"`
		ConfirmationURL string `json:"confirmationUrl"`
	}
	decode(t, w, &placed)
	assert.Regexp(t, `^ORD\d{6}$`, placed.Reference)
	assert.True(t, s.cart.IsEmpty())

	w = s.do(t, http.MethodGet, placed.ConfirmationURL, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var oc service.OrderContext
	decode(t, w, &oc)
	assert.Equal(t, placed.Reference, oc.Reference)
	assert.Equal(t, "Asha", oc.Customer.FirstName)

	w = s.do(t, http.MethodGet, placed.ConfirmationURL, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestNotifications(t *testing.T) {
	s := newTestServer(t, nil)
	require.Equal(t, http.StatusOK,
		s.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "product-02", "quantity": 1}).Code)

	var resp struct {
		Notifications []notify.Notification `json:"notifications"`
	}
	decode(t, s.do(t, http.MethodGet, "/api/v1/notifications", nil), &resp)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "Added to cart", resp.Notifications[0].Title)

	decode(t, s.do(t, http.MethodGet, "/api/v1/notifications", nil), &resp)
	assert.Len(t, resp.Notifications, 1, "a plain read keeps the buffer")

	decode(t, s.do(t, http.MethodGet, "/api/v1/notifications?drain=true", nil), &resp)
	assert.Len(t, resp.Notifications, 1)
	resp.Notifications = nil
	decode(t, s.do(t, http.MethodGet, "/api/v1/notifications", nil), &resp)
	assert.Empty(t, resp.Notifications)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	var brands struct {
		Brands []models.Brand `json:"brands"`
	}
	decode(t, s.do(t, http.MethodGet, "/api/v1/catalog/brands", nil), &brands)
	assert.Len(t, brands.Brands, 2)

	var offers service.Offers
	decode(t, s.do(t, http.MethodGet, "/api/v1/offers", nil), &offers)
	assert.Len(t, offers.Products, 1)
	assert.Equal(t, int64(10000), offers.TotalSavings)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/home", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/metrics", nil).Code)
}
