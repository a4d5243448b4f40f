package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/listing"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/service"
	"storefront-service/internal/util"
	"storefront-service/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessFunc reports whether dependencies are reachable
type ReadinessFunc func(ctx context.Context) error

// Handler contains HTTP handlers
type Handler struct {
	catalog       *service.CatalogService
	carts         *service.CartService
	checkout      *service.CheckoutService
	notifications *notify.Buffer
	ready         ReadinessFunc
}

// NewHandler creates a new HTTP handler. ready may be nil.
func NewHandler(
	catalog *service.CatalogService,
	carts *service.CartService,
	checkout *service.CheckoutService,
	notifications *notify.Buffer,
	ready ReadinessFunc,
) *Handler {
	return &Handler{
		catalog:       catalog,
		carts:         carts,
		checkout:      checkout,
		notifications: notifications,
		ready:         ready,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog/brands", h.listBrands)
		v1.GET("/catalog/categories", h.listCategories)
		v1.GET("/home", h.home)
		v1.GET("/offers", h.offers)

		v1.GET("/products", h.listProducts)
		v1.POST("/products/search", h.searchProducts)
		v1.GET("/products/:slug", h.getProduct)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addCartItem)
		v1.PUT("/cart/items/:productId", h.updateCartItem)
		v1.DELETE("/cart/items/:productId", h.removeCartItem)
		v1.DELETE("/cart", h.clearCart)

		v1.GET("/checkout", h.checkoutSummary)
		v1.POST("/checkout", h.submitCheckout)
		v1.GET("/checkout/confirmation/:token", h.confirmation)

		v1.GET("/notifications", h.listNotifications)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not ready",
				"details": err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) listBrands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"brands": h.catalog.Catalog().Brands()})
}

func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Catalog().Categories()})
}

func (h *Handler) home(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Home(c.Request.Context()))
}

func (h *Handler) offers(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Offers(c.Request.Context()))
}

// listProducts seeds the listing from category, brand and search only
func (h *Handler) listProducts(c *gin.Context) {
	nav := listing.ParseNavigation(c.Request.URL.Query())
	c.JSON(http.StatusOK, h.catalog.Browse(c.Request.Context(), nav, nil))
}

// SearchRequest carries the navigation seed and the filter state of a listing
type SearchRequest struct {
	Navigation listing.NavigationParams `json:"navigation"`
	Query      listing.Query            `json:"query"`
}

func (h *Handler) searchProducts(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, h.catalog.Browse(c.Request.Context(), req.Navigation, &req.Query))
}

func (h *Handler) getProduct(c *gin.Context) {
	detail, err := h.catalog.ProductDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.carts.View())
}

// AddItemRequest adds quantity units of a product to the cart
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) addCartItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.carts.AddToCart(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateItemRequest sets the quantity of a cart line
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) updateCartItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.carts.UpdateQuantity(c.Request.Context(), c.Param("productId"), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) removeCartItem(c *gin.Context) {
	view, err := h.carts.RemoveFromCart(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) clearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.carts.ClearCart(c.Request.Context()))
}

func (h *Handler) checkoutSummary(c *gin.Context) {
	view := h.carts.View()
	c.JSON(http.StatusOK, gin.H{
		"state":          h.checkout.State(),
		"items":          view.Items,
		"summary":        view.Summary,
		"paymentMethods": service.PaymentMethods,
	})
}

func (h *Handler) submitCheckout(c *gin.Context) {
	var form service.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	oc, err := h.checkout.Submit(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":           oc.Token,
		"reference":       oc.Reference,
		"confirmationUrl": "/api/v1/checkout/confirmation/" + oc.Token,
	})
}

// confirmation hands out the order context once; anything else goes home
func (h *Handler) confirmation(c *gin.Context) {
	oc, err := h.checkout.Confirmation(c.Param("token"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.JSON(http.StatusOK, oc)
}

func (h *Handler) listNotifications(c *gin.Context) {
	drain, _ := strconv.ParseBool(c.DefaultQuery("drain", "false"))
	var notes []notify.Notification
	if drain {
		notes = h.notifications.Drain()
	} else {
		notes = h.notifications.Recent()
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notes})
}

// respondError maps service errors onto status codes
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Invalid checkout details",
			"fields": ve.Fields,
		})
	case models.IsProductNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "details": err.Error()})
	case errors.Is(err, service.ErrItemNotInCart):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart", "details": err.Error()})
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity", "details": err.Error()})
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty", "details": err.Error()})
	case errors.Is(err, service.ErrOutOfStock), errors.Is(err, service.ErrExceedsStock):
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock", "details": err.Error()})
	case errors.Is(err, worker.ErrSuperseded), errors.Is(err, worker.ErrCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": "Superseded by a newer request", "details": err.Error()})
	case errors.Is(err, service.ErrCheckoutInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Checkout already in progress", "details": err.Error()})
	case errors.Is(err, worker.ErrStopped):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Shutting down", "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error", "details": err.Error()})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
