package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/util"
	"storefront-service/internal/worker"

	"go.uber.org/zap"
)

var (
	ErrOutOfStock    = errors.New("product is out of stock")
	ErrExceedsStock  = errors.New("quantity exceeds available stock")
	ErrItemNotInCart = errors.New("item not in cart")
)

const (
	DefaultAddToCartDelay = 500 * time.Millisecond
	DefaultQuantityDelay  = 300 * time.Millisecond
)

// CartView is the cart together with its priced summary
type CartView struct {
	Items   []models.CartItem `json:"items"`
	Summary pricing.Summary   `json:"summary"`
}

// CartService applies user cart actions. It keeps quantities within
// [1, stock] and runs the simulated delays as superseding tasks, one task
// key per action and product.
type CartService struct {
	cart      *cart.Manager
	catalog   *catalog.Catalog
	calc      *pricing.Calculator
	scheduler *worker.Scheduler
	addDelay  time.Duration
	qtyDelay  time.Duration
	logger    *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	cartManager *cart.Manager,
	cat *catalog.Catalog,
	calc *pricing.Calculator,
	scheduler *worker.Scheduler,
	addDelay, qtyDelay time.Duration,
) *CartService {
	return &CartService{
		cart:      cartManager,
		catalog:   cat,
		calc:      calc,
		scheduler: scheduler,
		addDelay:  addDelay,
		qtyDelay:  qtyDelay,
		logger:    util.GetLogger(),
	}
}

// View returns the current cart and summary
func (s *CartService) View() CartView {
	items := s.cart.Items()
	return CartView{Items: items, Summary: s.calc.Summarize(items)}
}

// AddToCart adds quantity units of a product after the add delay
func (s *CartService) AddToCart(ctx context.Context, productID string, quantity int) (CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddToCart")
	defer span.End()

	if quantity < 1 {
		s.reject("invalid_quantity")
		return CartView{}, cart.ErrInvalidQuantity
	}
	product, err := s.catalog.ProductByID(productID)
	if err != nil {
		return CartView{}, err
	}
	if product.StockCount == 0 {
		s.reject("out_of_stock")
		return CartView{}, ErrOutOfStock
	}

	task := s.scheduler.Schedule("add:"+productID, s.addDelay, func(taskCtx context.Context) error {
		inCart := 0
		if item, ok := s.cart.Item(productID); ok {
			inCart = item.Quantity
		}
		if inCart+quantity > product.StockCount {
			return fmt.Errorf("%w: %d in stock, %d already in cart", ErrExceedsStock, product.StockCount, inCart)
		}
		return s.cart.AddItem(taskCtx, product, quantity)
	})

	if err := s.wait(ctx, task); err != nil {
		return CartView{}, err
	}
	return s.View(), nil
}

// UpdateQuantity sets the quantity of a cart line after the quantity delay.
// Zero or less removes the line immediately.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) (CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.UpdateQuantity")
	defer span.End()

	item, ok := s.cart.Item(productID)
	if !ok {
		return CartView{}, ErrItemNotInCart
	}
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}
	if quantity > item.Product.StockCount {
		s.reject("exceeds_stock")
		return CartView{}, fmt.Errorf("%w: %d in stock", ErrExceedsStock, item.Product.StockCount)
	}

	task := s.scheduler.Schedule("qty:"+productID, s.qtyDelay, func(taskCtx context.Context) error {
		if _, ok := s.cart.Item(productID); !ok {
			return ErrItemNotInCart
		}
		s.cart.UpdateQuantity(taskCtx, productID, quantity)
		return nil
	})

	if err := s.wait(ctx, task); err != nil {
		return CartView{}, err
	}
	return s.View(), nil
}

// RemoveFromCart drops a line and any quantity change pending for it
func (s *CartService) RemoveFromCart(ctx context.Context, productID string) (CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.RemoveFromCart")
	defer span.End()

	s.scheduler.Cancel("qty:" + productID)
	s.cart.RemoveItem(ctx, productID)
	return s.View(), nil
}

// ClearCart empties the cart
func (s *CartService) ClearCart(ctx context.Context) CartView {
	ctx, span := util.StartSpan(ctx, "CartService.ClearCart")
	defer span.End()

	s.cart.ClearCart(ctx)
	return s.View()
}

func (s *CartService) wait(ctx context.Context, task *worker.Task) error {
	err := task.Wait(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, worker.ErrSuperseded):
		s.reject("superseded")
		s.logger.Debug("Cart action superseded", zap.String("key", task.Key), zap.String("token", task.Token))
	case errors.Is(err, ErrExceedsStock):
		s.reject("exceeds_stock")
	}
	return err
}

func (s *CartService) reject(reason string) {
	util.CartActionsRejectedTotal.WithLabelValues(reason).Inc()
}
