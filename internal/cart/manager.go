// Package cart holds the shopping cart and keeps its durable snapshot in sync.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/pricing"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// DefaultKey is the store key holding the cart snapshot
const DefaultKey = "cart"

// ErrInvalidQuantity is returned when adding a non-positive quantity
var ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")

// Manager owns the cart. Every mutation rewrites the whole snapshot under key.
// Persistence failures are logged and counted, never returned.
type Manager struct {
	mu        sync.RWMutex
	items     []models.CartItem
	itemCount int
	total     int64

	kv       store.KV
	key      string
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewManager builds a Manager and rehydrates it from kv. A missing or
// unreadable snapshot yields an empty cart.
func NewManager(ctx context.Context, kv store.KV, key string, notifier notify.Notifier) *Manager {
	if key == "" {
		key = DefaultKey
	}
	if notifier == nil {
		notifier = notify.Discard
	}
	m := &Manager{
		items:    []models.CartItem{},
		kv:       kv,
		key:      key,
		notifier: notifier,
		logger:   util.GetLogger(),
	}
	m.load(ctx)
	return m
}

func (m *Manager) load(ctx context.Context) {
	b, err := m.kv.Get(ctx, m.key)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		util.CartPersistFailuresTotal.WithLabelValues("load").Inc()
		m.logger.Error("Failed to read cart snapshot", zap.String("key", m.key), zap.Error(err))
		return
	}

	items, adjusted, err := decodeSnapshot(b)
	if err != nil {
		util.CartPersistFailuresTotal.WithLabelValues("load").Inc()
		m.logger.Error("Failed to parse cart snapshot", zap.String("key", m.key), zap.Error(err))
		return
	}

	m.mu.Lock()
	m.items = items
	m.recompute()
	m.mu.Unlock()

	m.logger.Info("Cart restored",
		zap.String("key", m.key),
		zap.Int("lines", len(items)),
		zap.Int("itemCount", m.itemCount),
		zap.Int("adjusted", adjusted),
	)
}

// decodeSnapshot parses a stored cart. Lines with a non-positive quantity,
// an invalid or out-of-stock product are dropped; lines sharing a product id
// are merged and every quantity is clamped to the product's stock.
func decodeSnapshot(b []byte) ([]models.CartItem, int, error) {
	var raw []models.CartItem
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	adjusted := 0
	items := make([]models.CartItem, 0, len(raw))
	index := make(map[string]int, len(raw))
	for _, item := range raw {
		if item.Quantity < 1 || item.Product.StockCount < 1 || item.Product.Validate() != nil {
			adjusted++
			continue
		}
		if i, ok := index[item.Product.ID]; ok {
			items[i].Quantity += item.Quantity
			continue
		}
		index[item.Product.ID] = len(items)
		items = append(items, item)
	}

	for i := range items {
		if items[i].Quantity > items[i].Product.StockCount {
			items[i].Quantity = items[i].Product.StockCount
			adjusted++
		}
	}
	return items, adjusted, nil
}

// persist writes the snapshot. Callers hold m.mu.
func (m *Manager) persist(ctx context.Context, op string) {
	b, err := json.Marshal(m.items)
	if err != nil {
		util.CartPersistFailuresTotal.WithLabelValues(op).Inc()
		m.logger.Error("Failed to marshal cart", zap.Error(err))
		return
	}
	if err := m.kv.Set(ctx, m.key, b); err != nil {
		util.CartPersistFailuresTotal.WithLabelValues(op).Inc()
		m.logger.Error("Failed to persist cart",
			zap.String("key", m.key),
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

// recompute refreshes the derived totals. Callers hold m.mu.
func (m *Manager) recompute() {
	m.itemCount = pricing.ItemCount(m.items)
	m.total = pricing.Subtotal(m.items)
}

func (m *Manager) indexOf(productID string) int {
	for i, item := range m.items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges quantity into an existing line or appends a new one
func (m *Manager) AddItem(ctx context.Context, product models.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	m.mu.Lock()
	var n notify.Notification
	if i := m.indexOf(product.ID); i >= 0 {
		m.items[i].Quantity += quantity
		n = notify.Info("Cart updated",
			fmt.Sprintf("%s quantity increased to %d", product.Name, m.items[i].Quantity))
	} else {
		m.items = append(m.items, models.CartItem{Product: product, Quantity: quantity})
		n = notify.Info("Added to cart", fmt.Sprintf("%s added to your cart", product.Name))
	}
	m.recompute()
	m.persist(ctx, "add")
	m.mu.Unlock()

	util.CartMutationsTotal.WithLabelValues("add").Inc()
	m.notifier.Notify(n)
	return nil
}

// RemoveItem deletes the line for productID. The snapshot is rewritten even
// when nothing was removed; only an actual removal notifies.
func (m *Manager) RemoveItem(ctx context.Context, productID string) {
	m.mu.Lock()
	var removed *models.CartItem
	if i := m.indexOf(productID); i >= 0 {
		item := m.items[i]
		removed = &item
		m.items = append(m.items[:i:i], m.items[i+1:]...)
	}
	m.recompute()
	m.persist(ctx, "remove")
	m.mu.Unlock()

	util.CartMutationsTotal.WithLabelValues("remove").Inc()
	if removed != nil {
		m.notifier.Notify(notify.Info("Removed from cart",
			fmt.Sprintf("%s removed from your cart", removed.Product.Name)))
	}
}

// UpdateQuantity overwrites the quantity of an existing line. A quantity of
// zero or less removes the line. Unknown ids leave the items unchanged.
func (m *Manager) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		m.RemoveItem(ctx, productID)
		return
	}

	m.mu.Lock()
	if i := m.indexOf(productID); i >= 0 {
		m.items[i].Quantity = quantity
	}
	m.recompute()
	m.persist(ctx, "update")
	m.mu.Unlock()

	util.CartMutationsTotal.WithLabelValues("update").Inc()
}

// ClearCart empties the cart
func (m *Manager) ClearCart(ctx context.Context) {
	m.mu.Lock()
	m.items = []models.CartItem{}
	m.recompute()
	m.persist(ctx, "clear")
	m.mu.Unlock()

	util.CartMutationsTotal.WithLabelValues("clear").Inc()
	m.notifier.Notify(notify.Info("Cart cleared", "All items have been removed from your cart"))
}

// Items returns a copy of the cart lines in insertion order
func (m *Manager) Items() []models.CartItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.CartItem{}, m.items...)
}

// Item returns the line for productID
func (m *Manager) Item(productID string) (models.CartItem, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(productID); i >= 0 {
		return m.items[i], true
	}
	return models.CartItem{}, false
}

// ItemCount is the sum of quantities
func (m *Manager) ItemCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.itemCount
}

// Total is the sum of discounted line totals
func (m *Manager) Total() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total
}

func (m *Manager) IsEmpty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items) == 0
}
