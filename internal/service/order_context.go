package service

import (
	"errors"
	"sync"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/pricing"

	"github.com/google/uuid"
)

// ErrOrderContextNotFound is returned for unknown, consumed or expired tokens
var ErrOrderContextNotFound = errors.New("order context not found")

// DefaultOrderContextTTL bounds how long an unconsumed context is kept
const DefaultOrderContextTTL = 10 * time.Minute

// OrderContext is the confirmation handed from checkout to the confirmation
// view. It is read at most once.
type OrderContext struct {
	Token     string            `json:"token"`
	Reference string            `json:"reference"`
	Customer  CheckoutForm      `json:"customer"`
	Items     []models.CartItem `json:"items"`
	Summary   pricing.Summary   `json:"summary"`
	PlacedAt  time.Time         `json:"placedAt"`

	expiresAt time.Time
}

// OrderContexts holds pending order contexts in memory
type OrderContexts struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*OrderContext
	now     func() time.Time
}

func NewOrderContexts(ttl time.Duration) *OrderContexts {
	if ttl <= 0 {
		ttl = DefaultOrderContextTTL
	}
	return &OrderContexts{
		ttl:     ttl,
		entries: make(map[string]*OrderContext),
		now:     time.Now,
	}
}

// Put stores oc under a fresh token, which is written back into oc
func (c *OrderContexts) Put(oc *OrderContext) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for token, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, token)
		}
	}

	oc.Token = uuid.New().String()
	oc.expiresAt = now.Add(c.ttl)
	c.entries[oc.Token] = oc
	return oc.Token
}

// Consume returns the context for token and forgets it
func (c *OrderContexts) Consume(token string) (*OrderContext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	oc, ok := c.entries[token]
	if !ok {
		return nil, ErrOrderContextNotFound
	}
	delete(c.entries, token)
	if !c.now().Before(oc.expiresAt) {
		return nil, ErrOrderContextNotFound
	}
	return oc, nil
}

// Len reports how many contexts are held, expired ones included
func (c *OrderContexts) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
