package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "cart", cfg.Store.CartKey)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.Equal(t, int64(18), cfg.Business.TaxPercent)
	assert.Equal(t, int64(1500), cfg.Business.ShippingFee)
	assert.Equal(t, int64(50000), cfg.Business.FreeShippingThreshold)
	assert.Equal(t, 2*time.Second, cfg.Business.CheckoutDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Business.AddToCartDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.Business.QuantityDelay)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("CATALOG_SEED", "7")
	t.Setenv("CHECKOUT_DELAY_MS", "0")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("REDIS_CART_TTL_SECONDS", "3600")

	cfg := Load()

	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, int64(7), cfg.Catalog.Seed)
	assert.Equal(t, time.Duration(0), cfg.Business.CheckoutDelay)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Hour, cfg.Redis.CartTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown backend", func(c *Config) { c.Store.Backend = "tape" }, true},
		{"empty cart key", func(c *Config) { c.Store.CartKey = "" }, true},
		{"zero page size", func(c *Config) { c.Catalog.PageSize = 0 }, true},
		{"negative tax", func(c *Config) { c.Business.TaxPercent = -1 }, true},
		{"negative delay", func(c *Config) { c.Business.CheckoutDelay = -time.Second }, true},
		{"negative cart ttl", func(c *Config) { c.Redis.CartTTL = -time.Second }, true},
		{"kafka without topic", func(c *Config) {
			c.Kafka.Enabled = true
			c.Kafka.TopicOrder = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
