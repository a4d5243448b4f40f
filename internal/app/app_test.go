package app

import (
	"context"
	"path/filepath"
	"testing"

	"storefront-service/config"
	"storefront-service/internal/catalog"
	"storefront-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("STORE_FILE", filepath.Join(t.TempDir(), "store.json"))
	t.Setenv("CHECKOUT_DELAY_MS", "0")
	t.Setenv("ADD_TO_CART_DELAY_MS", "0")
	t.Setenv("QUANTITY_DELAY_MS", "0")
	return config.Load()
}

func TestOpenStore(t *testing.T) {
	cfg := testConfig(t)

	kv, err := OpenStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &store.FileStore{}, kv)

	cfg.Store.Backend = store.BackendMemory
	kv, err = OpenStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, kv)

	cfg.Store.Backend = "etcd"
	_, err = OpenStore(cfg)
	assert.Error(t, err)
}

func TestReadyLocalStores(t *testing.T) {
	cfg := testConfig(t)
	cat, err := catalog.Generate(cfg.Catalog.Seed)
	require.NoError(t, err)

	a := Assemble(context.Background(), cfg, store.NewMemoryStore(), cat, nil)
	defer a.Close()
	assert.NoError(t, a.Ready(context.Background()))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis.CartTTL = -1

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewGeneratesCatalogAndPersistsCart(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	a, err := New(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, catalog.TargetSize, a.Catalog.Len())
	assert.Nil(t, a.Producer)
	assert.Nil(t, a.AuditWorker)

	var productID string
	for _, p := range a.Catalog.Products() {
		if p.StockCount > 0 {
			productID = p.ID
			break
		}
	}
	_, err = a.CartService.AddToCart(ctx, productID, 1)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	reopened, err := New(ctx, cfg)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, 1, reopened.Cart.ItemCount())
	assert.Empty(t, reopened.Notifications.Recent())
}
