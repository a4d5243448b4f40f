package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"storefront-service/config"
	"storefront-service/internal/app"
	"storefront-service/internal/catalog"
	"storefront-service/internal/service"
	"storefront-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *app.App {
	t.Helper()
	t.Setenv("CHECKOUT_DELAY_MS", "0")
	t.Setenv("ADD_TO_CART_DELAY_MS", "0")
	t.Setenv("QUANTITY_DELAY_MS", "0")
	cfg := config.Load()

	cat, err := catalog.Generate(cfg.Catalog.Seed)
	require.NoError(t, err)

	a := app.Assemble(context.Background(), cfg, store.NewMemoryStore(), cat, nil)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func inStock(t *testing.T, a *app.App) string {
	t.Helper()
	for _, p := range a.Catalog.Products() {
		if p.StockCount > 1 {
			return p.ID
		}
	}
	t.Fatal("no product in stock")
	return ""
}

func run(t *testing.T, a *app.App, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(a)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProductsJSON(t *testing.T) {
	a := testApp(t)

	out, err := run(t, a, "", "products", "--output", "json")
	require.NoError(t, err)

	var listing service.Listing
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	assert.Equal(t, a.Catalog.Len(), listing.Total)
	assert.Equal(t, 1, listing.Page)
	assert.Len(t, listing.Products, 12)
	assert.Equal(t, "All Superbikes", listing.Title)
}

func TestProductsNoResults(t *testing.T) {
	a := testApp(t)

	out, err := run(t, a, "", "products", "--search", "no-such-bike-anywhere")
	require.NoError(t, err)
	assert.Contains(t, out, "0 products found")
	assert.Contains(t, out, "No products found")
}

func TestProductUnknownSlug(t *testing.T) {
	a := testApp(t)

	_, err := run(t, a, "", "product", "does-not-exist")
	assert.Error(t, err)
}

func TestCartCommands(t *testing.T) {
	a := testApp(t)
	id := inStock(t, a)

	out, err := run(t, a, "", "cart", "add", id, "--quantity", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "x2")
	assert.Equal(t, 2, a.Cart.ItemCount())

	_, err = run(t, a, "", "cart", "update", id, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, a.Cart.ItemCount())

	_, err = run(t, a, "", "cart", "update", id, "many")
	assert.Error(t, err)

	out, err = run(t, a, "", "cart", "remove", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty")
	assert.True(t, a.Cart.IsEmpty())
}

func TestCheckoutCommand(t *testing.T) {
	a := testApp(t)

	_, err := run(t, a, "", "checkout")
	assert.ErrorIs(t, err, service.ErrEmptyCart)

	_, err = run(t, a, "", "cart", "add", inStock(t, a))
	require.NoError(t, err)

	out, err := run(t, a, "", "checkout", "--first-name", "A")
	assert.True(t, service.IsValidationError(err))
	assert.Contains(t, out, "firstName")

	out, err = run(t, a, "", "checkout",
		"--first-name", "Asha", "--last-name", "Rao",
		"--email", "asha@example.com", "--phone", "9876543210",
		"--address", "12 MG Road", "--city", "Pune", "--state", "MH",
		"--pincode", "411001", "--payment-method", "upi")
	require.NoError(t, err)
	assert.Contains(t, out, "Order Number: ORD")
	assert.Contains(t, out, "Payment Method: upi")
	assert.True(t, a.Cart.IsEmpty())
}

func TestShell(t *testing.T) {
	a := testApp(t)

	input := strings.Join([]string{
		"search no-such-bike-anywhere",
		"search",
		"sort price_asc",
		"sort sideways",
		"page 2",
		"bogus",
		"exit",
	}, "\n") + "\n"

	out, err := run(t, a, input, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "No products found")
	assert.Contains(t, out, "sort price_asc")
	assert.Contains(t, out, `unknown sort mode "sideways"`)
	assert.Contains(t, out, "page 2 of")
	assert.Contains(t, out, `unknown command "bogus"`)
}

func TestShellEOF(t *testing.T) {
	a := testApp(t)

	out, err := run(t, a, "show", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "products found")
}

func TestRootBuildsAppFromFlags(t *testing.T) {
	t.Setenv("CHECKOUT_DELAY_MS", "0")
	path := filepath.Join(t.TempDir(), "store.json")

	_, err := run(t, nil, "", "--store", "file", "--store-file", path, "--no-delay", "offers")
	require.NoError(t, err)

	_, err = run(t, nil, "", "--store", "carrier-pigeon", "offers")
	assert.Error(t, err)
}
