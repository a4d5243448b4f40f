package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRating(t *testing.T) {
	tests := []struct {
		name    string
		reviews []Review
		want    float64
	}{
		{name: "no reviews", reviews: nil, want: 0},
		{name: "single review", reviews: []Review{{Rating: 4}}, want: 4},
		{name: "rounded mean", reviews: []Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}, want: 4.3},
		{name: "half up", reviews: []Review{{Rating: 5}, {Rating: 4}, {Rating: 5}, {Rating: 5}}, want: 4.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Reviews: tt.reviews}
			assert.Equal(t, tt.want, p.Rating())
		})
	}
}

func TestStockLevel(t *testing.T) {
	assert.Equal(t, StockLevelInStock, Product{StockCount: 11}.StockLevel())
	assert.Equal(t, "Only 10 left", Product{StockCount: 10}.StockLevel())
	assert.Equal(t, "Only 1 left", Product{StockCount: 1}.StockLevel())
	assert.Equal(t, StockLevelOutOfStock, Product{StockCount: 0}.StockLevel())
}

func TestValidate(t *testing.T) {
	valid := Product{ID: "product-01", Slug: "ninja", Price: 100000, Discount: 5, StockCount: 2}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		mut   func(p *Product)
		field string
	}{
		{name: "empty id", mut: func(p *Product) { p.ID = "" }, field: "id"},
		{name: "empty slug", mut: func(p *Product) { p.Slug = "" }, field: "slug"},
		{name: "zero price", mut: func(p *Product) { p.Price = 0 }, field: "price"},
		{name: "discount over 100", mut: func(p *Product) { p.Discount = 101 }, field: "discount"},
		{name: "negative stock", mut: func(p *Product) { p.StockCount = -1 }, field: "stockCount"},
		{name: "review out of range", mut: func(p *Product) { p.Reviews = []Review{{Rating: 6}} }, field: "reviews.rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mut(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, IsInvalidProductError(err))
			assert.Equal(t, tt.field, err.(*InvalidProductError).Field)
		})
	}
}

func TestSpecificationsKeepOrder(t *testing.T) {
	specs := Specifications{
		{Key: "Engine", Value: "998cc"},
		{Key: "Power", Value: "203 PS"},
		{Key: "Weight", Value: "207 kg"},
		{Key: "Brakes", Value: "Brembo"},
	}

	data, err := json.Marshal(specs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Engine":"998cc","Power":"203 PS","Weight":"207 kg","Brakes":"Brembo"}`, string(data))
	assert.Equal(t, `{"Engine":"998cc","Power":"203 PS","Weight":"207 kg","Brakes":"Brembo"}`, string(data))

	var decoded Specifications
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, specs, decoded)
	assert.Equal(t, []string{"Engine", "Power", "Weight", "Brakes"}, decoded.Keys())

	v, ok := decoded.Get("Weight")
	assert.True(t, ok)
	assert.Equal(t, "207 kg", v)
}

func TestSpecificationsRejectNonObject(t *testing.T) {
	var s Specifications
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
}

func TestProductJSONRatingIsDerived(t *testing.T) {
	p := Product{
		ID:      "product-01",
		Slug:    "ninja",
		Price:   100,
		Reviews: []Review{{ID: "r1", Rating: 5}, {ID: "r2", Rating: 3}},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, 4.0, raw["rating"])
	assert.NotContains(t, raw, "discount")

	// a stale rating in stored data never overrides the reviews
	tampered := []byte(`{"id":"product-01","slug":"ninja","price":100,"rating":1.5,"reviews":[{"id":"r1","rating":5}]}`)
	var decoded Product
	require.NoError(t, json.Unmarshal(tampered, &decoded))
	assert.Equal(t, 5.0, decoded.Rating())
}
