package pricing_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlaglobal/pangea-api/internal/domain/pricing"
)

func TestLineItem_Subtotales(t *testing.T) {
	item := &pricing.LineItem{ProductRef: "p1", Quantity: 2, UnitPrice: 100, DiscountPercent: 10}

	assert.Equal(t, 200.0, pricing.SubtotalGross(item))
	assert.Equal(t, 20.0, pricing.DiscountAmount(item))
	assert.Equal(t, 180.0, pricing.SubtotalNet(item))
}

func TestLineItem_SinDescuentoNetoIgualBruto(t *testing.T) {
	for _, item := range []pricing.LineItem{
		{Quantity: 3, UnitPrice: 19.99},
		{Quantity: 0.5, UnitPrice: 1234.567},
		{Quantity: 0, UnitPrice: 50},
	} {
		assert.Equal(t, pricing.SubtotalGross(&item), pricing.SubtotalNet(&item))
	}
}

func TestLineItem_BrutoEsDescuentoMasNeto(t *testing.T) {
	for _, item := range []pricing.LineItem{
		{Quantity: 3, UnitPrice: 19.99, DiscountPercent: 15},
		{Quantity: 7, UnitPrice: 0.33, DiscountPercent: 33.3},
		{Quantity: 1, UnitPrice: 1000, DiscountPercent: 100},
		{Quantity: 11, UnitPrice: 4.17, DiscountPercent: 12.5},
	} {
		sum := pricing.DiscountAmount(&item) + pricing.SubtotalNet(&item)
		assert.InDelta(t, pricing.SubtotalGross(&item), sum, 0.01, "item %+v", item)
	}
}

func TestLineItem_NilDevuelveCero(t *testing.T) {
	assert.Equal(t, 0.0, pricing.SubtotalGross(nil))
	assert.Equal(t, 0.0, pricing.DiscountAmount(nil))
	assert.Equal(t, 0.0, pricing.SubtotalNet(nil))
	assert.False(t, pricing.IsValidLineItem(nil))
}

func TestLineItemFromFields_Alias(t *testing.T) {
	item := pricing.LineItemFromFields(map[string]any{
		"producto":       map[string]any{"_id": "abc"},
		"cantidad":       "3",
		"valorUnitario":  nil,
		"precioUnitario": "50",
		"descuento":      10.0,
	})
	assert.Equal(t, pricing.LineItem{ProductRef: "abc", Quantity: 3, UnitPrice: 50, DiscountPercent: 10}, item)

	// valorUnitario tiene prioridad sobre precioUnitario cuando no es nulo.
	item = pricing.LineItemFromFields(map[string]any{"valorUnitario": 80.0, "precioUnitario": 90.0})
	assert.Equal(t, 80.0, item.UnitPrice)

	assert.Equal(t, pricing.LineItem{}, pricing.LineItemFromFields(nil))
}

func TestLineItemFromFields_ReferenciaEnSobre(t *testing.T) {
	item := pricing.LineItemFromFields(map[string]any{
		"product": map[string]any{"data": map[string]any{"id": 17.0, "attributes": map[string]any{"nombre": "Tornillo"}}},
	})
	assert.Equal(t, "17", item.ProductRef)
}

func TestLineItem_UnmarshalJSONTolerante(t *testing.T) {
	var items []pricing.LineItem
	raw := `[{"quantity":2,"unitPrice":"100","discountPercent":10,"productRef":"x"}, "basura", null, {"cantidad":"dos"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	require.Len(t, items, 4)

	assert.Equal(t, pricing.LineItem{ProductRef: "x", Quantity: 2, UnitPrice: 100, DiscountPercent: 10}, items[0])
	assert.Equal(t, pricing.LineItem{}, items[1])
	assert.Equal(t, pricing.LineItem{}, items[2])
	assert.Equal(t, pricing.LineItem{}, items[3])
}

func TestIsValidLineItem(t *testing.T) {
	assert.True(t, pricing.IsValidLineItem(&pricing.LineItem{ProductRef: "p", Quantity: 1, UnitPrice: 1}))
	assert.False(t, pricing.IsValidLineItem(&pricing.LineItem{Quantity: 1, UnitPrice: 1}), "sin producto")
	assert.False(t, pricing.IsValidLineItem(&pricing.LineItem{ProductRef: "p", UnitPrice: 1}), "cantidad 0")
	assert.False(t, pricing.IsValidLineItem(&pricing.LineItem{ProductRef: "p", Quantity: 1}), "precio 0")
}

func TestLineItemFromFields_PrecioComoUltimoAlias(t *testing.T) {
	item := pricing.LineItemFromFields(map[string]any{"cantidad": 2.0, "precio": "7.5"})
	assert.Equal(t, 7.5, item.UnitPrice)

	item = pricing.LineItemFromFields(map[string]any{"precioUnitario": 9.0, "precio": 7.5})
	assert.Equal(t, 9.0, item.UnitPrice)
}
