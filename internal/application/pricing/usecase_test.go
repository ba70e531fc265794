package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlaglobal/pangea-api/internal/application/dto"
	"github.com/jlaglobal/pangea-api/internal/application/pricing"
	calc "github.com/jlaglobal/pangea-api/internal/domain/pricing"
)

type countingMetrics struct {
	ops map[string]int
}

func (m *countingMetrics) IncCalculation(op string) {
	if m.ops == nil {
		m.ops = map[string]int{}
	}
	m.ops[op]++
}

func TestPreview_DetallePorLinea(t *testing.T) {
	m := &countingMetrics{}
	uc := pricing.NewPricingUseCase(m)

	res := uc.Preview([]calc.LineItem{
		{ProductRef: "p1", Quantity: 1, UnitPrice: 1000},
		{ProductRef: "p2", Quantity: 3, UnitPrice: 200, DiscountPercent: 50},
		{Quantity: 2, UnitPrice: 5},
	})

	require.Len(t, res.Lines, 3)
	assert.Equal(t, 600.0, res.Lines[1].SubtotalGross)
	assert.Equal(t, 300.0, res.Lines[1].DiscountAmount)
	assert.Equal(t, 300.0, res.Lines[1].SubtotalNet)
	assert.True(t, res.Lines[0].Valid)
	assert.False(t, res.Lines[2].Valid, "sin referencia de producto")
	assert.Equal(t, 2, res.Lines[2].Index)

	assert.Equal(t, calc.Totals{GrossSubtotal: 1610, TotalDiscount: 300, NetTotal: 1310}, res.Totals)
	assert.Equal(t, 1, m.ops["preview"])
}

func TestPreview_ListaVacia(t *testing.T) {
	res := pricing.NewPricingUseCase(nil).Preview(nil)
	assert.Empty(t, res.Lines)
	assert.NotNil(t, res.Lines)
	assert.Equal(t, calc.Totals{}, res.Totals)
}

func TestTotals(t *testing.T) {
	uc := pricing.NewPricingUseCase(nil)
	got := uc.Totals([]calc.LineItem{{Quantity: 2, UnitPrice: 100, DiscountPercent: 10}})
	assert.Equal(t, calc.Totals{GrossSubtotal: 200, TotalDiscount: 20, NetTotal: 180}, got)
}

func TestSumField(t *testing.T) {
	m := &countingMetrics{}
	uc := pricing.NewPricingUseCase(m)

	res := uc.SumField(dto.SumRequest{Records: []any{
		map[string]any{"total": 10.0},
		map[string]any{"total": "20"},
		map[string]any{},
		"no es objeto",
	}})

	assert.Equal(t, "total", res.Field)
	assert.Equal(t, 30.0, res.Sum)
	assert.Equal(t, 4, res.Count)
	assert.Equal(t, 1, m.ops["sum"])
}

func TestSumField_CampoPersonalizado(t *testing.T) {
	res := pricing.NewPricingUseCase(nil).SumField(dto.SumRequest{
		Field:   "abono",
		Records: []any{map[string]any{"abono": "12.345"}, map[string]any{"abono": 0.005}},
	})
	assert.Equal(t, "abono", res.Field)
	assert.Equal(t, 12.35, res.Sum)
}

func TestInventoryMetrics(t *testing.T) {
	got := pricing.NewPricingUseCase(nil).InventoryMetrics([]calc.StockedProduct{{Price: 10, Stock: 5}, {Price: 20, Stock: 0}})
	assert.Equal(t, calc.InventoryMetrics{TotalValue: 50, TotalStock: 5, AvgValuePerProduct: 25}, got)
}
