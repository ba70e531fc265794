package pricing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StockedProduct precio y existencias de un producto para las métricas de
// inventario.
type StockedProduct struct {
	Price float64 `json:"price"`
	Stock int64   `json:"stock"`
}

// StockedProductFromFields lee price/precio con prefijo decimal y
// stock/existencias con prefijo entero; lo ilegible vale 0.
func StockedProductFromFields(fields map[string]any) StockedProduct {
	if fields == nil {
		return StockedProduct{}
	}
	return StockedProduct{
		Price: ParseLenientFloat(FirstPresent(fields, []string{"price", "precio"})),
		Stock: ParseLenientInt(FirstPresent(fields, []string{"stock", "existencias"})),
	}
}

// UnmarshalJSON decodifica con alias; un valor que no sea objeto produce el
// producto vacío sin error.
func (p *StockedProduct) UnmarshalJSON(b []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		*p = StockedProduct{}
		return nil
	}
	*p = StockedProductFromFields(fields)
	return nil
}

// InventoryMetrics foto del inventario; efímera, no se persiste.
type InventoryMetrics struct {
	TotalValue         float64 `json:"totalValue"`
	TotalStock         int64   `json:"totalStock"`
	AvgValuePerProduct float64 `json:"avgValuePerProduct"`
}

// ComputeInventoryMetrics valor total (Σ precio×stock), unidades totales y
// valor promedio por producto. Con la lista vacía el promedio es 0.
func ComputeInventoryMetrics(products []StockedProduct) InventoryMetrics {
	if len(products) == 0 {
		return InventoryMetrics{}
	}
	value := decimal.Zero
	var stock int64
	for _, p := range products {
		value = value.Add(dec(p.Price).Mul(decimal.NewFromInt(p.Stock)))
		stock += p.Stock
	}
	return InventoryMetrics{
		TotalValue:         toMoney(value),
		TotalStock:         stock,
		AvgValuePerProduct: toMoney(value.Div(decimal.NewFromInt(int64(len(products))))),
	}
}
