// Package pricing expone el calculador de líneas, totales, sumas y métricas de
// inventario como casos de uso para la API.
package pricing

import (
	"github.com/jlaglobal/pangea-api/internal/application/dto"
	calc "github.com/jlaglobal/pangea-api/internal/domain/pricing"
)

// Metrics puerto de conteo de cálculos.
type Metrics interface {
	IncCalculation(op string)
}

type nopMetrics struct{}

func (nopMetrics) IncCalculation(string) {}

// PricingUseCase cálculos sin estado sobre los datos recibidos. Nunca falla:
// lo ilegible ya llegó como 0 desde la decodificación.
type PricingUseCase struct {
	metrics Metrics
}

// NewPricingUseCase construye el caso de uso. metrics puede ser nil.
func NewPricingUseCase(metrics Metrics) *PricingUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &PricingUseCase{metrics: metrics}
}

// Preview calcula cada línea y el resumen del formulario.
func (uc *PricingUseCase) Preview(items []calc.LineItem) dto.PricingPreviewResponse {
	uc.metrics.IncCalculation("preview")
	lines := make([]dto.LineBreakdownDTO, 0, len(items))
	for i := range items {
		it := &items[i]
		lines = append(lines, dto.LineBreakdownDTO{
			Index:           i,
			ProductRef:      it.ProductRef,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			SubtotalGross:   calc.SubtotalGross(it),
			DiscountAmount:  calc.DiscountAmount(it),
			SubtotalNet:     calc.SubtotalNet(it),
			Valid:           calc.IsValidLineItem(it),
		})
	}
	return dto.PricingPreviewResponse{Lines: lines, Totals: calc.AggregateTotals(items)}
}

// Totals resumen bruto, descuento y neto.
func (uc *PricingUseCase) Totals(items []calc.LineItem) calc.Totals {
	uc.metrics.IncCalculation("totals")
	return calc.AggregateTotals(items)
}

// SumField suma un campo de los registros; los que no son objeto aportan 0.
func (uc *PricingUseCase) SumField(req dto.SumRequest) dto.SumResponse {
	uc.metrics.IncCalculation("sum")
	field := req.Field
	if field == "" {
		field = calc.DefaultSumField
	}
	records := make([]map[string]any, 0, len(req.Records))
	for _, r := range req.Records {
		m, _ := r.(map[string]any)
		records = append(records, m)
	}
	return dto.SumResponse{Field: field, Sum: calc.SumField(records, field), Count: len(records)}
}

// InventoryMetrics valor total, unidades y promedio por producto.
func (uc *PricingUseCase) InventoryMetrics(products []calc.StockedProduct) calc.InventoryMetrics {
	uc.metrics.IncCalculation("inventory")
	return calc.ComputeInventoryMetrics(products)
}
