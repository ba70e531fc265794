package dto

import "github.com/jlaglobal/pangea-api/internal/domain/pricing"

// PricingItemsRequest cuerpo de POST /api/pricing/preview y /totals.
// Cada ítem acepta los alias cantidad/quantity, valorUnitario/precioUnitario/unitPrice
// y descuento/discountPercent; lo ilegible vale 0.
type PricingItemsRequest struct {
	Items []pricing.LineItem `json:"items"`
}

// LineBreakdownDTO cálculo de una línea del formulario.
type LineBreakdownDTO struct {
	Index           int     `json:"index"`
	ProductRef      string  `json:"productRef,omitempty"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	SubtotalGross   float64 `json:"subtotalGross"`
	DiscountAmount  float64 `json:"discountAmount"`
	SubtotalNet     float64 `json:"subtotalNet"`
	Valid           bool    `json:"valid"`
}

// PricingPreviewResponse detalle por línea más el resumen.
type PricingPreviewResponse struct {
	Lines  []LineBreakdownDTO `json:"lines"`
	Totals pricing.Totals     `json:"totals"`
}

// SumRequest cuerpo de POST /api/pricing/sum. Field vacío suma "total".
// Los registros que no son objeto aportan 0.
type SumRequest struct {
	Records []any  `json:"records"`
	Field   string `json:"field"`
}

// SumResponse resultado de la suma.
type SumResponse struct {
	Field string  `json:"field"`
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
}

// InventoryMetricsRequest cuerpo de POST /api/pricing/inventory-metrics.
// Cada producto acepta price/precio y stock/existencias.
type InventoryMetricsRequest struct {
	Products []pricing.StockedProduct `json:"products"`
}
