package dto

import "github.com/jlaglobal/pangea-api/internal/domain/pricing"

// KindSummaryDTO acumulado del mes para un tipo de documento.
type KindSummaryDTO struct {
	Kind  string  `json:"kind"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Totales del mes en curso por tipo de documento más la foto del inventario.
type DashboardSummaryDTO struct {
	Quotes        KindSummaryDTO `json:"quotes"`
	Orders        KindSummaryDTO `json:"orders"`
	Purchases     KindSummaryDTO `json:"purchases"`
	DeliveryNotes KindSummaryDTO `json:"delivery_notes"`

	// Pedidos cancelados o devueltos: no suman en Orders.
	ExcludedOrders int `json:"excluded_orders"`

	Inventory pricing.InventoryMetrics `json:"inventory"`

	// Metadatos del período
	DateLabel   string `json:"date_label"` // ej: "Octubre 2026"
	GeneratedAt string `json:"generated_at"`
}
