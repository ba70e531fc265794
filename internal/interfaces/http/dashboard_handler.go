package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jlaglobal/pangea-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero y del inventario.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del mes en curso
// @Description  Totales por tipo de documento (pedidos cancelados y devueltos excluidos) y métricas de inventario.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// InventoryMetrics godoc
// @Summary      Métricas del inventario almacenado
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  pricing.InventoryMetrics
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/metrics [get]
func (h *DashboardHandler) InventoryMetrics(c *fiber.Ctx) error {
	m, err := h.uc.InventoryMetrics(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}
