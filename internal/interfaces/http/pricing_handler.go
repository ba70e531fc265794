package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jlaglobal/pangea-api/internal/application/dto"
	apppricing "github.com/jlaglobal/pangea-api/internal/application/pricing"
)

// PricingHandler cálculos de líneas, totales y sumas. Nunca rechaza números
// ilegibles: valen 0. Solo un cuerpo que no es JSON produce 400.
type PricingHandler struct {
	uc *apppricing.PricingUseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *apppricing.PricingUseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// Preview godoc
// @Summary      Detalle por línea y totales del formulario
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PricingItemsRequest  true  "Líneas"
// @Success      200   {object}  dto.PricingPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/preview [post]
func (h *PricingHandler) Preview(c *fiber.Ctx) error {
	var in dto.PricingItemsRequest
	if err := parseLenient(c, &in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(h.uc.Preview(in.Items))
}

// Totals godoc
// @Summary      Subtotal bruto, descuento total y neto
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PricingItemsRequest  true  "Líneas"
// @Success      200   {object}  pricing.Totals
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/totals [post]
func (h *PricingHandler) Totals(c *fiber.Ctx) error {
	var in dto.PricingItemsRequest
	if err := parseLenient(c, &in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(h.uc.Totals(in.Items))
}

// Sum godoc
// @Summary      Suma un campo numérico de una lista de registros
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SumRequest  true  "Registros y campo (por defecto total)"
// @Success      200   {object}  dto.SumResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/sum [post]
func (h *PricingHandler) Sum(c *fiber.Ctx) error {
	var in dto.SumRequest
	if err := parseLenient(c, &in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(h.uc.SumField(in))
}

// InventoryMetrics godoc
// @Summary      Métricas de inventario de los productos enviados
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body      dto.InventoryMetricsRequest  true  "Productos"
// @Success      200   {object}  pricing.InventoryMetrics
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/inventory-metrics [post]
func (h *PricingHandler) InventoryMetrics(c *fiber.Ctx) error {
	var in dto.InventoryMetricsRequest
	if err := parseLenient(c, &in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(h.uc.InventoryMetrics(in.Products))
}

// parseLenient acepta cuerpo vacío como petición vacía.
func parseLenient(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(dst)
}
