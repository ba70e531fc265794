package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jlaglobal/pangea-api/internal/application/dto"
	"github.com/jlaglobal/pangea-api/internal/application/notifications"
)

// OrderEventHandler eventos del ciclo de vida de pedidos.
type OrderEventHandler struct {
	uc *notifications.OrderEventUseCase
}

// NewOrderEventHandler construye el handler.
func NewOrderEventHandler(uc *notifications.OrderEventUseCase) *OrderEventHandler {
	return &OrderEventHandler{uc: uc}
}

// Apply godoc
// @Summary      Aplicar evento a un pedido y notificar al cliente
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del pedido"
// @Param        body  body  dto.OrderEventRequest   true  "Evento"
// @Success      200   {object}  dto.OrderEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/eventos [post]
func (h *OrderEventHandler) Apply(c *fiber.Ctx) error {
	var in dto.OrderEventRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Apply(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
