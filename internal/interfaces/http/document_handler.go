package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jlaglobal/pangea-api/internal/application/documents"
	"github.com/jlaglobal/pangea-api/internal/application/dto"
)

// DocumentHandler lectura de documentos normalizados y normalización ad hoc.
type DocumentHandler struct {
	uc *documents.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// List godoc
// @Summary      Listar documentos normalizados de un tipo
// @Tags         documents
// @Produce      json
// @Param        kind    path   string  true   "cotizaciones | pedidos | compras | remisiones"
// @Param        limit   query  int     false  "Máximo de resultados (1-100, por defecto 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200     {object}  dto.DocumentListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/documents/{kind} [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit y offset deben ser enteros"})
	}
	if err := validate.Struct(page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(validationResponse(err))
	}
	out, err := h.uc.List(c.UserContext(), c.Params("kind"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener documento normalizado con totales
// @Tags         documents
// @Produce      json
// @Param        kind  path  string  true  "cotizaciones | pedidos | compras | remisiones"
// @Param        id    path  string  true  "ID del documento"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{kind}/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("kind"), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Normalize godoc
// @Summary      Normalizar pedidos/cotizaciones en cualquier forma de origen
// @Description  Objeto -> documento normalizado (o null); lista -> lista normalizada sin nulos.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "Documento o lista de documentos"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/normalize/orders [post]
func (h *DocumentHandler) Normalize(c *fiber.Ctx) error {
	var raw any
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return invalidBody(c)
	}
	return c.JSON(h.uc.Normalize(raw))
}
