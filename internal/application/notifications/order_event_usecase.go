// Package notifications aplica eventos del ciclo de vida de un pedido
// (agendado, entregado, cancelado, devuelto) y avisa al cliente por correo.
package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/jlaglobal/pangea-api/internal/application/documents"
	"github.com/jlaglobal/pangea-api/internal/application/dto"
	"github.com/jlaglobal/pangea-api/internal/domain"
	"github.com/jlaglobal/pangea-api/internal/domain/entity"
	"github.com/jlaglobal/pangea-api/internal/domain/normalize"
	"github.com/jlaglobal/pangea-api/internal/domain/pricing"
	"github.com/jlaglobal/pangea-api/internal/domain/repository"
	"github.com/jlaglobal/pangea-api/pkg/logger"
)

const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultSkipped = "skipped"
)

// OrderEventUseCase cambia el estado del pedido y notifica al cliente.
type OrderEventUseCase struct {
	docs     repository.DocumentRepository
	clients  repository.ClientRepository
	mailer   Mailer
	renderer Renderer
	cache    CacheInvalidator
	metrics  Metrics
	log      *logger.Logger
}

// NewOrderEventUseCase construye el caso de uso. cache, metrics y log pueden ser nil.
func NewOrderEventUseCase(
	docs repository.DocumentRepository,
	clients repository.ClientRepository,
	mailer Mailer,
	renderer Renderer,
	cache CacheInvalidator,
	metrics Metrics,
	log *logger.Logger,
) *OrderEventUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OrderEventUseCase{
		docs:     docs,
		clients:  clients,
		mailer:   mailer,
		renderer: renderer,
		cache:    cache,
		metrics:  metrics,
		log:      log,
	}
}

// Apply valida la transición, guarda el nuevo estado y envía el correo.
//
// El estado queda guardado aunque el correo falle; la respuesta lo indica con
// Notified=false y Reason.
func (uc *OrderEventUseCase) Apply(ctx context.Context, orderID string, req dto.OrderEventRequest) (*dto.OrderEventResponse, error) {
	target := entity.DocumentStatus(req.Event)
	switch target {
	case entity.StatusAgendado, entity.StatusEntregado, entity.StatusCancelado, entity.StatusDevuelto:
	default:
		return nil, fmt.Errorf("%w: evento %q", domain.ErrInvalidInput, req.Event)
	}
	if target == entity.StatusAgendado && req.ScheduledFor == nil {
		return nil, fmt.Errorf("%w: agendado requiere scheduled_for", domain.ErrInvalidInput)
	}

	doc, err := uc.docs.GetByID(ctx, entity.KindPedido, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(doc.Status, target) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, doc.Status, target)
	}
	if err := uc.docs.UpdateStatus(ctx, doc.ID, doc.Status, target); err != nil {
		return nil, fmt.Errorf("actualizar estado: %w", err)
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("pedido: no se pudo invalidar la caché del tablero")
		}
	}

	order := documents.NormalizeDocument(doc)
	items := order.LineItems()
	totals := pricing.AggregateTotals(items)

	res := &dto.OrderEventResponse{
		OrderID: doc.ID,
		Status:  string(target),
		Totals:  totals,
	}

	recipient, clientName, err := uc.resolveRecipient(ctx, doc, order)
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", doc.ID).Msg("pedido: no se pudo resolver el cliente")
	}
	if recipient == "" {
		uc.metrics.IncNotification(req.Event, resultSkipped)
		res.Reason = domain.ErrNoRecipient.Error()
		return res, nil
	}
	res.Recipient = recipient

	email := dto.OrderEventEmail{
		Event:        req.Event,
		OrderID:      doc.ID,
		ClientName:   clientName,
		ScheduledFor: req.ScheduledFor,
		Note:         req.Note,
		Lines:        emailLines(order, items),
		Totals:       totals,
	}
	if order.NumeroPedido != nil {
		email.OrderNumber = *order.NumeroPedido
	}

	subject, html, err := uc.renderer.RenderOrderEvent(email)
	if err == nil {
		err = uc.mailer.Send(ctx, recipient, subject, html)
	}
	if err != nil {
		uc.log.Error().Err(err).Str("order_id", doc.ID).Str("event", req.Event).Msg("pedido: correo no enviado")
		uc.metrics.IncNotification(req.Event, resultFailed)
		res.Reason = err.Error()
		return res, nil
	}

	uc.metrics.IncNotification(req.Event, resultSent)
	uc.log.Info().Str("order_id", doc.ID).Str("event", req.Event).Str("to", recipient).Msg("pedido: cliente notificado")
	res.Notified = true
	return res, nil
}

// resolveRecipient busca el correo primero en el cliente embebido del pedido
// y luego en el repositorio de clientes.
func (uc *OrderEventUseCase) resolveRecipient(ctx context.Context, doc *entity.Document, order *normalize.Order) (email, name string, err error) {
	clientID := doc.ClientID
	switch c := order.Cliente.(type) {
	case map[string]any:
		email = firstString(c, "email", "correo")
		name = firstString(c, "nombre", "name", "razonSocial")
		if clientID == "" {
			clientID = firstString(c, "_id", "id")
		}
	case string:
		if clientID == "" {
			clientID = c
		}
	}
	if email != "" || clientID == "" || uc.clients == nil {
		return email, name, nil
	}

	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return "", name, fmt.Errorf("obtener cliente %s: %w", clientID, err)
	}
	if client == nil {
		return "", name, nil
	}
	if name == "" {
		name = client.Name
	}
	return strings.TrimSpace(client.Email), name, nil
}

func emailLines(order *normalize.Order, items []pricing.LineItem) []dto.EmailLine {
	lines := make([]dto.EmailLine, 0, len(items))
	for i := range items {
		lines = append(lines, dto.EmailLine{
			Description: productLabel(order.Productos[i].Producto, items[i].ProductRef),
			Quantity:    items[i].Quantity,
			UnitPrice:   items[i].UnitPrice,
			Total:       pricing.SubtotalNet(&items[i]),
		})
	}
	return lines
}

func productLabel(producto any, ref string) string {
	if m, ok := producto.(map[string]any); ok {
		if s := firstString(m, "nombre", "name", "descripcion"); s != "" {
			return s
		}
	}
	if ref != "" {
		return ref
	}
	return "Producto"
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return fmt.Sprintf("%g", v)
		}
	}
	return ""
}
