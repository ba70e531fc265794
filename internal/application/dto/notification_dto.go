package dto

import (
	"time"

	"github.com/jlaglobal/pangea-api/internal/domain/pricing"
)

// OrderEventRequest cuerpo de POST /api/pedidos/:id/eventos.
type OrderEventRequest struct {
	Event        string     `json:"event" validate:"required,oneof=cancelado devuelto agendado entregado"`
	ScheduledFor *time.Time `json:"scheduled_for" validate:"required_if=Event agendado"`
	Note         string     `json:"note" validate:"max=500"`
}

// OrderEventResponse resultado de aplicar un evento.
type OrderEventResponse struct {
	OrderID   string         `json:"order_id"`
	Status    string         `json:"status"`
	Totals    pricing.Totals `json:"totals"`
	Notified  bool           `json:"notified"`
	Recipient string         `json:"recipient,omitempty"`
	Reason    string         `json:"reason,omitempty"` // por qué no se notificó
}

// OrderEventEmail datos para la plantilla del correo de un evento de pedido.
type OrderEventEmail struct {
	Event        string
	OrderID      string
	OrderNumber  string
	ClientName   string
	ScheduledFor *time.Time
	Note         string
	Lines        []EmailLine
	Totals       pricing.Totals
}

// EmailLine línea de producto en el correo.
type EmailLine struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	Total       float64
}
