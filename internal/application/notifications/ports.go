package notifications

import (
	"context"

	"github.com/jlaglobal/pangea-api/internal/application/dto"
)

// Mailer puerto de envío de correo HTML.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Renderer arma asunto y cuerpo del correo de un evento de pedido.
type Renderer interface {
	RenderOrderEvent(data dto.OrderEventEmail) (subject, html string, err error)
}

// CacheInvalidator descarta resúmenes que dependen del estado de los pedidos.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Metrics puerto de conteo de notificaciones.
type Metrics interface {
	IncNotification(event, result string)
}

type nopMetrics struct{}

func (nopMetrics) IncNotification(string, string) {}
