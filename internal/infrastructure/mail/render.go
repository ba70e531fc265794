package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jlaglobal/pangea-api/internal/application/dto"
)

//go:embed templates/*.html
var templatesFS embed.FS

var orderEventTmpl = template.Must(template.New("order_event.html").
	Funcs(template.FuncMap{
		"money": formatMoney,
		"qty":   formatQuantity,
	}).
	ParseFS(templatesFS, "templates/order_event.html"))

type eventCopy struct {
	subject  string
	headline string
}

var eventCopies = map[string]eventCopy{
	"cancelado": {"Tu pedido %s fue cancelado", "Tu pedido fue cancelado. Si no solicitaste la cancelación, comunícate con nosotros."},
	"devuelto":  {"Registramos la devolución del pedido %s", "Registramos la devolución de tu pedido."},
	"agendado":  {"Tu pedido %s fue agendado", "Tu pedido quedó agendado para entrega."},
	"entregado": {"Tu pedido %s fue entregado", "Tu pedido fue entregado. ¡Gracias por tu compra!"},
}

// Renderer arma asunto y cuerpo HTML de los correos de pedidos.
type Renderer struct{}

// NewRenderer construye el renderizador.
func NewRenderer() *Renderer { return &Renderer{} }

// RenderOrderEvent devuelve asunto y HTML para el evento de pedido.
func (r *Renderer) RenderOrderEvent(data dto.OrderEventEmail) (string, string, error) {
	return RenderOrderEvent(data)
}

// RenderOrderEvent devuelve asunto y HTML para el evento de pedido. Montos con
// separadores en español (1.300,00).
func RenderOrderEvent(data dto.OrderEventEmail) (string, string, error) {
	c, ok := eventCopies[data.Event]
	if !ok {
		return "", "", fmt.Errorf("plantilla: evento desconocido %q", data.Event)
	}
	ref := data.OrderNumber
	if ref == "" {
		ref = data.OrderID
	}

	view := struct {
		dto.OrderEventEmail
		Headline     string
		Reference    string
		ScheduledFor string
	}{
		OrderEventEmail: data,
		Headline:        c.headline,
		Reference:       ref,
	}
	if data.ScheduledFor != nil {
		view.ScheduledFor = data.ScheduledFor.Format("02/01/2006 15:04")
	}

	var buf bytes.Buffer
	if err := orderEventTmpl.Execute(&buf, view); err != nil {
		return "", "", fmt.Errorf("plantilla: %w", err)
	}
	return fmt.Sprintf(c.subject, ref), buf.String(), nil
}

func formatMoney(v float64) string {
	return "$ " + message.NewPrinter(language.Spanish).Sprintf("%.2f", v)
}

func formatQuantity(v float64) string {
	return message.NewPrinter(language.Spanish).Sprintf("%v", v)
}
