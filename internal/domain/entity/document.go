package entity

import (
	"encoding/json"
	"time"
)

// DocumentKind tipo de documento comercial.
type DocumentKind string

const (
	KindCotizacion DocumentKind = "cotizacion"
	KindPedido     DocumentKind = "pedido"
	KindCompra     DocumentKind = "compra"
	KindRemision   DocumentKind = "remision"
)

// DocumentKinds en el orden en que se muestran en el tablero.
var DocumentKinds = []DocumentKind{KindCotizacion, KindPedido, KindCompra, KindRemision}

var kindRoutes = map[string]DocumentKind{
	"cotizaciones": KindCotizacion,
	"pedidos":      KindPedido,
	"compras":      KindCompra,
	"remisiones":   KindRemision,
}

// ParseDocumentKind acepta el singular o el plural de ruta ("pedidos").
func ParseDocumentKind(s string) (DocumentKind, bool) {
	if k, ok := kindRoutes[s]; ok {
		return k, true
	}
	for _, k := range DocumentKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// DocumentStatus estado del ciclo de vida de un pedido.
type DocumentStatus string

const (
	StatusPendiente DocumentStatus = "pendiente"
	StatusAgendado  DocumentStatus = "agendado"
	StatusEntregado DocumentStatus = "entregado"
	StatusCancelado DocumentStatus = "cancelado"
	StatusDevuelto  DocumentStatus = "devuelto"
)

// transitions estados destino permitidos desde cada estado.
var transitions = map[DocumentStatus][]DocumentStatus{
	StatusPendiente: {StatusAgendado, StatusEntregado, StatusCancelado},
	StatusAgendado:  {StatusAgendado, StatusEntregado, StatusCancelado},
	StatusEntregado: {StatusDevuelto},
}

// CanTransition indica si un pedido puede pasar de from a to.
func CanTransition(from, to DocumentStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Counts indica si el estado cuenta para los totales del tablero.
func (s DocumentStatus) Counts() bool {
	return s != StatusCancelado && s != StatusDevuelto
}

// Document cotización, pedido, compra o remisión tal como la entregó el backend.
// Payload es el JSON crudo (plano o con sobre attributes) y se lee siempre a
// través del normalizador.
type Document struct {
	ID        string
	Kind      DocumentKind
	Status    DocumentStatus
	ClientID  string
	Payload   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
