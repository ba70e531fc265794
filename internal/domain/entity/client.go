package entity

import "time"

// Client cliente destinatario de cotizaciones, pedidos y remisiones.
type Client struct {
	ID        string
	Name      string
	TaxID     string // NIT o Cédula (Colombia)
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
