package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo con su existencia actual.
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	Price     decimal.Decimal // precio de venta
	Stock     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
