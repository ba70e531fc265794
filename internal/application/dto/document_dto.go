package dto

import (
	"time"

	"github.com/jlaglobal/pangea-api/internal/domain/normalize"
	"github.com/jlaglobal/pangea-api/internal/domain/pricing"
)

// DocumentResponse documento normalizado con su resumen de precios.
type DocumentResponse struct {
	ID        string           `json:"id"`
	Kind      string           `json:"kind"`
	Status    string           `json:"status"`
	Shape     string           `json:"shape"`
	Document  *normalize.Order `json:"document"`
	Totals    pricing.Totals   `json:"totals"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// DocumentListResponse listado paginado de documentos de un tipo.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
