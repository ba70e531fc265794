// Package documents lee cotizaciones, pedidos, compras y remisiones y las
// entrega normalizadas con su resumen de precios.
package documents

import (
	"context"
	"fmt"

	"github.com/jlaglobal/pangea-api/internal/application/dto"
	"github.com/jlaglobal/pangea-api/internal/domain"
	"github.com/jlaglobal/pangea-api/internal/domain/entity"
	"github.com/jlaglobal/pangea-api/internal/domain/normalize"
	"github.com/jlaglobal/pangea-api/internal/domain/pricing"
	"github.com/jlaglobal/pangea-api/internal/domain/repository"
)

// Metrics puerto de conteo de documentos normalizados por forma.
type Metrics interface {
	IncNormalized(shape string)
}

type nopMetrics struct{}

func (nopMetrics) IncNormalized(string) {}

// DocumentUseCase casos de uso de lectura de documentos.
type DocumentUseCase struct {
	docs    repository.DocumentRepository
	metrics Metrics
}

// NewDocumentUseCase construye el caso de uso. metrics puede ser nil.
func NewDocumentUseCase(docs repository.DocumentRepository, metrics Metrics) *DocumentUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &DocumentUseCase{docs: docs, metrics: metrics}
}

// Get devuelve un documento normalizado. kind acepta singular o plural de ruta.
func (uc *DocumentUseCase) Get(ctx context.Context, kind, id string) (*dto.DocumentResponse, error) {
	k, ok := entity.ParseDocumentKind(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedKind, kind)
	}
	doc, err := uc.docs.GetByID(ctx, k, id)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	res := uc.toResponse(doc)
	return &res, nil
}

// List devuelve una página de documentos normalizados de un tipo.
func (uc *DocumentUseCase) List(ctx context.Context, kind string, page dto.PageRequest) (*dto.DocumentListResponse, error) {
	k, ok := entity.ParseDocumentKind(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedKind, kind)
	}
	page.DefaultPage()
	docs, err := uc.docs.ListByKind(ctx, k, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar documentos: %w", err)
	}
	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, uc.toResponse(d))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	}, nil
}

// Normalize normaliza un payload arbitrario: objeto -> *normalize.Order (nil si
// es null), lista -> []normalize.Order. Cualquier otro valor produce nil.
func (uc *DocumentUseCase) Normalize(raw any) any {
	switch raw.(type) {
	case []any:
		list := normalize.NormalizeOrderList(raw)
		for i := range list {
			uc.metrics.IncNormalized(string(list[i].Shape))
		}
		return list
	default:
		o := normalize.NormalizeOrder(raw)
		if o == nil {
			return nil
		}
		uc.metrics.IncNormalized(string(o.Shape))
		return o
	}
}

// NormalizeDocument lee el payload guardado; un payload ilegible produce un
// documento vacío con el id de la fila.
func NormalizeDocument(doc *entity.Document) *normalize.Order {
	o := normalize.DecodeOrder(doc.Payload)
	if o == nil {
		o = normalize.NormalizeOrder(map[string]any{})
	}
	if o.ID == "" {
		o.ID = doc.ID
	}
	return o
}

func (uc *DocumentUseCase) toResponse(doc *entity.Document) dto.DocumentResponse {
	o := NormalizeDocument(doc)
	uc.metrics.IncNormalized(string(o.Shape))
	return dto.DocumentResponse{
		ID:        doc.ID,
		Kind:      string(doc.Kind),
		Status:    string(doc.Status),
		Shape:     string(o.Shape),
		Document:  o,
		Totals:    pricing.AggregateTotals(o.LineItems()),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
