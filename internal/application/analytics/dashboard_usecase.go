// Package analytics contiene los casos de uso del tablero de KPIs: totales del
// mes por tipo de documento y la foto del inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jlaglobal/pangea-api/internal/application/documents"
	"github.com/jlaglobal/pangea-api/internal/application/dto"
	"github.com/jlaglobal/pangea-api/internal/domain/entity"
	"github.com/jlaglobal/pangea-api/internal/domain/normalize"
	"github.com/jlaglobal/pangea-api/internal/domain/pricing"
	"github.com/jlaglobal/pangea-api/internal/domain/repository"
	"github.com/jlaglobal/pangea-api/pkg/logger"
)

const dashboardKeyPrefix = "pangea:dashboard:"

// Cache puerto de caché JSON (Redis). Implementaciones nil-safe aceptadas.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}

// DashboardUseCase arma el resumen del mes en curso.
//
// Fuentes: DocumentRepository (documentos del mes) y ProductRepository
// (catálogo completo). El resultado se guarda en caché por mes.
type DashboardUseCase struct {
	docs     repository.DocumentRepository
	products repository.ProductRepository
	cache    Cache
	log      *logger.Logger
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(
	docs repository.DocumentRepository,
	products repository.ProductRepository,
	cache Cache,
	log *logger.Logger,
) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{docs: docs, products: products, cache: cache, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary devuelve el resumen del mes en curso.
//
// Cinco consultas en paralelo: una por tipo de documento (mes calendario
// en curso) y el catálogo de productos. Los pedidos cancelados o devueltos no
// suman.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	key := dashboardKey(now)

	var cached dto.DashboardSummaryDTO
	if uc.cache != nil {
		hit, err := uc.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("dashboard: lectura de caché fallida")
		} else if hit {
			return &cached, nil
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type kindResult struct {
		kind     entity.DocumentKind
		summary  dto.KindSummaryDTO
		excluded int
		err      error
	}
	type inventoryResult struct {
		metrics pricing.InventoryMetrics
		err     error
	}

	kindCh := make(chan kindResult, len(entity.DocumentKinds))
	invCh := make(chan inventoryResult, 1)

	for _, kind := range entity.DocumentKinds {
		go func(kind entity.DocumentKind) {
			docs, err := uc.docs.ListByKindBetween(ctx, kind, monthStart, monthEnd)
			if err != nil {
				kindCh <- kindResult{kind: kind, err: err}
				return
			}
			summary, excluded := summarize(kind, docs)
			kindCh <- kindResult{kind: kind, summary: summary, excluded: excluded}
		}(kind)
	}
	go func() {
		m, err := uc.InventoryMetrics(ctx)
		invCh <- inventoryResult{metrics: m, err: err}
	}()

	out := &dto.DashboardSummaryDTO{
		DateLabel:   monthLabel(now),
		GeneratedAt: now.Format(time.RFC3339),
	}
	var firstErr error
	for range entity.DocumentKinds {
		r := <-kindCh
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("dashboard: %s: %w", r.kind, r.err)
			}
			continue
		}
		switch r.kind {
		case entity.KindCotizacion:
			out.Quotes = r.summary
		case entity.KindPedido:
			out.Orders = r.summary
			out.ExcludedOrders = r.excluded
		case entity.KindCompra:
			out.Purchases = r.summary
		case entity.KindRemision:
			out.DeliveryNotes = r.summary
		}
	}
	inv := <-invCh
	if firstErr != nil {
		return nil, firstErr
	}
	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", inv.err)
	}
	out.Inventory = inv.metrics

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, key, out); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("dashboard: escritura de caché fallida")
		}
	}
	return out, nil
}

// Invalidate descarta el resumen cacheado del mes en curso.
func (uc *DashboardUseCase) Invalidate(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Delete(ctx, dashboardKey(uc.now()))
}

// InventoryMetrics métricas del catálogo completo.
func (uc *DashboardUseCase) InventoryMetrics(ctx context.Context) (pricing.InventoryMetrics, error) {
	products, err := uc.products.ListAll(ctx)
	if err != nil {
		return pricing.InventoryMetrics{}, fmt.Errorf("listar productos: %w", err)
	}
	stocked := make([]pricing.StockedProduct, 0, len(products))
	for _, p := range products {
		stocked = append(stocked, pricing.StockedProduct{Price: p.Price.InexactFloat64(), Stock: p.Stock})
	}
	return pricing.ComputeInventoryMetrics(stocked), nil
}

// summarize normaliza los documentos y suma su total. Solo los pedidos tienen
// estados excluidos.
func summarize(kind entity.DocumentKind, docs []*entity.Document) (dto.KindSummaryDTO, int) {
	orders := make([]*normalize.Order, 0, len(docs))
	excluded := 0
	for _, d := range docs {
		if kind == entity.KindPedido && !d.Status.Counts() {
			excluded++
			continue
		}
		orders = append(orders, documents.NormalizeDocument(d))
	}
	return dto.KindSummaryDTO{
		Kind:  string(kind),
		Count: len(orders),
		Total: pricing.SumBy(orders, func(o *normalize.Order) any { return o.Total }),
	}, excluded
}

func dashboardKey(t time.Time) string {
	return dashboardKeyPrefix + t.Format("2006-01")
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Octubre 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
