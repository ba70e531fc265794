package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlaglobal/pangea-api/internal/application/analytics"
	"github.com/jlaglobal/pangea-api/internal/domain/entity"
	"github.com/jlaglobal/pangea-api/internal/domain/pricing"
	"github.com/jlaglobal/pangea-api/internal/infrastructure/cache"
	"github.com/jlaglobal/pangea-api/internal/infrastructure/memory"
	"github.com/jlaglobal/pangea-api/pkg/logger"
)

var now = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func doc(id string, kind entity.DocumentKind, status entity.DocumentStatus, payload string, created time.Time) *entity.Document {
	return &entity.Document{ID: id, Kind: kind, Status: status, Payload: json.RawMessage(payload), CreatedAt: created}
}

func fixtures() (*memory.DocumentStore, *memory.ProductStore) {
	thisMonth := now.Add(-24 * time.Hour)
	lastMonth := time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC)
	docs := memory.NewDocumentStore(
		doc("c1", entity.KindCotizacion, entity.StatusPendiente, `{"total": 1300}`, thisMonth),
		doc("c2", entity.KindCotizacion, entity.StatusPendiente, `{"attributes": {"total": 200.5}, "id": 9}`, thisMonth),
		doc("p1", entity.KindPedido, entity.StatusEntregado, `{"productos": [{"cantidad": "3", "valorUnitario": "50"}]}`, thisMonth),
		doc("p2", entity.KindPedido, entity.StatusCancelado, `{"total": 999}`, thisMonth),
		doc("p3", entity.KindPedido, entity.StatusDevuelto, `{"total": 1}`, thisMonth),
		doc("p4", entity.KindPedido, entity.StatusAgendado, `{"total": 1000}`, lastMonth),
		doc("r1", entity.KindRemision, entity.StatusEntregado, `{"productos": []}`, thisMonth),
	)
	products := &memory.ProductStore{Products: []*entity.Product{
		{ID: "a", Price: decimal.NewFromInt(10), Stock: 5},
		{ID: "b", Price: decimal.NewFromInt(20), Stock: 0},
	}}
	return docs, products
}

func newRedisCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisCache(client, time.Minute), mr
}

// ─── GetSummary ─────────────────────────────────────────────────────────────

func TestGetSummary_TotalesDelMes(t *testing.T) {
	docs, products := fixtures()
	uc := analytics.NewDashboardUseCase(docs, products, nil, logger.Nop()).WithClock(func() time.Time { return now })

	res, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Quotes.Count)
	assert.Equal(t, 1500.5, res.Quotes.Total)

	assert.Equal(t, 1, res.Orders.Count, "cancelados, devueltos y del mes anterior no suman")
	assert.Equal(t, 150.0, res.Orders.Total)
	assert.Equal(t, 2, res.ExcludedOrders)

	assert.Equal(t, 0, res.Purchases.Count)
	assert.Equal(t, 1, res.DeliveryNotes.Count)
	assert.Zero(t, res.DeliveryNotes.Total)

	assert.Equal(t, pricing.InventoryMetrics{TotalValue: 50, TotalStock: 5, AvgValuePerProduct: 25}, res.Inventory)
	assert.Equal(t, "Octubre 2026", res.DateLabel)
}

func TestGetSummary_UsaCache(t *testing.T) {
	docs, products := fixtures()
	c, mr := newRedisCache(t)
	uc := analytics.NewDashboardUseCase(docs, products, c, logger.Nop()).WithClock(func() time.Time { return now })
	ctx := context.Background()

	first, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists("pangea:dashboard:2026-10"))

	// Un cambio en la fuente no se ve hasta invalidar.
	docs.Put(doc("p5", entity.KindPedido, entity.StatusPendiente, `{"total": 50}`, now.Add(-time.Hour)))

	cached, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Orders, cached.Orders)

	require.NoError(t, uc.Invalidate(ctx))
	assert.False(t, mr.Exists("pangea:dashboard:2026-10"))

	fresh, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Orders.Count)
	assert.Equal(t, 200.0, fresh.Orders.Total)
}

func TestGetSummary_CacheCaidaNoBloquea(t *testing.T) {
	docs, products := fixtures()
	c, mr := newRedisCache(t)
	mr.Close()

	uc := analytics.NewDashboardUseCase(docs, products, c, logger.Nop()).WithClock(func() time.Time { return now })
	res, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150.0, res.Orders.Total)
}

func TestGetSummary_ErrorDeRepositorio(t *testing.T) {
	docs, products := fixtures()
	docs.Err = errors.New("timeout")

	_, err := analytics.NewDashboardUseCase(docs, products, nil, nil).WithClock(func() time.Time { return now }).GetSummary(context.Background())
	assert.ErrorContains(t, err, "timeout")

	docs.Err = nil
	products.Err = errors.New("sin catálogo")
	_, err = analytics.NewDashboardUseCase(docs, products, nil, nil).WithClock(func() time.Time { return now }).GetSummary(context.Background())
	assert.ErrorContains(t, err, "sin catálogo")
}

// ─── InventoryMetrics ───────────────────────────────────────────────────────

func TestInventoryMetrics_CatalogoVacio(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewDocumentStore(), &memory.ProductStore{}, nil, nil)

	got, err := uc.InventoryMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pricing.InventoryMetrics{}, got)
}

func TestInventoryMetrics_PrecioDecimal(t *testing.T) {
	products := &memory.ProductStore{Products: []*entity.Product{
		{ID: "a", Price: decimal.RequireFromString("3.33"), Stock: 3},
	}}
	uc := analytics.NewDashboardUseCase(memory.NewDocumentStore(), products, nil, nil)

	got, err := uc.InventoryMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9.99, got.TotalValue)
	assert.Equal(t, int64(3), got.TotalStock)
}
