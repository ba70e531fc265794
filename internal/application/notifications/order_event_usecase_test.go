package notifications_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlaglobal/pangea-api/internal/application/dto"
	"github.com/jlaglobal/pangea-api/internal/application/notifications"
	"github.com/jlaglobal/pangea-api/internal/domain"
	"github.com/jlaglobal/pangea-api/internal/domain/entity"
	"github.com/jlaglobal/pangea-api/internal/domain/pricing"
	"github.com/jlaglobal/pangea-api/internal/infrastructure/mail"
	"github.com/jlaglobal/pangea-api/internal/infrastructure/memory"
	"github.com/jlaglobal/pangea-api/pkg/logger"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type sentEmail struct {
	To, Subject, HTML string
}

type inMemoryMailer struct {
	Outbox []sentEmail
	Err    error
}

func (m *inMemoryMailer) Send(_ context.Context, to, subject, html string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Outbox = append(m.Outbox, sentEmail{To: to, Subject: subject, HTML: html})
	return nil
}

type invalidator struct{ calls int }

func (i *invalidator) Invalidate(context.Context) error {
	i.calls++
	return nil
}

// racingDocs simula otra petición que cambia el estado justo después de leerlo.
type racingDocs struct {
	*memory.DocumentStore
	next entity.DocumentStatus
}

func (r *racingDocs) GetByID(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	d, err := r.DocumentStore.GetByID(ctx, kind, id)
	if err != nil || d == nil {
		return d, err
	}
	changed := *d
	changed.Status = r.next
	r.Put(&changed)
	return d, nil
}

type notificationCounter map[string]int

func (c notificationCounter) IncNotification(event, result string) { c[event+":"+result]++ }

const orderPayload = `{
	"_id": "ped-1",
	"numeroPedido": "PED-0042",
	"cliente": {"data": {"_id": "cli-1", "nombre": "Ferretería Sur", "email": "compras@sur.co"}},
	"productos": [
		{"producto": {"_id": "p1", "nombre": "Taladro"}, "cantidad": 1, "valorUnitario": 1000, "descuento": 0},
		{"producto": "p2", "cantidad": 3, "valorUnitario": 200, "descuento": 50}
	]
}`

type fixture struct {
	docs    *memory.DocumentStore
	clients *memory.ClientStore
	mailer  *inMemoryMailer
	cache   *invalidator
	counter notificationCounter
	uc      *notifications.OrderEventUseCase
}

func newFixture(status entity.DocumentStatus, payload, clientID string) *fixture {
	f := &fixture{
		docs: memory.NewDocumentStore(&entity.Document{
			ID: "ped-1", Kind: entity.KindPedido, Status: status, ClientID: clientID,
			Payload: json.RawMessage(payload),
		}),
		clients: &memory.ClientStore{Clients: map[string]*entity.Client{
			"cli-2": {ID: "cli-2", Name: "Constructora Norte", Email: "pagos@norte.co"},
		}},
		mailer:  &inMemoryMailer{},
		cache:   &invalidator{},
		counter: notificationCounter{},
	}
	f.uc = notifications.NewOrderEventUseCase(f.docs, f.clients, f.mailer, mail.NewRenderer(), f.cache, f.counter, logger.Nop())
	return f
}

func (f *fixture) status(t *testing.T) entity.DocumentStatus {
	t.Helper()
	d, err := f.docs.GetByID(context.Background(), entity.KindPedido, "ped-1")
	require.NoError(t, err)
	return d.Status
}

// ─── Apply ──────────────────────────────────────────────────────────────────

func TestApply_CanceladoNotificaAlClienteEmbebido(t *testing.T) {
	f := newFixture(entity.StatusPendiente, orderPayload, "")

	res, err := f.uc.Apply(context.Background(), "ped-1", dto.OrderEventRequest{Event: "cancelado"})
	require.NoError(t, err)

	assert.Equal(t, "cancelado", res.Status)
	assert.True(t, res.Notified)
	assert.Equal(t, "compras@sur.co", res.Recipient)
	assert.Equal(t, pricing.Totals{GrossSubtotal: 1600, TotalDiscount: 300, NetTotal: 1300}, res.Totals)
	assert.Equal(t, entity.StatusCancelado, f.status(t))

	require.Len(t, f.mailer.Outbox, 1)
	sent := f.mailer.Outbox[0]
	assert.Equal(t, "compras@sur.co", sent.To)
	assert.Contains(t, sent.Subject, "PED-0042")
	assert.Contains(t, sent.HTML, "Taladro")
	assert.Contains(t, sent.HTML, "p2")

	assert.Equal(t, 1, f.cache.calls)
	assert.Equal(t, 1, f.counter["cancelado:sent"])
}

func TestApply_AgendadoResuelveClienteDelRepositorio(t *testing.T) {
	f := newFixture(entity.StatusPendiente, `{"productos": [{"cantidad": 2, "precioUnitario": 10}]}`, "cli-2")
	when := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)

	res, err := f.uc.Apply(context.Background(), "ped-1", dto.OrderEventRequest{Event: "agendado", ScheduledFor: &when})
	require.NoError(t, err)

	assert.True(t, res.Notified)
	assert.Equal(t, "pagos@norte.co", res.Recipient)
	require.Len(t, f.mailer.Outbox, 1)
	assert.Contains(t, f.mailer.Outbox[0].HTML, "Constructora Norte")
	assert.Contains(t, f.mailer.Outbox[0].HTML, "20/10/2026")
}

func TestApply_SinDestinatario(t *testing.T) {
	f := newFixture(entity.StatusAgendado, `{"cliente": "cli-desconocido"}`, "")

	res, err := f.uc.Apply(context.Background(), "ped-1", dto.OrderEventRequest{Event: "entregado"})
	require.NoError(t, err)

	assert.False(t, res.Notified)
	assert.Equal(t, domain.ErrNoRecipient.Error(), res.Reason)
	assert.Equal(t, entity.StatusEntregado, f.status(t), "el estado se guarda igual")
	assert.Empty(t, f.mailer.Outbox)
	assert.Equal(t, 1, f.counter["entregado:skipped"])
}

func TestApply_FalloDeCorreoNoRevierteEstado(t *testing.T) {
	f := newFixture(entity.StatusEntregado, orderPayload, "")
	f.mailer.Err = errors.New("smtp caído")

	res, err := f.uc.Apply(context.Background(), "ped-1", dto.OrderEventRequest{Event: "devuelto"})
	require.NoError(t, err)

	assert.False(t, res.Notified)
	assert.Contains(t, res.Reason, "smtp caído")
	assert.Equal(t, entity.StatusDevuelto, f.status(t))
	assert.Equal(t, 1, f.counter["devuelto:failed"])
}

func TestApply_TransicionInvalida(t *testing.T) {
	f := newFixture(entity.StatusCancelado, orderPayload, "")

	_, err := f.uc.Apply(context.Background(), "ped-1", dto.OrderEventRequest{Event: "entregado"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.StatusCancelado, f.status(t))
	assert.Empty(t, f.mailer.Outbox)
	assert.Zero(t, f.cache.calls)
}

func TestApply_EntradaInvalida(t *testing.T) {
	f := newFixture(entity.StatusPendiente, orderPayload, "")
	ctx := context.Background()

	_, err := f.uc.Apply(ctx, "ped-1", dto.OrderEventRequest{Event: "facturado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Apply(ctx, "ped-1", dto.OrderEventRequest{Event: "agendado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "agendado sin fecha")

	_, err = f.uc.Apply(ctx, "no-existe", dto.OrderEventRequest{Event: "cancelado"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_CambioConcurrenteDevuelveConflicto(t *testing.T) {
	f := newFixture(entity.StatusPendiente, orderPayload, "")
	docs := &racingDocs{DocumentStore: f.docs, next: entity.StatusCancelado}
	uc := notifications.NewOrderEventUseCase(docs, f.clients, f.mailer, mail.NewRenderer(), f.cache, f.counter, logger.Nop())
	when := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)

	_, err := uc.Apply(context.Background(), "ped-1", dto.OrderEventRequest{Event: "agendado", ScheduledFor: &when})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.StatusCancelado, f.status(t), "gana el cambio que llegó primero")
	assert.Empty(t, f.mailer.Outbox)
	assert.Zero(t, f.cache.calls)
}
