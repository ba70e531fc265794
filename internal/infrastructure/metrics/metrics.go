// Package metrics expone contadores Prometheus de la API. Todos los métodos
// aceptan receptor nil (métricas deshabilitadas).
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pangea"

// Metrics agrupa los vectores registrados.
type Metrics struct {
	calculations  *prometheus.CounterVec
	normalized    *prometheus.CounterVec
	notifications *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New registra las métricas en reg. Con reg nil devuelve un Metrics inerte.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	m := &Metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_calculations_total",
			Help:      "Cálculos de precios ejecutados, por operación.",
		}, []string{"op"}),
		normalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_normalized_total",
			Help:      "Documentos normalizados, por forma de origen.",
		}, []string{"shape"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_notifications_total",
			Help:      "Notificaciones de pedidos, por evento y resultado.",
		}, []string{"event", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.calculations, m.normalized, m.notifications, m.httpRequests, m.httpDuration)
	return m
}

// IncCalculation cuenta un cálculo (preview, totals, sum, inventory).
func (m *Metrics) IncCalculation(op string) {
	if m == nil || m.calculations == nil {
		return
	}
	m.calculations.WithLabelValues(label(op)).Inc()
}

// IncNormalized cuenta un documento normalizado según su forma (flat, enveloped).
func (m *Metrics) IncNormalized(shape string) {
	if m == nil || m.normalized == nil {
		return
	}
	m.normalized.WithLabelValues(label(shape)).Inc()
}

// IncNotification cuenta una notificación (result: sent, failed, skipped).
func (m *Metrics) IncNotification(event, result string) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(label(event), label(result)).Inc()
}

// ObserveHTTP registra una petición atendida.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.httpRequests == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, label(route), strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, label(route)).Observe(elapsed.Seconds())
}

func label(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
