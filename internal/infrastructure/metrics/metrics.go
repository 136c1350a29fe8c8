// Package metrics expone métricas Prometheus de la API: peticiones HTTP, latencia y eventos del catálogo.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Eventos de negocio contados en catalog_events_total.
const (
	EventUserRegistered    = "user_registered"
	EventLoginFailed       = "login_failed"
	EventDuplicateRejected = "duplicate_rejected"
	EventInconsistentStock = "inconsistent_stock"
	EventStockReport       = "stock_report"
)

// Metrics agrupa los collectors en un registry propio (sin estado global, un registry por instancia).
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	events   *prometheus.CounterVec
}

// New registra los collectors con el prefijo namespace (ej. "farmacias").
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código de estado.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_events_total",
			Help:      "Eventos de negocio del catálogo.",
		}, []string{"event"}),
	}
	reg.MustRegister(
		m.requests, m.latency, m.events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest registra una petición terminada. route es el patrón (/api/medicines/:id), no la URL.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Event incrementa el contador de un evento de negocio.
func (m *Metrics) Event(name string) {
	m.events.WithLabelValues(name).Inc()
}

// Handler sirve el formato de exposición de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry expone el registry (tests y collectors adicionales).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
