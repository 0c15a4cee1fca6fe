// Package metrics expone en Prometheus el resultado de las operaciones del almacén,
// las notas vencidas y las peticiones HTTP.
package metrics

import (
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas/internal/domain"
)

// Resultados de una operación.
const (
	ResultOK         = "ok"
	ResultValidation = "validation"
	ResultNotFound   = "not_found"
	ResultIO         = "io"
	ResultError      = "error"
)

// Collector agrupa las métricas de la aplicación.
type Collector struct {
	operations    *prometheus.CounterVec
	overdueCount  prometheus.Gauge
	overdueAmount prometheus.Gauge
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New crea y registra las métricas en reg con el prefijo namespace.
func New(namespace string, reg prometheus.Registerer) *Collector {
	ns := sanitize(namespace)
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "store_operations_total",
			Help:      "Operaciones de escritura sobre clientes, notas y snapshots por resultado.",
		}, []string{"resource", "op", "result"}),
		overdueCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "invoices_overdue",
			Help:      "Notas pendientes con vencimiento pasado.",
		}),
		overdueAmount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "invoices_overdue_amount",
			Help:      "Suma de los totales de las notas vencidas.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg != nil {
		reg.MustRegister(c.operations, c.overdueCount, c.overdueAmount, c.httpRequests, c.httpDuration)
	}
	return c
}

// ObserveOperation cuenta una operación del almacén o del gestor de backups.
func (c *Collector) ObserveOperation(resource, op string, err error) {
	c.operations.WithLabelValues(resource, op, Classify(err)).Inc()
}

// SetOverdue publica la cantidad y el monto de notas vencidas.
func (c *Collector) SetOverdue(count int, amount decimal.Decimal) {
	c.overdueCount.Set(float64(count))
	c.overdueAmount.Set(amount.InexactFloat64())
}

// ObserveHTTP registra una petición atendida.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Classify traduce un error de dominio a la etiqueta result.
func Classify(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrValidation):
		return ResultValidation
	case errors.Is(err, domain.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, domain.ErrIO):
		return ResultIO
	default:
		return ResultError
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func sanitize(ns string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, ns)
}
