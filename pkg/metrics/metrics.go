// Package metrics expone contadores Prometheus de la aplicación.
// Se registran en un registry propio para no arrastrar los colectores
// globales de otras librerías.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores de la aplicación.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec // método + ruta + status
	CreditDebits  *prometheus.CounterVec // por acción cobrada
	OrdersCreated prometheus.Counter
}

// New construye y registra los contadores.
func New(appName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: appName,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		CreditDebits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: appName,
			Name:      "credit_debits_total",
			Help:      "Total de débitos de crédito por acción.",
		}, []string{"action"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: appName,
			Name:      "orders_created_total",
			Help:      "Total de solicitudes de cotización creadas.",
		}),
	}
	reg.MustRegister(m.HTTPRequests, m.CreditDebits, m.OrdersCreated)
	return m
}

// Handler devuelve el handler HTTP de /metrics para montar vía adaptor.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
