package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the bot's Prometheus collectors on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	OrdersReceived prometheus.Counter
	LinesDropped   prometheus.Counter
	ClaimAttempts  prometheus.Counter
	ClaimConflicts prometheus.Counter
	TicketsCreated prometheus.Counter
	TicketFailures prometheus.Counter
}

// NewMetrics builds and registers the bot's collectors.
func NewMetrics() *Metrics {
	r := prometheus.NewRegistry()
	m := &Metrics{
		reg:            r,
		OrdersReceived: prometheus.NewCounter(prometheus.CounterOpts{Name: "bot_orders_received_total"}),
		LinesDropped:   prometheus.NewCounter(prometheus.CounterOpts{Name: "bot_order_lines_dropped_total"}),
		ClaimAttempts:  prometheus.NewCounter(prometheus.CounterOpts{Name: "bot_claim_attempts_total"}),
		ClaimConflicts: prometheus.NewCounter(prometheus.CounterOpts{Name: "bot_claim_conflicts_total"}),
		TicketsCreated: prometheus.NewCounter(prometheus.CounterOpts{Name: "bot_tickets_created_total"}),
		TicketFailures: prometheus.NewCounter(prometheus.CounterOpts{Name: "bot_ticket_failures_total"}),
	}
	r.MustRegister(m.OrdersReceived, m.LinesDropped, m.ClaimAttempts, m.ClaimConflicts, m.TicketsCreated, m.TicketFailures)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
