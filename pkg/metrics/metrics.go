// Package metrics exposes Prometheus counters for the quote engine. A nil
// *Metrics is a valid no-op recorder, so tests and the CLI can skip wiring
// it entirely.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	quotesBuilt     prometheus.Counter
	quotesRefreshed prometheus.Counter
	quotesExpired   prometheus.Counter
	swapsTotal      *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates the metric set on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		quotesBuilt: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowswap_quotes_built_total",
			Help: "Quotes successfully built and cached.",
		}),
		quotesRefreshed: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowswap_quotes_refreshed_total",
			Help: "Quotes re-priced through the refresh endpoint.",
		}),
		quotesExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowswap_quotes_expired_total",
			Help: "Quote lookups that found an expired or unknown id.",
		}),
		swapsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flowswap_swaps_total",
			Help: "Swap executions by final status.",
		}, []string{"status"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flowswap_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		registry: reg,
	}
}

// Handler returns the scrape endpoint for this metric set.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) QuoteBuilt() {
	if m != nil {
		m.quotesBuilt.Inc()
	}
}

func (m *Metrics) QuoteRefreshed() {
	if m != nil {
		m.quotesRefreshed.Inc()
	}
}

func (m *Metrics) QuoteExpired() {
	if m != nil {
		m.quotesExpired.Inc()
	}
}

func (m *Metrics) SwapFinished(status string) {
	if m != nil {
		m.swapsTotal.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) HTTPRequest(route, code string) {
	if m != nil {
		m.httpRequests.WithLabelValues(route, code).Inc()
	}
}
