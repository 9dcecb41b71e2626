// Package metrics exposes Prometheus instruments for invoice generation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "folio"

// Metrics groups the service instruments on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	invoicesGenerated prometheus.Counter
	invoiceAmount     prometheus.Histogram
	counterErrors     *prometheus.CounterVec
	lineEdits         *prometheus.CounterVec
	renderDuration    *prometheus.HistogramVec
	exportResults     *prometheus.CounterVec
	rateCardReloads   prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		invoicesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_generated_total",
			Help:      "Numbered invoices generated.",
		}),
		invoiceAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invoice_grand_total_rupees",
			Help:      "Grand total of generated invoices.",
			Buckets:   prometheus.ExponentialBuckets(1000, 2.5, 10),
		}),
		counterErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "counter_store_errors_total",
			Help:      "Invoice counter store failures by backend.",
		}, []string{"backend"}),
		lineEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_edits_total",
			Help:      "Room line edits by field.",
		}, []string{"field"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering invoice documents.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		exportResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "register_exports_total",
			Help:      "Invoice register export attempts by result.",
		}, []string{"result"}),
		rateCardReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_card_changes_total",
			Help:      "Rate table replacements from reloads or edits.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.invoicesGenerated,
		m.invoiceAmount,
		m.counterErrors,
		m.lineEdits,
		m.renderDuration,
		m.exportResults,
		m.rateCardReloads,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) InvoiceGenerated(grandTotal float64) {
	if m == nil {
		return
	}
	m.invoicesGenerated.Inc()
	m.invoiceAmount.Observe(grandTotal)
}

func (m *Metrics) CounterError(backend string) {
	if m == nil {
		return
	}
	m.counterErrors.WithLabelValues(backend).Inc()
}

func (m *Metrics) LineEdited(field string) {
	if m == nil {
		return
	}
	m.lineEdits.WithLabelValues(field).Inc()
}

// ObserveRender records how long rendering took since start.
func (m *Metrics) ObserveRender(format string, start time.Time) {
	if m == nil {
		return
	}
	m.renderDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
}

func (m *Metrics) Export(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.exportResults.WithLabelValues(result).Inc()
}

func (m *Metrics) RateCardChanged() {
	if m == nil {
		return
	}
	m.rateCardReloads.Inc()
}
