package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/campaign-dash/internal/models"
)

// Metrics holds the Prometheus collectors of the dashboard service.
type Metrics struct {
	reg *prometheus.Registry

	LoadDuration   prometheus.Histogram
	LoadFailures   *prometheus.CounterVec
	RowsLoaded     prometheus.Gauge
	ImputedCells   *prometheus.CounterVec
	SpendAnomalies prometheus.Counter

	DashboardBuilds *prometheus.CounterVec
	SelectedRows    prometheus.Histogram

	HTTPRequests *prometheus.HistogramVec
}

// New registers every collector on a fresh registry.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		LoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time spent reading and cleaning the campaign sheet",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LoadFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures_total",
			Help:      "Failed loads by error kind",
		}, []string{"kind"}),
		RowsLoaded: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_loaded",
			Help:      "Campaign records in the loaded table",
		}),
		ImputedCells: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imputed_cells_total",
			Help:      "Missing cells filled by the cleaner, by column",
		}, []string{"column"}),
		SpendAnomalies: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spend_anomalies_total",
			Help:      "Rows with a negative or empty amount spent",
		}),
		DashboardBuilds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_builds_total",
			Help:      "Dashboard recomputations by outcome",
		}, []string{"outcome"}),
		SelectedRows: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dashboard_selected_rows",
			Help:      "Records left after filtering",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		HTTPRequests: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) LoadSucceeded(stats models.LoadStats, took time.Duration) {
	m.LoadDuration.Observe(took.Seconds())
	m.RowsLoaded.Set(float64(stats.RowsKept))
	for col, n := range stats.Imputed {
		m.ImputedCells.WithLabelValues(col).Add(float64(n))
	}
	m.SpendAnomalies.Add(float64(stats.SpendAnomalies))
}

func (m *Metrics) LoadFailed(kind string) {
	m.LoadFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) DashboardBuilt(ok bool, selected, rows int) {
	if !ok {
		m.DashboardBuilds.WithLabelValues("error").Inc()
		return
	}
	if selected == 0 {
		m.DashboardBuilds.WithLabelValues("empty_selection").Inc()
	} else {
		m.DashboardBuilds.WithLabelValues("ok").Inc()
	}
	m.SelectedRows.Observe(float64(rows))
}

func (m *Metrics) RecordHTTP(route, method string, status int, took time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Observe(took.Seconds())
}
