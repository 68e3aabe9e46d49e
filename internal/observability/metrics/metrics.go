package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "financeiro_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	cashflowComputeTotal   *prometheus.CounterVec
	cashflowComputeLatency *prometheus.HistogramVec
	cashflowExportTotal    *prometheus.CounterVec
	cashflowExportLatency  *prometheus.HistogramVec

	tituloOpsTotal *prometheus.CounterVec

	overdueSweepTotal   *prometheus.CounterVec
	overdueSweepLatency *prometheus.HistogramVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method and status",
			},
			[]string{"method", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		)

		cashflowComputeTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cashflow_compute_total",
				Help: "Total cash-flow computations by result",
			},
			[]string{"result"},
		)
		cashflowComputeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "cashflow_compute_latency_seconds",
				Help:    "Cash-flow computation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		cashflowExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cashflow_export_total",
				Help: "Total cash-flow export operations by format and result",
			},
			[]string{"format", "result"},
		)
		cashflowExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "cashflow_export_latency_seconds",
				Help:    "Cash-flow export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		tituloOpsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "titulo_ops_total",
				Help: "Total titulo operations by op and result",
			},
			[]string{"op", "result"},
		)

		overdueSweepTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "overdue_sweep_total",
				Help: "Total overdue sweep runs by result",
			},
			[]string{"result"},
		)
		overdueSweepLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "overdue_sweep_latency_seconds",
				Help:    "Overdue sweep latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			cashflowComputeTotal,
			cashflowComputeLatency,
			cashflowExportTotal,
			cashflowExportLatency,
			tituloOpsTotal,
			overdueSweepTotal,
			overdueSweepLatency,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveHTTP records one HTTP request.
func ObserveHTTP(method, status string, duration time.Duration) {
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, status).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method).Observe(duration.Seconds())
	}
}

// ObserveCashflowCompute records computation latency and result.
func ObserveCashflowCompute(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if cashflowComputeTotal != nil {
		cashflowComputeTotal.WithLabelValues(result).Inc()
	}
	if cashflowComputeLatency != nil {
		cashflowComputeLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveCashflowExport records export latency and result.
func ObserveCashflowExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if cashflowExportTotal != nil {
		cashflowExportTotal.WithLabelValues(format, result).Inc()
	}
	if cashflowExportLatency != nil {
		cashflowExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncTituloOp increments título operation counters.
func IncTituloOp(op, result string) {
	if op == "" {
		op = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if tituloOpsTotal != nil {
		tituloOpsTotal.WithLabelValues(op, result).Inc()
	}
}

// ObserveOverdueSweep records sweep latency and result.
func ObserveOverdueSweep(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if overdueSweepTotal != nil {
		overdueSweepTotal.WithLabelValues(result).Inc()
	}
	if overdueSweepLatency != nil {
		overdueSweepLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
