package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for statement conversion.
type Metrics struct {
	// Conversion metrics
	DocumentsConverted *prometheus.CounterVec
	ParseFailures      *prometheus.CounterVec
	SkippedMatches     *prometheus.CounterVec
	TransactionsParsed *prometheus.CounterVec
	ConvertDuration    prometheus.Histogram
	PagesExtracted     prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates all collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DocumentsConverted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_documents_converted_total",
				Help: "Total number of statements converted by outcome",
			},
			[]string{"outcome"},
		),
		ParseFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_parse_failures_total",
				Help: "Total number of statements that failed to parse by error kind",
			},
			[]string{"kind"},
		),
		SkippedMatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_skipped_matches_total",
				Help: "Total number of matched rows dropped by rule",
			},
			[]string{"rule"},
		),
		TransactionsParsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_transactions_parsed_total",
				Help: "Total number of transactions parsed by category",
			},
			[]string{"category"},
		),
		ConvertDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "statement_convert_duration_seconds",
			Help:    "Duration of single statement conversions",
			Buckets: prometheus.DefBuckets,
		}),
		PagesExtracted: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "statement_pages_extracted",
			Help:    "Number of PDF pages extracted per statement",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		}),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "statement_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}
