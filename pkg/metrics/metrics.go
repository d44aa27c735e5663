package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route template and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learninglog_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures response time by method and route template.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learninglog_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// UploadsTotal counts PDF uploads by result (stored, rejected, failed).
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learninglog_pdf_uploads_total",
			Help: "Total number of PDF uploads by result",
		},
		[]string{"result"},
	)

	// PagesExtracted counts extracted pages by status (text, empty, failed).
	PagesExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learninglog_pdf_pages_extracted_total",
			Help: "Total number of PDF pages extracted by status",
		},
		[]string{"status"},
	)
)
