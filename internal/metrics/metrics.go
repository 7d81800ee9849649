package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters the pipeline updates while a run progresses.
// The registry is gathered once at the end of the run to log a summary;
// there is no scrape endpoint in a batch tool.
type Metrics struct {
	FilesScanned   prometheus.Counter
	FilesSkipped   *prometheus.CounterVec
	DuplicateHits  prometheus.Counter
	Records        *prometheus.CounterVec
	GeocodeResults *prometheus.CounterVec
	GeocodeSeconds *prometheus.HistogramVec
}

// Skip reasons for the files_skipped counter.
const (
	ReasonUnsupported = "unsupported_type"
	ReasonUnreadable  = "unreadable"
)

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		FilesScanned: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "picatlas_files_scanned_total",
			Help: "Total number of candidate files inspected during the scan.",
		}),
		FilesSkipped: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "picatlas_files_skipped_total",
			Help: "Total number of candidate files excluded from the scan.",
		}, []string{"reason"}),
		DuplicateHits: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "picatlas_duplicate_hits_total",
			Help: "Total number of files that matched an already known fingerprint.",
		}),
		Records: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "picatlas_report_records_total",
			Help: "Total number of report records produced, by outcome.",
		}, []string{"status"}),
		GeocodeResults: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "picatlas_geocode_results_total",
			Help: "Total number of reverse geocoding calls, by outcome.",
		}, []string{"status"}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "picatlas_geocode_request_duration_seconds",
			Help:    "Duration of requests to the reverse geocoding provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}
