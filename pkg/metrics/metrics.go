package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FilesAnalyzed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "files_analyzed_total",
		Help: "Total number of trading files analyzed",
	}, []string{"status"})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analysis_duration_seconds",
		Help:    "Duration of analysis stages",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	RowsValidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rows_validated_total",
		Help: "Total number of input rows validated",
	}, []string{"status"})

	ReportRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_requests_total",
		Help: "Total number of report requests served",
	}, []string{"source"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total number of report cache hits",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total number of report cache misses",
	})
)

func RecordFileAnalyzed(status string) {
	FilesAnalyzed.WithLabelValues(status).Inc()
}

func RecordRowsValidated(status string, count int) {
	RowsValidated.WithLabelValues(status).Add(float64(count))
}

func RecordReportRequest(source string) {
	ReportRequests.WithLabelValues(source).Inc()
}

func RecordCacheHit() {
	CacheHits.Inc()
}

func RecordCacheMiss() {
	CacheMisses.Inc()
}

type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{
		start: time.Now(),
	}
}

func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(time.Since(t.start).Seconds())
}

func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
