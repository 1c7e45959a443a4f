package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all Prometheus metrics for the scribe service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	// Transcription metrics
	TranscriptionSubmissions *prometheus.CounterVec
	TranscriptionPolls       prometheus.Counter
	TranscriptionJobs        *prometheus.CounterVec
	TranscriptionDuration    prometheus.Histogram

	// Translation metrics
	SegmentAttempts     *prometheus.CounterVec
	SegmentResults      *prometheus.CounterVec
	SegmentDuration     prometheus.Histogram
	TranslationRuns     *prometheus.CounterVec
	TranslationDuration prometheus.Histogram
	CacheLookups        *prometheus.CounterVec

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates all metrics and registers them with a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	m := newMetrics(reg)
	m.gatherer = reg
	return m
}

// NewWithRegisterer creates all metrics on the given registerer.
// Handler serves reg when it is also a Gatherer, otherwise the default registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	m := newMetrics(reg)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TranscriptionSubmissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_transcription_submissions_total",
			Help: "Total number of transcription jobs submitted",
		}, []string{"result"}),
		TranscriptionPolls: f.NewCounter(prometheus.CounterOpts{
			Name: "scribe_transcription_polls_total",
			Help: "Total number of job status reads",
		}),
		TranscriptionJobs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_transcription_jobs_total",
			Help: "Transcription jobs by final outcome",
		}, []string{"outcome"}),
		TranscriptionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "scribe_transcription_duration_seconds",
			Help:    "Wall time from submission to terminal job status",
			Buckets: prometheus.ExponentialBuckets(1, 2, 13), // 1s to ~68 minutes
		}),

		SegmentAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_segment_attempts_total",
			Help: "Translation calls per segment attempt",
		}, []string{"result"}),
		SegmentResults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_segment_results_total",
			Help: "Resolved segments by outcome",
		}, []string{"outcome"}),
		SegmentDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "scribe_segment_duration_seconds",
			Help:    "Time to resolve one segment including retries",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~3 minutes
		}),
		TranslationRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_translation_runs_total",
			Help: "Translation runs by result",
		}, []string{"result"}),
		TranslationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "scribe_translation_duration_seconds",
			Help:    "Wall time of a full translation run",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 11),
		}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_translation_cache_lookups_total",
			Help: "Segment cache lookups by result",
		}, []string{"result"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scribe_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
}

// Handler serves the metrics registry
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RecordSubmission records the result of a job submission
func (m *Metrics) RecordSubmission(ok bool) {
	if m == nil {
		return
	}
	m.TranscriptionSubmissions.WithLabelValues(result(ok)).Inc()
}

// RecordPoll increments the status read counter
func (m *Metrics) RecordPoll() {
	if m == nil {
		return
	}
	m.TranscriptionPolls.Inc()
}

// RecordTranscription records a job's final outcome and total wait
func (m *Metrics) RecordTranscription(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.TranscriptionJobs.WithLabelValues(outcome).Inc()
	m.TranscriptionDuration.Observe(d.Seconds())
}

// RecordSegmentAttempt records one call to the translation provider
func (m *Metrics) RecordSegmentAttempt(ok bool) {
	if m == nil {
		return
	}
	m.SegmentAttempts.WithLabelValues(result(ok)).Inc()
}

// RecordSegment records a resolved segment
func (m *Metrics) RecordSegment(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.SegmentResults.WithLabelValues(outcome).Inc()
	m.SegmentDuration.Observe(d.Seconds())
}

// RecordTranslation records a finished translation run
func (m *Metrics) RecordTranslation(degraded bool, d time.Duration) {
	if m == nil {
		return
	}
	label := "complete"
	if degraded {
		label = "degraded"
	}
	m.TranslationRuns.WithLabelValues(label).Inc()
	m.TranslationDuration.Observe(d.Seconds())
}

// RecordCacheLookup records a translation cache hit or miss
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	label := "miss"
	if hit {
		label = "hit"
	}
	m.CacheLookups.WithLabelValues(label).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
