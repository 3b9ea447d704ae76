package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
)

// MetricsService owns the Prometheus registry for the capacity API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheLookups    *prometheus.CounterVec
	evaluations     *prometheus.CounterVec
	searchDays      prometheus.Observer
	searchTotal     *prometheus.CounterVec
	planningJobs    *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	cacheHitCount        uint64
	cacheMissCount       uint64
	evaluationCount      uint64
	availableCount       uint64
	searchCount          uint64
	exhaustedCount       uint64
}

// NewMetricsService registers collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "workcenter_cache_latency_seconds",
		Help:    "Latency of work center cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workcenter_cache_lookups_total",
		Help: "Work center cache lookups by result",
	}, []string{"result"})

	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "capacity_evaluations_total",
		Help: "Single-date capacity evaluations by reason code",
	}, []string{"outcome"})

	searchDays := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "capacity_search_days",
		Help:    "Days examined by forward capacity searches",
		Buckets: []float64{0, 1, 2, 3, 5, 7, 14, 30, 60, 90},
	})

	searchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "capacity_searches_total",
		Help: "Forward capacity searches by outcome",
	}, []string{"outcome"})

	planningJobs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planning_jobs_total",
		Help: "Asynchronous planning jobs by result",
	}, []string{"result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheLookups, evaluations, searchDays, searchTotal, planningJobs, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheLookups:    cacheLookups,
		evaluations:     evaluations,
		searchDays:      searchDays,
		searchTotal:     searchTotal,
		planningJobs:    planningJobs,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheLookup records a work center cache hit or miss.
func (m *MetricsService) RecordCacheLookup(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
	atomic.AddUint64(&m.cacheMissCount, 1)
}

// RecordEvaluation counts one single-date verdict.
func (m *MetricsService) RecordEvaluation(code models.ReasonCode, available bool) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(string(code)).Inc()
	atomic.AddUint64(&m.evaluationCount, 1)
	if available {
		atomic.AddUint64(&m.availableCount, 1)
	}
}

// RecordSearch records how far a forward search went. An empty outcome means the horizon was exhausted.
func (m *MetricsService) RecordSearch(outcome models.SearchOutcome, daysSearched int) {
	if m == nil {
		return
	}
	label := string(outcome)
	if outcome == "" {
		label = "exhausted"
		atomic.AddUint64(&m.exhaustedCount, 1)
	}
	m.searchTotal.WithLabelValues(label).Inc()
	m.searchDays.Observe(float64(daysSearched))
	atomic.AddUint64(&m.searchCount, 1)
}

// RecordPlanningJob counts a finished planning job.
func (m *MetricsService) RecordPlanningJob(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.planningJobs.WithLabelValues("failed").Inc()
		return
	}
	m.planningJobs.WithLabelValues("succeeded").Inc()
}

// Snapshot aggregates the in-process counters.
func (m *MetricsService) Snapshot() models.ServiceMetrics {
	if m == nil {
		return models.ServiceMetrics{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var ratio float64
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}
	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return models.ServiceMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		CacheHits:                hits,
		CacheMisses:              misses,
		CacheHitRatio:            ratio,
		Evaluations:              atomic.LoadUint64(&m.evaluationCount),
		EvaluationsAvailable:     atomic.LoadUint64(&m.availableCount),
		Searches:                 atomic.LoadUint64(&m.searchCount),
		SearchesExhausted:        atomic.LoadUint64(&m.exhaustedCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
