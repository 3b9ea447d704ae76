package models

import "time"

// ServiceMetrics is an in-process summary of the counters exposed on /metrics.
type ServiceMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	Evaluations              uint64    `json:"evaluations"`
	EvaluationsAvailable     uint64    `json:"evaluations_available"`
	Searches                 uint64    `json:"searches"`
	SearchesExhausted        uint64    `json:"searches_exhausted"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
