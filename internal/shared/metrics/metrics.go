package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campfire_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campfire_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campfire_recommendations_total",
		Help: "Recommendation requests by outcome.",
	}, []string{"outcome"})

	RecommendationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campfire_recommendation_duration_seconds",
		Help:    "End-to-end recommendation pipeline latency.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	PlacesCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campfire_places_calls_total",
		Help: "Outbound places provider calls.",
	}, []string{"provider", "operation", "outcome"})

	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campfire_cache_lookups_total",
		Help: "Cache lookups by cache name and result.",
	}, []string{"cache", "result"})

	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "campfire_circuit_breaker_state",
		Help: "Circuit breaker state (0 closed, 1 half-open, 2 open).",
	}, []string{"name"})

	HandlerPanicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campfire_handler_panics_total",
		Help: "Recovered handler panics by route.",
	}, []string{"route"})

	FeedbackVotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campfire_feedback_votes_total",
		Help: "Feedback votes by resulting action.",
	}, []string{"action"})
)

// ObserveRecommendation records one pipeline run.
func ObserveRecommendation(outcome string, elapsed time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(elapsed.Seconds())
}

// IncPlacesCall counts a provider call.
func IncPlacesCall(provider, operation, outcome string) {
	PlacesCallsTotal.WithLabelValues(provider, operation, outcome).Inc()
}

// IncCacheLookup counts a cache hit or miss.
func IncCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// SetBreakerState publishes a circuit breaker state.
func SetBreakerState(name string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
}

// IncFeedbackVote counts a vote by what it did to the stored vote.
func IncFeedbackVote(action string) {
	FeedbackVotesTotal.WithLabelValues(action).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
