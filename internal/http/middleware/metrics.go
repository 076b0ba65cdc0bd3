// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file holds the Prometheus collectors. HTTP traffic is labelled by
// method, registered route and status. Requests that match no route share
// the "unmatched" path label so that scanners cannot grow the series count.
//
// Two domain collectors sit next to the HTTP ones:
//
//   - calendar_toggle_total(subject, outcome) counts reaction and declaration
//     toggles by result (added, removed, declared, conflict, rejected, error).
//   - calendar_aggregate_duration_seconds(viewer) times day state assembly.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// UnmatchedPath is the path label used when no route matched.
const UnmatchedPath = "unmatched"

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// Calendar payloads are a few KiB; article bodies are capped at 512KiB.
	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses in bytes.",
			Buckets: prometheus.ExponentialBuckets(256, 4, 7), // 256B..1MiB
		},
		[]string{"method", "path"},
	)

	toggleTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calendar_toggle_total",
			Help: "Reaction and declaration toggles by outcome.",
		},
		[]string{"subject", "outcome"},
	)

	aggregateLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calendar_aggregate_duration_seconds",
			Help:    "Time to assemble day states for the calendar window.",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"viewer"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize, toggleTotal, aggregateLat)
}

// Metrics instruments every request with the HTTP collectors above.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = UnmatchedPath
		}
		method := c.Request.Method
		httpReqs.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		// Size is -1 when nothing was written.
		if size := c.Writer.Size(); size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}

// RecordToggle counts one toggle attempt. subject is "reaction" or
// "declaration".
func RecordToggle(subject, outcome string) {
	toggleTotal.WithLabelValues(subject, outcome).Inc()
}

// ObserveAggregate records how long one DayStates call took.
func ObserveAggregate(d time.Duration, viewer bool) {
	aggregateLat.WithLabelValues(strconv.FormatBool(viewer)).Observe(d.Seconds())
}
