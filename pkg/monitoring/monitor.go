package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	ResponsesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feelio_responses_recorded_total",
			Help: "Learner responses recorded, by correctness",
		},
		[]string{"correct"},
	)

	BadgesGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feelio_badges_granted_total",
			Help: "Badges granted to learners, by badge id",
		},
		[]string{"badge"},
	)

	ExternalCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feelio_external_call_duration_seconds",
			Help:    "Duration of calls to the classifier and feedback model",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"target", "status"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(ResponsesRecorded)
		prometheus.MustRegister(BadgesGranted)
		prometheus.MustRegister(ExternalCallDuration)
	})
}

func RecordResponse(correct bool) {
	ResponsesRecorded.WithLabelValues(strconv.FormatBool(correct)).Inc()
}

func RecordBadgeGrant(badgeID uint) {
	BadgesGranted.WithLabelValues(strconv.FormatUint(uint64(badgeID), 10)).Inc()
}

func ObserveExternalCall(target string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ExternalCallDuration.WithLabelValues(target, status).Observe(time.Since(start).Seconds())
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
