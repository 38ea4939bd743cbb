package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// StatusCategoryCounter counts responses by status class.
	StatusCategoryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
		},
		[]string{"category"},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDurationHistogram)
	prometheus.MustRegister(StatusCategoryCounter)
}

// Middleware records request metrics for every handled route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		statusStr := strconv.Itoa(status)

		RequestCounter.WithLabelValues(method, path, statusStr).Inc()
		RequestDurationHistogram.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())

		switch {
		case status >= 200 && status < 300:
			StatusCategoryCounter.WithLabelValues("2xx").Inc()
		case status >= 400 && status < 500:
			StatusCategoryCounter.WithLabelValues("4xx").Inc()
		case status >= 500:
			StatusCategoryCounter.WithLabelValues("5xx").Inc()
		}
	}
}

// Handler returns the HTTP handler exposing prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
