package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce          sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	pageNavigationsTotal *prometheus.CounterVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "union_site",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"})

		httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "union_site",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"})

		pageNavigationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "union_site",
			Subsystem: "router",
			Name:      "navigations_total",
			Help:      "Total page navigations by section",
		}, []string{"section"})
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	initMetrics()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// CountNavigation records one resolved page navigation.
func CountNavigation(section string) {
	initMetrics()
	if section == "" {
		section = "home"
	}
	pageNavigationsTotal.WithLabelValues(section).Inc()
}
