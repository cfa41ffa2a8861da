package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/morezero/gamestats/pkg/client"
	"github.com/morezero/gamestats/pkg/gateway"
)

const httpLogPrefix = "server:http"

// healthCheck is one named dependency probe reported by /health.
type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

// HealthOutput is the /health response body.
type HealthOutput struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Groups    int               `json:"groups"`
	Regions   int               `json:"regions"`
	Timestamp string            `json:"timestamp"`
}

type httpDeps struct {
	client         *client.Client
	router         *gateway.Router
	registry       *prometheus.Registry
	checks         []healthCheck
	healthTimeout  time.Duration
	requestTimeout time.Duration
}

// newHTTPHandler builds the gin engine serving health, catalog, calls and metrics.
func newHTTPHandler(d httpDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(httpMetrics(d.registry))

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d.healthTimeout)
		defer cancel()
		h := runHealthChecks(ctx, d.checks)
		view := d.client.Catalog()
		h.Groups = len(view.Groups)
		h.Regions = len(view.Regions)
		status := http.StatusOK
		if h.Status != "healthy" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, h)
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/catalog", func(c *gin.Context) {
		c.JSON(http.StatusOK, d.client.Catalog())
	})
	r.GET("/methods", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"methods": gateway.Methods()})
	})
	r.POST("/v1/call", func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d.requestTimeout)
		defer cancel()
		c.Data(http.StatusOK, "application/json", d.router.HandleMessage(ctx, body))
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{})))

	return r
}

func runHealthChecks(ctx context.Context, checks []healthCheck) *HealthOutput {
	out := &HealthOutput{
		Status:    "healthy",
		Checks:    make(map[string]string, len(checks)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	for _, hc := range checks {
		if err := hc.check(ctx); err != nil {
			out.Status = "unhealthy"
			out.Checks[hc.name] = err.Error()
			continue
		}
		out.Checks[hc.name] = "ok"
	}
	return out
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug(fmt.Sprintf("%s - %s %s status=%d latency=%s",
			httpLogPrefix, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start)))
	}
}

// httpMetrics counts requests by matched route so path parameters do not explode cardinality.
func httpMetrics(reg prometheus.Registerer) gin.HandlerFunc {
	factory := promauto.With(reg)
	requests := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gamestats",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)
	duration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gamestats",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
