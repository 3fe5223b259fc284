package middleware

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	requestMethod = "requestMethod"
	requestPath   = "requestPath"
	statusCode    = "statusCode"
	result        = "result"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rex_identity_api_request_counter",
			Help: "API request counter",
		}, []string{requestMethod, requestPath, statusCode},
	)
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rex_identity_api_latency_milliseconds",
			Help:    "API request latency",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{requestMethod, requestPath, statusCode},
	)
	authenticationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rex_identity_authentication_total",
			Help: "Bearer token authentications by result",
		}, []string{result},
	)
	authorizationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rex_identity_authorization_total",
			Help: "Permission checks by result",
		}, []string{result},
	)
)

func init() {
	prometheus.MustRegister(requestCounter, requestLatency, authenticationTotal, authorizationTotal)
}

func MetricHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		duration := time.Since(start)
		status := ctx.Writer.Status()
		httpStatusCode := strconv.Itoa(status)
		if status >= 400 {
			slog.DebugContext(ctx, fmt.Sprintf("Request failed with status code %s for %s at %s from %s", httpStatusCode, ctx.Request.Method, ctx.FullPath(), ctx.Request.Host))
		}
		requestCounter.With(
			prometheus.Labels{
				requestMethod: ctx.Request.Method,
				requestPath:   ctx.FullPath(),
				statusCode:    httpStatusCode,
			},
		).Inc()
		requestLatency.WithLabelValues(ctx.Request.Method, ctx.FullPath(), httpStatusCode).
			Observe(float64(duration.Microseconds()) / 1000)
	}
}
