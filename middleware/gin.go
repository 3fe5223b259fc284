package middleware

import (
	"log/slog"
	"slices"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/gin-gonic/gin"

	"github.com/spdeepak/rex-identity-server/internal/error"
)

var IgnorePaths = []string{
	"/live",
	"/ready",
	"/metrics",
}

// GinLogger is the middleware function that uses slog for logging
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if slices.Contains(IgnorePaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime).Milliseconds()
		statusCode := c.Writer.Status()

		logEvent := slog.Any("request", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     statusCode,
			"latency_ms": latency,
			"client_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		})

		if len(c.Errors) > 0 {
			slog.ErrorContext(c, "HTTP request failed", slog.String("errors", c.Errors.String()), logEvent)
			return
		}
		slog.InfoContext(c, "HTTP request", logEvent)
	}
}

// RequestValidator validates requests against the OpenAPI document. Requests to routes the document does not
// describe pass through untouched. Authentication is left to Authenticate.
func RequestValidator(swagger *openapi3.T) (gin.HandlerFunc, error) {
	// match on path only, not on the server host
	swagger.Servers = nil
	router, err := legacyrouter.NewRouter(swagger)
	if err != nil {
		return nil, err
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(c *gin.Context) {
		route, pathParams, err := router.FindRoute(c.Request)
		if err != nil {
			c.Next()
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options:    options,
		}
		if err = openapi3filter.ValidateRequest(c, input); err != nil {
			slog.DebugContext(c, "Request validation failed", slog.Any("error", err))
			requestErr := httperror.NewWithMetadata(httperror.InvalidRequestBody, err.Error())
			c.AbortWithStatusJSON(requestErr.StatusCode, requestErr)
			return
		}
		c.Next()
	}, nil
}
