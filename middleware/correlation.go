package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/spdeepak/rex-identity-server/internal/ids"
	"github.com/spdeepak/rex-identity-server/internal/logging"
)

const maxCorrelationIDLength = 128

// CorrelationID keeps an incoming Correlation-Id or assigns a new ULID and echoes it on the response.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(logging.CorrelationIdHeader)
		if correlationID == "" || len(correlationID) > maxCorrelationIDLength {
			correlationID = ids.New()
		}
		c.Set(logging.CorrelationIdHeader, correlationID)
		c.Header(logging.CorrelationIdHeader, correlationID)
		c.Next()
	}
}
