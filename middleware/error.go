package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/spdeepak/rex-identity-server/internal/error"
)

func ErrorMiddleware(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			log.Ctx(c).Error().Any("error", err).Str("path", c.Request.URL.Path).Msg("Panic occurred")
			// Respond with an error to the client
			internalError := httperror.NewWithMetadata(httperror.UndefinedErrorCode, fmt.Sprintf("%v", err))
			c.AbortWithStatusJSON(internalError.StatusCode, internalError)
			return
		}
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		er := c.Errors.Last()
		var e httperror.HttpError
		switch {
		case errors.As(er.Err, &e):
			if e.StatusCode >= 400 && e.StatusCode < 500 {
				logWarning(c, er)
			} else {
				logError(c, er)
			}
			c.AbortWithStatusJSON(e.StatusCode, e)
		default:
			logError(c, er)
			c.AbortWithStatusJSON(http.StatusInternalServerError, httperror.New(httperror.UndefinedErrorCode))
		}
	}()
	c.Next()
}

func logError(c *gin.Context, err *gin.Error) {
	log.Ctx(c).Error().
		Any("error", err).
		Str("path", c.Request.URL.Path).
		Send()
}

func logWarning(c *gin.Context, err *gin.Error) {
	log.Ctx(c).Warn().
		Any("error", err).
		Str("path", c.Request.URL.Path).
		Send()
}

// logRejection keeps the reason of a 401 server side. Lookup failures are warnings, everything else is debug.
func logRejection(c *gin.Context, msg, reason string, err error) {
	event := log.Ctx(c).Debug()
	if err != nil && errors.Is(err, httperror.New(httperror.DatabaseError)) {
		event = log.Ctx(c).Warn()
	}
	event.
		Str("reason", reason).
		Str("path", c.Request.URL.Path).
		AnErr("error", err).
		Msg(msg)
}
