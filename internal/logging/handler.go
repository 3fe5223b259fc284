package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spdeepak/rex-identity-server/internal/identity"
)

const (
	CorrelationIdHeader = "Correlation-Id"
	AgentNameHeader     = "User-Agent"
	UserEmailHeader     = "User-Email"
	UserIDKey           = "User-ID"
)

type handler struct {
	slog.Handler
}

func NewHandler(h slog.Handler) slog.Handler {
	return &handler{Handler: h}
}

func NewDefaultHandler() slog.Handler {
	opts := &slog.HandlerOptions{
		Level: GetLogLevelFromEnv(),
	}
	jsonHandler := slog.NewJSONHandler(os.Stdout, opts)
	return &handler{Handler: jsonHandler}
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	extra := make(map[string]interface{})
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "!BADKEY" || a.Value.Kind() == slog.KindGroup {
			attrs := a.Value.Group()
			for _, at := range attrs {
				extra[at.Key] = at.Value.String()
			}
		} else {
			extra[a.Key] = a.Value.Any()
		}
		return true
	})

	if correlationId := ctx.Value(CorrelationIdHeader); correlationId != nil {
		extra[CorrelationIdHeader] = correlationId.(string)
	}
	if agentName := ctx.Value(AgentNameHeader); agentName != nil {
		extra[AgentNameHeader] = agentName.(string)
	}
	if userEmailHeader := ctx.Value(UserEmailHeader); userEmailHeader != nil {
		extra[UserEmailHeader] = userEmailHeader.(string)
	}
	if ginCtx, ok := ctx.(*gin.Context); ok && ginCtx.Request != nil {
		if agentName := ginCtx.Request.Header.Get(AgentNameHeader); len(agentName) > 0 {
			extra[AgentNameHeader] = agentName
		}
	}
	if principal, ok := principalFromContext(ctx); ok {
		extra[UserIDKey] = principal.ID
		if principal.Email != nil {
			extra[UserEmailHeader] = *principal.Email
		}
	}

	newRecord := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	if extraJSON, err := json.Marshal(extra); err != nil {
		newRecord.AddAttrs(slog.String("extra", "{}"))
	} else {
		newRecord.AddAttrs(slog.String("extra", string(extraJSON)))
	}

	return h.Handler.Handle(ctx, newRecord)
}

// principalFromContext also looks into the request of a gin context, which gin only does with ContextWithFallback.
func principalFromContext(ctx context.Context) (identity.Principal, bool) {
	if principal, ok := identity.PrincipalFromContext(ctx); ok {
		return principal, true
	}
	if ginCtx, ok := ctx.(*gin.Context); ok && ginCtx.Request != nil {
		return identity.PrincipalFromContext(ginCtx.Request.Context())
	}
	return identity.Principal{}, false
}

func GetLogLevelFromEnv() slog.Level {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch logLevel {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
