// README: HTTP router registration.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyage/internal/config"
	"voyage/internal/http/handlers"
	"voyage/internal/http/middleware"
	"voyage/internal/modules/aiusage"
)

type RouterDeps struct {
	Itineraries handlers.Itineraries
	// Usage may be nil; /api/usage then answers 503.
	Usage          handlers.Usage
	AI             config.AIConfig
	CORSOrigins    []string
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// disabledUsage stands in when no usage backend is configured.
type disabledUsage struct{}

func (disabledUsage) Summary(context.Context, int, []string) (*aiusage.Summary, error) {
	return nil, aiusage.ErrDisabled
}

func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logging(logger.Named("http")),
		middleware.CORS(deps.CORSOrigins),
	)

	itineraryHandler := handlers.NewItineraryHandler(deps.Itineraries, logger, deps.RequestTimeout)
	r.POST("/api/generate-itinerary", itineraryHandler.Generate)
	r.POST("/api/refine-itinerary", itineraryHandler.Refine)
	r.GET("/api/test-ai", itineraryHandler.TestAI)

	envHandler := handlers.NewEnvHandler(deps.AI)
	r.GET("/api/check-env", envHandler.CheckEnv)

	chatHandler := handlers.NewChatHandler(deps.Itineraries, logger, deps.RequestTimeout)
	r.GET("/api/chat/welcome", chatHandler.Welcome)
	r.POST("/api/chat", chatHandler.Message)

	usage := deps.Usage
	if usage == nil {
		usage = disabledUsage{}
	}
	usageHandler := handlers.NewUsageHandler(usage, deps.Itineraries.Providers(), logger)
	r.GET("/api/usage", usageHandler.Summary)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
