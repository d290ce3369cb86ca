package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/api/chat"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/api/middleware"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/service"
)

// HealthChecker reports whether the advisory service is reachable
type HealthChecker interface {
	Health(ctx context.Context) bool
}

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	sessions *service.SessionManager,
	advisor HealthChecker,
	logger *zap.Logger,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		up := advisor != nil && advisor.Health(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "ok", "advisory": up})
	})

	// Static chat client
	SetupStaticRoutes(r)

	chatHandler := chat.NewHandler(sessions)
	chatHandler.RegisterRoutes(r.Group("/api"))

	return r
}
