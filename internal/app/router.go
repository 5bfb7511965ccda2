package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/surakshalabs/suraksha-backend/internal/http"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:                log,
		AuthMiddleware:     middleware.Auth,
		HealthHandler:      handlers.Health,
		AuthHandler:        handlers.Auth,
		UserHandler:        handlers.User,
		ProgressHandler:    handlers.Progress,
		LeaderboardHandler: handlers.Leaderboard,
		StatsHandler:       handlers.Stats,
		CertificateHandler: handlers.Certificate,
		CatalogHandler:     handlers.Catalog,
	})
}
