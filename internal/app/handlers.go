package app

import (
	"github.com/surakshalabs/suraksha-backend/internal/catalog"
	"github.com/surakshalabs/suraksha-backend/internal/http/handlers"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Progress    *handlers.ProgressHandler
	Leaderboard *handlers.LeaderboardHandler
	Stats       *handlers.StatsHandler
	Certificate *handlers.CertificateHandler
	Catalog     *handlers.CatalogHandler
}

func wireHandlers(log *logger.Logger, services Services, cat *catalog.Catalog) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      handlers.NewHealthHandler(),
		Auth:        handlers.NewAuthHandler(services.Auth),
		User:        handlers.NewUserHandler(services.User),
		Progress:    handlers.NewProgressHandler(services.Progress),
		Leaderboard: handlers.NewLeaderboardHandler(services.Leaderboard),
		Stats:       handlers.NewStatsHandler(services.Stats),
		Certificate: handlers.NewCertificateHandler(services.Progress, services.CertificateImage),
		Catalog:     handlers.NewCatalogHandler(cat),
	}
}
