package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/surakshalabs/suraksha-backend/internal/catalog"
	redisclient "github.com/surakshalabs/suraksha-backend/internal/clients/redis"
	"github.com/surakshalabs/suraksha-backend/internal/data/db"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	cache redisclient.SnapshotCache
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	dbService, err := db.NewService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			log.Sync()
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	cache, err := redisclient.NewSnapshotCache(log)
	if err != nil {
		log.Warn("Snapshot cache disabled", "error", err)
		cache = nil
	}

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, cat, cache, reposet)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset, cat)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, handlerset, middleware)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		cache:    cache,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.Log.Warn("Closing snapshot cache failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
