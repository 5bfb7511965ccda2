package http

import (
	"github.com/gin-gonic/gin"

	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	httpH "github.com/surakshalabs/suraksha-backend/internal/http/handlers"
	httpMW "github.com/surakshalabs/suraksha-backend/internal/http/middleware"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler      *httpH.HealthHandler
	AuthHandler        *httpH.AuthHandler
	UserHandler        *httpH.UserHandler
	ProgressHandler    *httpH.ProgressHandler
	LeaderboardHandler *httpH.LeaderboardHandler
	StatsHandler       *httpH.StatsHandler
	CertificateHandler *httpH.CertificateHandler
	CatalogHandler     *httpH.CatalogHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		// Catalog (public, static content)
		if cfg.CatalogHandler != nil {
			api.GET("/catalog", cfg.CatalogHandler.GetCatalog)
		}

		// Leaderboard and global stats (public reads)
		if cfg.LeaderboardHandler != nil {
			api.GET("/leaderboard", cfg.LeaderboardHandler.GetLeaderboard)
		}
		if cfg.StatsHandler != nil {
			api.GET("/stats/global", cfg.StatsHandler.GetGlobalStats)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PUT("/me/profile", cfg.UserHandler.UpdateProfile)
			protected.GET("/users/search", cfg.UserHandler.Search)
		}

		// Progress submissions and history
		if cfg.ProgressHandler != nil {
			protected.POST("/progress/quiz", cfg.ProgressHandler.SubmitQuiz)
			protected.POST("/progress/drill", cfg.ProgressHandler.SubmitDrill)
			protected.POST("/progress/module", cfg.ProgressHandler.SubmitModule)
			protected.GET("/progress/quizzes", cfg.ProgressHandler.ListQuizResults)
			protected.GET("/progress/drills", cfg.ProgressHandler.ListDrillResults)
			protected.GET("/progress/modules", cfg.ProgressHandler.ListModuleCompletions)
			protected.GET("/achievements", cfg.ProgressHandler.ListAchievements)
		}

		// Leaderboard rank for the caller
		if cfg.LeaderboardHandler != nil {
			protected.GET("/leaderboard/rank", cfg.LeaderboardHandler.GetMyRank)
		}

		// Per-user stats
		if cfg.StatsHandler != nil {
			protected.GET("/stats/me", cfg.StatsHandler.GetMyStats)
		}

		// Certificates
		if cfg.CertificateHandler != nil {
			protected.GET("/certificates", cfg.CertificateHandler.ListMine)
			protected.GET("/certificates/:id/image", cfg.CertificateHandler.GetImage)
		}

		// Admin
		if cfg.UserHandler != nil && cfg.AuthMiddleware != nil {
			admin := protected.Group("/admin")
			admin.Use(cfg.AuthMiddleware.RequireRole(types.RoleAdministrator, types.RoleStaff))
			admin.DELETE("/users/:id", cfg.UserHandler.Delete)
		}
	}

	return r
}
