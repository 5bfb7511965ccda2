package app

import (
	"gorm.io/gorm"

	"github.com/surakshalabs/suraksha-backend/internal/catalog"
	redisclient "github.com/surakshalabs/suraksha-backend/internal/clients/redis"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
	"github.com/surakshalabs/suraksha-backend/internal/services"
)

type Services struct {
	Auth             services.AuthService
	User             services.UserService
	Progress         services.ProgressService
	Leaderboard      services.LeaderboardService
	Stats            services.StatsService
	CertificateImage services.CertificateImageService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, cat *catalog.Catalog, cache redisclient.SnapshotCache, r Repos) (Services, error) {
	log.Info("Wiring services...")

	leaderboardService := services.NewLeaderboardService(
		db, log,
		r.User, r.QuizResult, r.DrillResult, r.Certificate, r.Achievement,
		cache, cfg.SnapshotTTL,
	)
	progressService := services.NewProgressService(
		db, log, cat,
		r.User, r.QuizResult, r.DrillResult, r.ModuleCompletion, r.Certificate, r.Achievement,
		leaderboardService,
	)
	statsService := services.NewStatsService(
		db, log,
		r.User, r.QuizResult, r.DrillResult, r.ModuleCompletion, r.Certificate, r.Achievement,
		leaderboardService, cache, cfg.SnapshotTTL,
	)
	authService := services.NewAuthService(db, log, r.User, r.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(db, log, r.User, leaderboardService)

	certImageService, err := services.NewCertificateImageService(log, r.User, r.Certificate)
	if err != nil {
		log.Warn("Certificate image rendering disabled", "error", err)
		certImageService = nil
	}

	return Services{
		Auth:             authService,
		User:             userService,
		Progress:         progressService,
		Leaderboard:      leaderboardService,
		Stats:            statsService,
		CertificateImage: certImageService,
	}, nil
}
