package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	redisclient "github.com/surakshalabs/suraksha-backend/internal/clients/redis"
	"github.com/surakshalabs/suraksha-backend/internal/data/repos"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type UserStats struct {
	TotalPoints       int       `json:"total_points"`
	Level             int       `json:"level"`
	Rank              int       `json:"rank"`
	TotalQuizzes      int64     `json:"total_quizzes"`
	TotalDrills       int64     `json:"total_drills"`
	TotalModules      int64     `json:"total_modules"`
	TotalCertificates int64     `json:"total_certificates"`
	TotalAchievements int64     `json:"total_achievements"`
	LastActivity      time.Time `json:"last_activity"`
	JoinedDate        time.Time `json:"joined_date"`
}

type GlobalStats struct {
	TotalUsers   int64     `json:"total_users"`
	TotalQuizzes int64     `json:"total_quizzes"`
	TotalDrills  int64     `json:"total_drills"`
	LastUpdated  time.Time `json:"last_updated"`
}

type StatsService interface {
	GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error)
	GetGlobalStats(ctx context.Context) (*GlobalStats, error)
}

type statsService struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	quizRepo        repos.QuizResultRepo
	drillRepo       repos.DrillResultRepo
	moduleRepo      repos.ModuleCompletionRepo
	certificateRepo repos.CertificateRepo
	achievementRepo repos.AchievementRepo
	leaderboard     LeaderboardService
	cache           redisclient.SnapshotCache
	cacheTTL        time.Duration
}

func NewStatsService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	quizRepo repos.QuizResultRepo,
	drillRepo repos.DrillResultRepo,
	moduleRepo repos.ModuleCompletionRepo,
	certificateRepo repos.CertificateRepo,
	achievementRepo repos.AchievementRepo,
	leaderboard LeaderboardService,
	cache redisclient.SnapshotCache,
	cacheTTL time.Duration,
) StatsService {
	return &statsService{
		db:              db,
		log:             log.With("service", "StatsService"),
		userRepo:        userRepo,
		quizRepo:        quizRepo,
		drillRepo:       drillRepo,
		moduleRepo:      moduleRepo,
		certificateRepo: certificateRepo,
		achievementRepo: achievementRepo,
		leaderboard:     leaderboard,
		cache:           cache,
		cacheTTL:        cacheTTL,
	}
}

func (ss *statsService) GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	users, err := ss.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, ErrUserNotFound
	}
	user := users[0]

	stats := &UserStats{
		TotalPoints:  user.TotalPoints,
		Level:        user.Level,
		LastActivity: user.LastLoginAt,
		JoinedDate:   user.CreatedAt,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalQuizzes, err = ss.quizRepo.CountByUser(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalDrills, err = ss.drillRepo.CountByUser(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalModules, err = ss.moduleRepo.CountByUser(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalCertificates, err = ss.certificateRepo.CountByUser(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalAchievements, err = ss.achievementRepo.CountByUser(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Rank, err = ss.leaderboard.GetUserRank(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate user stats: %w", err)
	}
	return stats, nil
}

func (ss *statsService) GetGlobalStats(ctx context.Context) (*GlobalStats, error) {
	if ss.cache != nil {
		var cached GlobalStats
		hit, err := ss.cache.GetJSON(ctx, globalStatsCacheKey, &cached)
		if err != nil {
			ss.log.Warn("Global stats cache read failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	stats := &GlobalStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalUsers, err = ss.userRepo.Count(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalQuizzes, err = ss.quizRepo.CountAll(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalDrills, err = ss.drillRepo.CountAll(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate global stats: %w", err)
	}
	stats.LastUpdated = time.Now()

	if ss.cache != nil {
		if err := ss.cache.SetJSON(ctx, globalStatsCacheKey, stats, ss.cacheTTL); err != nil {
			ss.log.Warn("Global stats cache write failed", "error", err)
		}
	}
	return stats, nil
}
