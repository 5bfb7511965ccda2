package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/surakshalabs/suraksha-backend/internal/clients/redis"
	"github.com/surakshalabs/suraksha-backend/internal/data/repos"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

const (
	leaderboardCacheKey = "suraksha:leaderboard"
	globalStatsCacheKey = "suraksha:global_stats"
)

// LeaderboardEntry is ephemeral: recomputed from the record store on demand,
// never persisted as ground truth.
type LeaderboardEntry struct {
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	Institution    string    `json:"institution"`
	Points         int       `json:"points"`
	Level          int       `json:"level"`
	Rank           int       `json:"rank"`
	Avatar         string    `json:"avatar,omitempty"`
	RecentActivity time.Time `json:"recent_activity"`
	Badges         []string  `json:"badges"`
	TotalQuizzes   int       `json:"total_quizzes"`
	TotalDrills    int       `json:"total_drills"`
	AverageScore   int       `json:"average_score"`
}

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	GetUserRank(ctx context.Context, userID uuid.UUID) (int, error)
	InvalidateSnapshots(ctx context.Context)
}

type leaderboardService struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	quizRepo        repos.QuizResultRepo
	drillRepo       repos.DrillResultRepo
	certificateRepo repos.CertificateRepo
	achievementRepo repos.AchievementRepo
	cache           redisclient.SnapshotCache
	cacheTTL        time.Duration
}

func NewLeaderboardService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	quizRepo repos.QuizResultRepo,
	drillRepo repos.DrillResultRepo,
	certificateRepo repos.CertificateRepo,
	achievementRepo repos.AchievementRepo,
	cache redisclient.SnapshotCache,
	cacheTTL time.Duration,
) LeaderboardService {
	return &leaderboardService{
		db:              db,
		log:             log.With("service", "LeaderboardService"),
		userRepo:        userRepo,
		quizRepo:        quizRepo,
		drillRepo:       drillRepo,
		certificateRepo: certificateRepo,
		achievementRepo: achievementRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
	}
}

// BadgesForUser derives the independent threshold badges; a user may hold
// several at once.
func BadgesForUser(level, totalPoints int, certificates, achievements int64) []string {
	badges := []string{}
	if level >= 10 {
		badges = append(badges, "Expert")
	}
	if level >= 5 {
		badges = append(badges, "Advanced")
	}
	if totalPoints >= 10000 {
		badges = append(badges, "High Achiever")
	}
	if certificates >= 5 {
		badges = append(badges, "Certified")
	}
	if achievements >= 10 {
		badges = append(badges, "Achievement Hunter")
	}
	return badges
}

// RankEntries sorts by points descending with a stable sort, so ties keep
// the enumeration order of the input, then assigns 1-based ranks.
func RankEntries(entries []LeaderboardEntry) []LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (ls *leaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	entries, err := ls.buildAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (ls *leaderboardService) GetUserRank(ctx context.Context, userID uuid.UUID) (int, error) {
	entries, err := ls.buildAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if e.UserID == userID {
			return e.Rank, nil
		}
	}
	return 0, nil
}

func (ls *leaderboardService) InvalidateSnapshots(ctx context.Context) {
	if ls.cache == nil {
		return
	}
	if err := ls.cache.Delete(ctx, leaderboardCacheKey, globalStatsCacheKey); err != nil {
		ls.log.Warn("Failed to invalidate snapshots", "error", err)
	}
}

// buildAll computes the full, untruncated board. The whole board is cached
// rather than per-limit slices so rank lookups and truncated reads share one
// snapshot.
func (ls *leaderboardService) buildAll(ctx context.Context) ([]LeaderboardEntry, error) {
	if ls.cache != nil {
		var cached []LeaderboardEntry
		hit, err := ls.cache.GetJSON(ctx, leaderboardCacheKey, &cached)
		if err != nil {
			ls.log.Warn("Leaderboard cache read failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	users, err := ls.userRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	quizStats, err := ls.quizRepo.StatsByUser(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("quiz stats: %w", err)
	}
	drillStats, err := ls.drillRepo.StatsByUser(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("drill stats: %w", err)
	}
	certCounts, err := ls.certificateRepo.CountsByUser(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("certificate counts: %w", err)
	}
	achievementCounts, err := ls.achievementRepo.CountsByUser(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("achievement counts: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		qs := quizStats[u.ID]
		ds := drillStats[u.ID]

		average := 0
		if total := qs.Count + ds.Count; total > 0 {
			average = int(math.Round(float64(qs.Sum+ds.Sum) / float64(total)))
		}

		entries = append(entries, LeaderboardEntry{
			UserID:         u.ID,
			Name:           u.FullName,
			Institution:    u.Institution,
			Points:         u.TotalPoints,
			Level:          u.Level,
			Avatar:         u.ProfilePicture,
			RecentActivity: u.LastLoginAt,
			Badges:         BadgesForUser(u.Level, u.TotalPoints, certCounts[u.ID], achievementCounts[u.ID]),
			TotalQuizzes:   int(qs.Count),
			TotalDrills:    int(ds.Count),
			AverageScore:   average,
		})
	}
	entries = RankEntries(entries)

	if ls.cache != nil {
		if err := ls.cache.SetJSON(ctx, leaderboardCacheKey, entries, ls.cacheTTL); err != nil {
			ls.log.Warn("Leaderboard cache write failed", "error", err)
		}
	}
	return entries, nil
}
