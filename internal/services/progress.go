package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/surakshalabs/suraksha-backend/internal/catalog"
	"github.com/surakshalabs/suraksha-backend/internal/data/repos"
	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type QuizSubmission struct {
	DisasterType     string `json:"disaster_type"`
	Level            string `json:"level"`
	Score            int    `json:"score"`
	Attempts         int    `json:"attempts"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

type DrillSubmission struct {
	DisasterType          string   `json:"disaster_type"`
	DrillID               string   `json:"drill_id"`
	Score                 int      `json:"score"`
	TimeToCompleteSeconds int      `json:"time_to_complete_seconds"`
	Mistakes              int      `json:"mistakes"`
	StepsTaken            []string `json:"steps_taken,omitempty"`
}

type ModuleSubmission struct {
	DisasterType     string `json:"disaster_type"`
	ModuleID         string `json:"module_id"`
	Progress         int    `json:"progress"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

// ActivityOutcome summarizes what one submission changed: points, level,
// best score, and any certificate or achievements issued along the way.
type ActivityOutcome struct {
	PointsAwarded      int                  `json:"points_awarded"`
	TotalPoints        int                  `json:"total_points"`
	Level              int                  `json:"level"`
	BestScore          int                  `json:"best_score"`
	ImprovedBest       bool                 `json:"improved_best"`
	PerfectExecution   bool                 `json:"perfect_execution,omitempty"`
	CertificateIssued  *types.Certificate   `json:"certificate_issued,omitempty"`
	AchievementsEarned []*types.Achievement `json:"achievements_earned,omitempty"`
}

type ProgressService interface {
	RecordQuizResult(ctx context.Context, userID uuid.UUID, sub QuizSubmission) (*ActivityOutcome, error)
	RecordDrillResult(ctx context.Context, userID uuid.UUID, sub DrillSubmission) (*ActivityOutcome, error)
	RecordModuleCompletion(ctx context.Context, userID uuid.UUID, sub ModuleSubmission) (*types.ModuleCompletion, error)
	ListQuizResults(ctx context.Context, userID uuid.UUID) ([]*types.QuizResult, error)
	ListDrillResults(ctx context.Context, userID uuid.UUID) ([]*types.DrillResult, error)
	ListModuleCompletions(ctx context.Context, userID uuid.UUID) ([]*types.ModuleCompletion, error)
	ListCertificates(ctx context.Context, userID uuid.UUID) ([]*types.Certificate, error)
	ListAchievements(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error)
}

type progressService struct {
	db              *gorm.DB
	log             *logger.Logger
	cat             *catalog.Catalog
	userRepo        repos.UserRepo
	quizRepo        repos.QuizResultRepo
	drillRepo       repos.DrillResultRepo
	moduleRepo      repos.ModuleCompletionRepo
	certificateRepo repos.CertificateRepo
	achievementRepo repos.AchievementRepo
	leaderboard     LeaderboardInvalidator
}

// LeaderboardInvalidator lets scoring drop stale leaderboard snapshots
// without depending on the full leaderboard service.
type LeaderboardInvalidator interface {
	InvalidateSnapshots(ctx context.Context)
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	cat *catalog.Catalog,
	userRepo repos.UserRepo,
	quizRepo repos.QuizResultRepo,
	drillRepo repos.DrillResultRepo,
	moduleRepo repos.ModuleCompletionRepo,
	certificateRepo repos.CertificateRepo,
	achievementRepo repos.AchievementRepo,
	leaderboard LeaderboardInvalidator,
) ProgressService {
	return &progressService{
		db:              db,
		log:             log.With("service", "ProgressService"),
		cat:             cat,
		userRepo:        userRepo,
		quizRepo:        quizRepo,
		drillRepo:       drillRepo,
		moduleRepo:      moduleRepo,
		certificateRepo: certificateRepo,
		achievementRepo: achievementRepo,
		leaderboard:     leaderboard,
	}
}

func (ps *progressService) RecordQuizResult(ctx context.Context, userID uuid.UUID, sub QuizSubmission) (*ActivityOutcome, error) {
	if !ps.cat.HasCategory(sub.DisasterType) {
		return nil, fmt.Errorf("%w: unknown disaster type %q", ErrInvalidSubmission, sub.DisasterType)
	}
	if !ps.cat.HasQuizTier(sub.Level) {
		return nil, fmt.Errorf("%w: unknown quiz tier %q", ErrInvalidSubmission, sub.Level)
	}
	if sub.Score < 0 || sub.Score > 100 {
		return nil, fmt.Errorf("%w: score %d out of range [0,100]", ErrInvalidSubmission, sub.Score)
	}
	if sub.Attempts <= 0 {
		sub.Attempts = 1
	}

	outcome := &ActivityOutcome{}
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ps.getUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := time.Now()
		percentage := sub.Score

		prev, err := ps.quizRepo.GetByKey(ctx, tx, userID, sub.DisasterType, sub.Level)
		if err != nil {
			return fmt.Errorf("load previous quiz result: %w", err)
		}
		previousScore := 0
		if prev != nil {
			previousScore = prev.Score
		}
		improved := sub.Score > previousScore

		record := prev
		if record == nil {
			record = &types.QuizResult{
				ID:           uuid.New(),
				UserID:       userID,
				DisasterType: sub.DisasterType,
				Level:        sub.Level,
			}
		}
		// Best score is sticky; the rest of the record reflects the latest
		// attempt.
		if sub.Score > record.Score {
			record.Score = sub.Score
		}
		record.Percentage = percentage
		record.Attempts = sub.Attempts
		record.TimeSpentSeconds = sub.TimeSpentSeconds
		record.CompletedAt = now
		if err := ps.quizRepo.Save(ctx, tx, record); err != nil {
			return fmt.Errorf("save quiz result: %w", err)
		}

		points := QuizPoints(percentage, sub.Level, improved)
		if err := ps.applyPoints(ctx, tx, user, points); err != nil {
			return err
		}

		outcome.PointsAwarded = points
		outcome.TotalPoints = user.TotalPoints
		outcome.Level = user.Level
		outcome.BestScore = record.Score
		outcome.ImprovedBest = improved

		if QuizEarnsCertificate(percentage) {
			cert, err := ps.issueCertificate(ctx, tx, userID, types.CertificateTypeQuiz, sub.DisasterType, sub.Level, percentage, now)
			if err != nil {
				return err
			}
			outcome.CertificateIssued = cert
		}

		quizCount, err := ps.quizRepo.CountByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("count quizzes: %w", err)
		}
		if quizCount == 1 {
			earned, err := ps.awardAchievement(ctx, tx, userID, &types.Achievement{
				AchievementID: types.AchievementFirstQuiz,
				Title:         "First Steps",
				Description:   "Completed your first quiz",
				Category:      types.AchievementCategoryMilestone,
			}, now)
			if err != nil {
				return err
			}
			if earned != nil {
				outcome.AchievementsEarned = append(outcome.AchievementsEarned, earned)
			}
		}
		if percentage == 100 {
			earned, err := ps.awardAchievement(ctx, tx, userID, &types.Achievement{
				AchievementID: types.PerfectQuizAchievementID(sub.DisasterType),
				Title:         "Perfect Knowledge",
				Description:   fmt.Sprintf("Achieved 100%% on %s quiz", sub.DisasterType),
				Category:      types.AchievementCategoryExcellence,
			}, now)
			if err != nil {
				return err
			}
			if earned != nil {
				outcome.AchievementsEarned = append(outcome.AchievementsEarned, earned)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ps.invalidate(ctx)
	ps.log.Info("Recorded quiz result",
		"user_id", userID.String(),
		"disaster_type", sub.DisasterType,
		"level", sub.Level,
		"points", outcome.PointsAwarded,
	)
	return outcome, nil
}

func (ps *progressService) RecordDrillResult(ctx context.Context, userID uuid.UUID, sub DrillSubmission) (*ActivityOutcome, error) {
	if !ps.cat.HasCategory(sub.DisasterType) {
		return nil, fmt.Errorf("%w: unknown disaster type %q", ErrInvalidSubmission, sub.DisasterType)
	}
	if sub.DrillID == "" {
		return nil, fmt.Errorf("%w: drill id required", ErrInvalidSubmission)
	}
	if sub.Score < 0 || sub.Score > 100 {
		return nil, fmt.Errorf("%w: score %d out of range [0,100]", ErrInvalidSubmission, sub.Score)
	}
	if sub.TimeToCompleteSeconds < 0 || sub.Mistakes < 0 {
		return nil, fmt.Errorf("%w: negative time or mistakes", ErrInvalidSubmission)
	}

	outcome := &ActivityOutcome{}
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ps.getUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := time.Now()
		perfect := PerfectExecution(sub.Score, sub.Mistakes)

		record, err := ps.drillRepo.GetByKey(ctx, tx, userID, sub.DisasterType, sub.DrillID)
		if err != nil {
			return fmt.Errorf("load previous drill result: %w", err)
		}
		if record == nil {
			record = &types.DrillResult{
				ID:           uuid.New(),
				UserID:       userID,
				DisasterType: sub.DisasterType,
				DrillID:      sub.DrillID,
			}
		}
		record.Score = sub.Score
		record.TimeToCompleteSeconds = sub.TimeToCompleteSeconds
		record.Mistakes = sub.Mistakes
		record.PerfectExecution = perfect
		record.CompletedAt = now
		if len(sub.StepsTaken) > 0 {
			raw, err := json.Marshal(sub.StepsTaken)
			if err != nil {
				return fmt.Errorf("encode drill steps: %w", err)
			}
			record.StepsTaken = datatypes.JSON(raw)
		}
		if err := ps.drillRepo.Save(ctx, tx, record); err != nil {
			return fmt.Errorf("save drill result: %w", err)
		}

		points := DrillPoints(sub.Score, sub.TimeToCompleteSeconds, sub.Mistakes)
		if err := ps.applyPoints(ctx, tx, user, points); err != nil {
			return err
		}

		outcome.PointsAwarded = points
		outcome.TotalPoints = user.TotalPoints
		outcome.Level = user.Level
		outcome.BestScore = record.Score
		outcome.PerfectExecution = perfect

		if DrillEarnsCertificate(sub.Score, sub.Mistakes) {
			cert, err := ps.issueCertificate(ctx, tx, userID, types.CertificateTypeDrill, sub.DisasterType, types.CertificateLevelPractical, sub.Score, now)
			if err != nil {
				return err
			}
			outcome.CertificateIssued = cert
		}

		if perfect {
			earned, err := ps.awardAchievement(ctx, tx, userID, &types.Achievement{
				AchievementID: types.PerfectDrillAchievementID(sub.DisasterType),
				Title:         "Flawless Execution",
				Description:   fmt.Sprintf("Perfect drill performance in %s", sub.DisasterType),
				Category:      types.AchievementCategoryExcellence,
			}, now)
			if err != nil {
				return err
			}
			if earned != nil {
				outcome.AchievementsEarned = append(outcome.AchievementsEarned, earned)
			}
		}
		if DrillEarnsSpeedAchievement(sub.TimeToCompleteSeconds) {
			earned, err := ps.awardAchievement(ctx, tx, userID, &types.Achievement{
				AchievementID: types.AchievementSpeedDemon,
				Title:         "Speed Demon",
				Description:   "Completed drill in under 60 seconds",
				Category:      types.AchievementCategorySpeed,
			}, now)
			if err != nil {
				return err
			}
			if earned != nil {
				outcome.AchievementsEarned = append(outcome.AchievementsEarned, earned)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ps.invalidate(ctx)
	ps.log.Info("Recorded drill result",
		"user_id", userID.String(),
		"disaster_type", sub.DisasterType,
		"drill_id", sub.DrillID,
		"points", outcome.PointsAwarded,
	)
	return outcome, nil
}

func (ps *progressService) RecordModuleCompletion(ctx context.Context, userID uuid.UUID, sub ModuleSubmission) (*types.ModuleCompletion, error) {
	if !ps.cat.HasCategory(sub.DisasterType) {
		return nil, fmt.Errorf("%w: unknown disaster type %q", ErrInvalidSubmission, sub.DisasterType)
	}
	if sub.ModuleID == "" {
		return nil, fmt.Errorf("%w: module id required", ErrInvalidSubmission)
	}
	if sub.Progress < 0 || sub.Progress > 100 {
		return nil, fmt.Errorf("%w: progress %d out of range [0,100]", ErrInvalidSubmission, sub.Progress)
	}

	var record *types.ModuleCompletion
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.getUser(ctx, tx, userID); err != nil {
			return err
		}
		var err error
		record, err = ps.moduleRepo.GetByKey(ctx, tx, userID, sub.DisasterType, sub.ModuleID)
		if err != nil {
			return fmt.Errorf("load module completion: %w", err)
		}
		if record == nil {
			record = &types.ModuleCompletion{
				ID:           uuid.New(),
				UserID:       userID,
				DisasterType: sub.DisasterType,
				ModuleID:     sub.ModuleID,
			}
		}
		record.Progress = sub.Progress
		record.TimeSpentSeconds = sub.TimeSpentSeconds
		record.CompletedAt = time.Now()
		return ps.moduleRepo.Save(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (ps *progressService) ListQuizResults(ctx context.Context, userID uuid.UUID) ([]*types.QuizResult, error) {
	if _, err := ps.getUser(ctx, nil, userID); err != nil {
		return nil, err
	}
	return ps.quizRepo.ListByUser(ctx, nil, userID)
}

func (ps *progressService) ListDrillResults(ctx context.Context, userID uuid.UUID) ([]*types.DrillResult, error) {
	if _, err := ps.getUser(ctx, nil, userID); err != nil {
		return nil, err
	}
	return ps.drillRepo.ListByUser(ctx, nil, userID)
}

func (ps *progressService) ListModuleCompletions(ctx context.Context, userID uuid.UUID) ([]*types.ModuleCompletion, error) {
	if _, err := ps.getUser(ctx, nil, userID); err != nil {
		return nil, err
	}
	return ps.moduleRepo.ListByUser(ctx, nil, userID)
}

func (ps *progressService) ListCertificates(ctx context.Context, userID uuid.UUID) ([]*types.Certificate, error) {
	if _, err := ps.getUser(ctx, nil, userID); err != nil {
		return nil, err
	}
	return ps.certificateRepo.ListByUser(ctx, nil, userID)
}

func (ps *progressService) ListAchievements(ctx context.Context, userID uuid.UUID) ([]*types.Achievement, error) {
	if _, err := ps.getUser(ctx, nil, userID); err != nil {
		return nil, err
	}
	return ps.achievementRepo.ListByUser(ctx, nil, userID)
}

func (ps *progressService) getUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	users, err := ps.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

// applyPoints adds to the cumulative total and bumps the level when the new
// total crosses a boundary; the level never moves down.
func (ps *progressService) applyPoints(ctx context.Context, tx *gorm.DB, user *types.User, points int) error {
	user.TotalPoints += points
	if newLevel := LevelForPoints(user.TotalPoints); newLevel > user.Level {
		user.Level = newLevel
	}
	if err := ps.userRepo.UpdateProgress(ctx, tx, user.ID, user.TotalPoints, user.Level); err != nil {
		return fmt.Errorf("update user progress: %w", err)
	}
	return nil
}

func (ps *progressService) issueCertificate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, certType, disasterType, level string, score int, now time.Time) (*types.Certificate, error) {
	exists, err := ps.certificateRepo.Exists(ctx, tx, userID, certType, disasterType, level)
	if err != nil {
		return nil, fmt.Errorf("check certificate: %w", err)
	}
	if exists {
		return nil, nil
	}
	cert := &types.Certificate{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         certType,
		DisasterType: disasterType,
		Level:        level,
		Score:        score,
		IssuedAt:     now,
		ValidUntil:   now.AddDate(1, 0, 0),
	}
	if err := ps.certificateRepo.Create(ctx, tx, cert); err != nil {
		return nil, fmt.Errorf("issue certificate: %w", err)
	}
	return cert, nil
}

func (ps *progressService) awardAchievement(ctx context.Context, tx *gorm.DB, userID uuid.UUID, achievement *types.Achievement, now time.Time) (*types.Achievement, error) {
	exists, err := ps.achievementRepo.Exists(ctx, tx, userID, achievement.AchievementID)
	if err != nil {
		return nil, fmt.Errorf("check achievement: %w", err)
	}
	if exists {
		return nil, nil
	}
	achievement.ID = uuid.New()
	achievement.UserID = userID
	achievement.EarnedAt = now
	if err := ps.achievementRepo.Create(ctx, tx, achievement); err != nil {
		return nil, fmt.Errorf("award achievement: %w", err)
	}
	return achievement, nil
}

func (ps *progressService) invalidate(ctx context.Context) {
	if ps.leaderboard != nil {
		ps.leaderboard.InvalidateSnapshots(ctx)
	}
}
