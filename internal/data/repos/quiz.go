package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

// ActivityStats is one row of a per-user aggregate over an activity table.
type ActivityStats struct {
	UserID uuid.UUID `gorm:"column:user_id"`
	Count  int64     `gorm:"column:ct"`
	Sum    int64     `gorm:"column:total"`
}

type QuizResultRepo interface {
	GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, disasterType, level string) (*types.QuizResult, error)
	Save(ctx context.Context, tx *gorm.DB, result *types.QuizResult) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.QuizResult, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	// StatsByUser aggregates entry count and percentage sum per user in one
	// query; the leaderboard builder consumes it.
	StatsByUser(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]ActivityStats, error)
}

type quizResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizResultRepo(db *gorm.DB, baseLog *logger.Logger) QuizResultRepo {
	return &quizResultRepo{db: db, log: baseLog.With("repo", "QuizResultRepo")}
}

func (qr *quizResultRepo) GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, disasterType, level string) (*types.QuizResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*types.QuizResult
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND disaster_type = ? AND level = ?", userID, disasterType, level).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (qr *quizResultRepo) Save(ctx context.Context, tx *gorm.DB, result *types.QuizResult) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).Save(result).Error
}

func (qr *quizResultRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.QuizResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*types.QuizResult
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *quizResultRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.QuizResult{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (qr *quizResultRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.QuizResult{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (qr *quizResultRepo) StatsByUser(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]ActivityStats, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var rows []ActivityStats
	if err := transaction.WithContext(ctx).
		Model(&types.QuizResult{}).
		Select("user_id, COUNT(*) AS ct, COALESCE(SUM(percentage), 0) AS total").
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	stats := make(map[uuid.UUID]ActivityStats, len(rows))
	for _, row := range rows {
		stats[row.UserID] = row
	}
	return stats, nil
}
