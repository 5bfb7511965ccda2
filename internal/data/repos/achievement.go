package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type AchievementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, achievement *types.Achievement) error
	Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, achievementID string) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Achievement, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountsByUser(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error)
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	return &achievementRepo{db: db, log: baseLog.With("repo", "AchievementRepo")}
}

func (ar *achievementRepo) Create(ctx context.Context, tx *gorm.DB, achievement *types.Achievement) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).Create(achievement).Error
}

func (ar *achievementRepo) Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, achievementID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Achievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *achievementRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Achievement
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *achievementRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Achievement{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ar *achievementRepo) CountsByUser(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var rows []ActivityStats
	if err := transaction.WithContext(ctx).
		Model(&types.Achievement{}).
		Select("user_id, COUNT(*) AS ct, 0 AS total").
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}
