package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type DrillResultRepo interface {
	GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, disasterType, drillID string) (*types.DrillResult, error)
	Save(ctx context.Context, tx *gorm.DB, result *types.DrillResult) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.DrillResult, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	StatsByUser(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]ActivityStats, error)
}

type drillResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDrillResultRepo(db *gorm.DB, baseLog *logger.Logger) DrillResultRepo {
	return &drillResultRepo{db: db, log: baseLog.With("repo", "DrillResultRepo")}
}

func (dr *drillResultRepo) GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, disasterType, drillID string) (*types.DrillResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.DrillResult
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND disaster_type = ? AND drill_id = ?", userID, disasterType, drillID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (dr *drillResultRepo) Save(ctx context.Context, tx *gorm.DB, result *types.DrillResult) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).Save(result).Error
}

func (dr *drillResultRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.DrillResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.DrillResult
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *drillResultRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.DrillResult{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (dr *drillResultRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.DrillResult{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (dr *drillResultRepo) StatsByUser(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]ActivityStats, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var rows []ActivityStats
	if err := transaction.WithContext(ctx).
		Model(&types.DrillResult{}).
		Select("user_id, COUNT(*) AS ct, COALESCE(SUM(score), 0) AS total").
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
