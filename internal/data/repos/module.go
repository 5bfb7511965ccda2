package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type ModuleCompletionRepo interface {
	GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, disasterType, moduleID string) (*types.ModuleCompletion, error)
	Save(ctx context.Context, tx *gorm.DB, completion *types.ModuleCompletion) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ModuleCompletion, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type moduleCompletionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleCompletionRepo(db *gorm.DB, baseLog *logger.Logger) ModuleCompletionRepo {
	return &moduleCompletionRepo{db: db, log: baseLog.With("repo", "ModuleCompletionRepo")}
}

func (mr *moduleCompletionRepo) GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, disasterType, moduleID string) (*types.ModuleCompletion, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.ModuleCompletion
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND disaster_type = ? AND module_id = ?", userID, disasterType, moduleID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (mr *moduleCompletionRepo) Save(ctx context.Context, tx *gorm.DB, completion *types.ModuleCompletion) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Save(completion).Error
}

func (mr *moduleCompletionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ModuleCompletion, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.ModuleCompletion
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *moduleCompletionRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ModuleCompletion{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
