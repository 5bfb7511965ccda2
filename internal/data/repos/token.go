package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type UserTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tokens []*types.UserToken) ([]*types.UserToken, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserToken, error)
	GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.UserToken, error)
	GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, tokenIDs []uuid.UUID) error
	FullDeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return &userTokenRepo{db: db, log: baseLog.With("repo", "UserTokenRepo")}
}

func (tr *userTokenRepo) Create(ctx context.Context, tx *gorm.DB, tokens []*types.UserToken) ([]*types.UserToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tokens) == 0 {
		return []*types.UserToken{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (tr *userTokenRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.UserToken
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *userTokenRepo) GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.UserToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.UserToken
	if err := transaction.WithContext(ctx).
		Where("access_token = ?", accessToken).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (tr *userTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.UserToken
	if err := transaction.WithContext(ctx).
		Where("refresh_token = ?", refreshToken).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (tr *userTokenRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, tokenIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tokenIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", tokenIDs).
		Delete(&types.UserToken{}).Error
}

func (tr *userTokenRepo) FullDeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Unscoped().
		Where("user_id = ?", userID).
		Delete(&types.UserToken{}).Error
}
