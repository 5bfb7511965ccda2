package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error)
	// ListAll enumerates users in registration order; leaderboard ties break
	// on this order.
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Search(ctx context.Context, tx *gorm.DB, query string) ([]*types.User, error)
	UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]any) error
	UpdateProgress(ctx context.Context, tx *gorm.DB, userID uuid.UUID, totalPoints, level int) error
	UpdateLastLogin(ctx context.Context, tx *gorm.DB, userID uuid.UUID, at time.Time) error
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.User
	if len(userEmails) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("email IN ?", userEmails).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", userEmail).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.User
	if err := transaction.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ur *userRepo) Search(ctx context.Context, tx *gorm.DB, query string) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.User
	pattern := "%" + query + "%"
	if err := transaction.WithContext(ctx).
		Where("LOWER(full_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(institution) LIKE LOWER(?)", pattern, pattern, pattern).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(fields).Error
}

func (ur *userRepo) UpdateProgress(ctx context.Context, tx *gorm.DB, userID uuid.UUID, totalPoints, level int) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"total_points": totalPoints,
			"level":        level,
		}).Error
}

func (ur *userRepo) UpdateLastLogin(ctx context.Context, tx *gorm.DB, userID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("last_login_at", at).Error
}

func (ur *userRepo) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", userID).
		Delete(&types.User{}).Error
}
