package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type CertificateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cert *types.Certificate) error
	GetByID(ctx context.Context, tx *gorm.DB, certID uuid.UUID) (*types.Certificate, error)
	// Exists reports whether the (user, type, disasterType, level) triple has
	// already been issued; issuance is idempotent on it.
	Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, certType, disasterType, level string) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Certificate, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountsByUser(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error)
}

type certificateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	return &certificateRepo{db: db, log: baseLog.With("repo", "CertificateRepo")}
}

func (cr *certificateRepo) Create(ctx context.Context, tx *gorm.DB, cert *types.Certificate) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(cert).Error
}

func (cr *certificateRepo) GetByID(ctx context.Context, tx *gorm.DB, certID uuid.UUID) (*types.Certificate, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Certificate
	if err := transaction.WithContext(ctx).
		Where("id = ?", certID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (cr *certificateRepo) Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, certType, disasterType, level string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Certificate{}).
		Where("user_id = ? AND type = ? AND disaster_type = ? AND level = ?", userID, certType, disasterType, level).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *certificateRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Certificate, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Certificate
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *certificateRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Certificate{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (cr *certificateRepo) CountsByUser(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var rows []ActivityStats
	if err := transaction.WithContext(ctx).
		Model(&types.Certificate{}).
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
