package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/surakshalabs/suraksha-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    "pw",
		FullName:    "Test User",
		Role:        types.RoleStudent,
		Institution: "Test Institution",
		StudentID:   "SURK000001",
		Level:       1,
		LastLoginAt: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedQuizResult(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, disasterType, level string, score int) *types.QuizResult {
	tb.Helper()
	qr := &types.QuizResult{
		ID:           uuid.New(),
		UserID:       userID,
		DisasterType: disasterType,
		Level:        level,
		Score:        score,
		Percentage:   score,
		Attempts:     1,
		CompletedAt:  time.Now(),
	}
	if err := tx.WithContext(ctx).Create(qr).Error; err != nil {
		tb.Fatalf("seed quiz result: %v", err)
	}
	return qr
}

func SeedDrillResult(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, disasterType, drillID string, score int) *types.DrillResult {
	tb.Helper()
	dr := &types.DrillResult{
		ID:                    uuid.New(),
		UserID:                userID,
		DisasterType:          disasterType,
		DrillID:               drillID,
		Score:                 score,
		TimeToCompleteSeconds: 120,
		CompletedAt:           time.Now(),
	}
	if err := tx.WithContext(ctx).Create(dr).Error; err != nil {
		tb.Fatalf("seed drill result: %v", err)
	}
	return dr
}

func SeedCertificate(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, certType, disasterType, level string) *types.Certificate {
	tb.Helper()
	now := time.Now()
	c := &types.Certificate{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         certType,
		DisasterType: disasterType,
		Level:        level,
		Score:        90,
		IssuedAt:     now,
		ValidUntil:   now.AddDate(1, 0, 0),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed certificate: %v", err)
	}
	return c
}
