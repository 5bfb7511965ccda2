package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surakshalabs/suraksha-backend/internal/data/repos"
	"github.com/surakshalabs/suraksha-backend/internal/data/repos/testutil"
)

func newLeaderboardService(tb testing.TB, tx *gorm.DB) LeaderboardService {
	tb.Helper()
	log := testutil.Logger(tb)
	return NewLeaderboardService(
		tx, log,
		repos.NewUserRepo(tx, log),
		repos.NewQuizResultRepo(tx, log),
		repos.NewDrillResultRepo(tx, log),
		repos.NewCertificateRepo(tx, log),
		repos.NewAchievementRepo(tx, log),
		nil, 0,
	)
}

func TestGetUserRankSeededUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "rank-present@example.com")
	svc := newLeaderboardService(t, tx)

	rank, err := svc.GetUserRank(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserRank: %v", err)
	}
	if rank < 1 {
		t.Fatalf("rank = %d, want >= 1 for a seeded user", rank)
	}
}

func TestGetUserRankUnknownUserIsZero(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	svc := newLeaderboardService(t, tx)

	rank, err := svc.GetUserRank(ctx, uuid.New())
	if err != nil {
		t.Fatalf("GetUserRank: %v", err)
	}
	if rank != 0 {
		t.Fatalf("rank = %d, want 0 for a user off the board", rank)
	}
}
