package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/surakshalabs/suraksha-backend/internal/data/repos/testutil"
	types "github.com/surakshalabs/suraksha-backend/internal/domain"
)

func TestCertificateRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCertificateRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "certrepo@example.com")

	exists, err := repo.Exists(ctx, tx, u.ID, types.CertificateTypeQuiz, types.DisasterFire, "1")
	if err != nil {
		t.Fatalf("Exists (empty): %v", err)
	}
	if exists {
		t.Fatalf("Exists (empty): expected false")
	}

	seeded := testutil.SeedCertificate(t, ctx, tx, u.ID, types.CertificateTypeQuiz, types.DisasterFire, "1")

	exists, err = repo.Exists(ctx, tx, u.ID, types.CertificateTypeQuiz, types.DisasterFire, "1")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatalf("Exists: expected true")
	}

	got, err := repo.GetByID(ctx, tx, seeded.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.DisasterType != types.DisasterFire {
		t.Fatalf("GetByID: unexpected cert: %+v", got)
	}

	missing, err := repo.GetByID(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID (missing): expected nil")
	}

	listed, err := repo.ListByUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("ListByUser: expected 1, got %d", len(listed))
	}

	counts, err := repo.CountsByUser(ctx, tx)
	if err != nil {
		t.Fatalf("CountsByUser: %v", err)
	}
	if counts[u.ID] != 1 {
		t.Fatalf("CountsByUser: expected 1, got %d", counts[u.ID])
	}
}

func TestAchievementRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAchievementRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "achrepo@example.com")

	exists, err := repo.Exists(ctx, tx, u.ID, types.AchievementFirstQuiz)
	if err != nil {
		t.Fatalf("Exists (empty): %v", err)
	}
	if exists {
		t.Fatalf("Exists (empty): expected false")
	}

	if err := repo.Create(ctx, tx, &types.Achievement{
		ID:            uuid.New(),
		UserID:        u.ID,
		AchievementID: types.AchievementFirstQuiz,
		Title:         "First Steps",
		Description:   "Completed your first quiz",
		Category:      types.AchievementCategoryMilestone,
		EarnedAt:      time.Now(),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err = repo.Exists(ctx, tx, u.ID, types.AchievementFirstQuiz)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatalf("Exists: expected true")
	}

	listed, err := repo.ListByUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(listed) != 1 || listed[0].AchievementID != types.AchievementFirstQuiz {
		t.Fatalf("ListByUser: unexpected result: %+v", listed)
	}

	counts, err := repo.CountsByUser(ctx, tx)
	if err != nil {
		t.Fatalf("CountsByUser: %v", err)
	}
	if counts[u.ID] != 1 {
		t.Fatalf("CountsByUser: expected 1, got %d", counts[u.ID])
	}
}
