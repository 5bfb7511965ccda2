package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/surakshalabs/suraksha-backend/internal/data/repos/testutil"
	types "github.com/surakshalabs/suraksha-backend/internal/domain"
)

func TestQuizResultRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewQuizResultRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "quizrepo@example.com")

	got, err := repo.GetByKey(ctx, tx, u.ID, types.DisasterFire, "1")
	if err != nil {
		t.Fatalf("GetByKey (empty): %v", err)
	}
	if got != nil {
		t.Fatalf("GetByKey (empty): expected nil, got %+v", got)
	}

	seeded := testutil.SeedQuizResult(t, ctx, tx, u.ID, types.DisasterFire, "1", 80)

	got, err = repo.GetByKey(ctx, tx, u.ID, types.DisasterFire, "1")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got == nil || got.ID != seeded.ID || got.Score != 80 {
		t.Fatalf("GetByKey: unexpected result: %+v", got)
	}

	// Save updates in place when the primary key is set.
	got.Score = 95
	got.Percentage = 95
	got.Attempts = 2
	got.CompletedAt = time.Now()
	if err := repo.Save(ctx, tx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := repo.GetByKey(ctx, tx, u.ID, types.DisasterFire, "1")
	if err != nil || again == nil {
		t.Fatalf("GetByKey after save: %v", err)
	}
	if again.Score != 95 || again.Attempts != 2 {
		t.Fatalf("Save: update not applied: %+v", again)
	}

	testutil.SeedQuizResult(t, ctx, tx, u.ID, types.DisasterFlood, "2", 70)

	count, err := repo.CountByUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountByUser: expected 2, got %d", count)
	}

	stats, err := repo.StatsByUser(ctx, tx)
	if err != nil {
		t.Fatalf("StatsByUser: %v", err)
	}
	row, ok := stats[u.ID]
	if !ok {
		t.Fatalf("StatsByUser: user missing")
	}
	if row.Count != 2 || row.Sum != 165 {
		t.Fatalf("StatsByUser: got count=%d sum=%d", row.Count, row.Sum)
	}

	listed, err := repo.ListByUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("ListByUser: expected 2, got %d", len(listed))
	}
}

func TestDrillResultRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewDrillResultRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "drillrepo@example.com")

	got, err := repo.GetByKey(ctx, tx, u.ID, types.DisasterFire, "fire_evacuation")
	if err != nil {
		t.Fatalf("GetByKey (empty): %v", err)
	}
	if got != nil {
		t.Fatalf("GetByKey (empty): expected nil")
	}

	testutil.SeedDrillResult(t, ctx, tx, u.ID, types.DisasterFire, "fire_evacuation", 90)
	testutil.SeedDrillResult(t, ctx, tx, u.ID, types.DisasterFlood, "flood_high_ground", 80)

	count, err := repo.CountByUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountByUser: expected 2, got %d", count)
	}

	stats, err := repo.StatsByUser(ctx, tx)
	if err != nil {
		t.Fatalf("StatsByUser: %v", err)
	}
	row, ok := stats[u.ID]
	if !ok {
		t.Fatalf("StatsByUser: user missing")
	}
	if row.Count != 2 || row.Sum != 170 {
		t.Fatalf("StatsByUser: got count=%d sum=%d", row.Count, row.Sum)
	}
}

func TestModuleCompletionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewModuleCompletionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "modulerepo@example.com")

	mc := &types.ModuleCompletion{
		ID:           uuid.New(),
		UserID:       u.ID,
		DisasterType: types.DisasterEarthquake,
		ModuleID:     "eq_basics",
		Progress:     100,
		CompletedAt:  time.Now(),
	}
	if err := repo.Save(ctx, tx, mc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByKey(ctx, tx, u.ID, types.DisasterEarthquake, "eq_basics")
	if err != nil || got == nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got.Progress != 100 {
		t.Fatalf("GetByKey: unexpected progress %d", got.Progress)
	}

	count, err := repo.CountByUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountByUser: expected 1, got %d", count)
	}
}
