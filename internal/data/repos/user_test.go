package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/surakshalabs/suraksha-backend/internal/data/repos/testutil"
	types "github.com/surakshalabs/suraksha-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.User{
		{
			ID:          uuid.New(),
			Email:       "userrepo@example.com",
			Password:    "pw",
			FullName:    "Repo User",
			Role:        types.RoleStudent,
			Institution: "Test School",
			Level:       1,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}

	gotByIDs, err := repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	gotByEmails, err := repo.GetByEmails(ctx, tx, []string{created[0].Email})
	if err != nil {
		t.Fatalf("GetByEmails: %v", err)
	}
	if len(gotByEmails) != 1 || gotByEmails[0].Email != created[0].Email {
		t.Fatalf("GetByEmails: unexpected result: %+v", gotByEmails)
	}

	exists, err := repo.EmailExists(ctx, tx, created[0].Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: expected true")
	}

	exists, err = repo.EmailExists(ctx, tx, "does-not-exist@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("EmailExists (missing): expected false")
	}
}

func TestUserRepoProgressUpdates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "progress@example.com")

	if err := repo.UpdateProgress(ctx, tx, u.ID, 1050, 2); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: %v (%d)", err, len(got))
	}
	if got[0].TotalPoints != 1050 || got[0].Level != 2 {
		t.Fatalf("UpdateProgress: got points=%d level=%d", got[0].TotalPoints, got[0].Level)
	}

	at := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := repo.UpdateLastLogin(ctx, tx, u.ID, at); err != nil {
		t.Fatalf("UpdateLastLogin: %v", err)
	}

	if err := repo.UpdateProfile(ctx, tx, u.ID, map[string]any{
		"full_name":   "Renamed User",
		"institution": "Other School",
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	got, err = repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs after update: %v (%d)", err, len(got))
	}
	if got[0].FullName != "Renamed User" {
		t.Fatalf("UpdateProfile: name not applied: %q", got[0].FullName)
	}
}

func TestUserRepoSearchAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "searchme@example.com")

	found, err := repo.Search(ctx, tx, "searchme")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 1 || found[0].ID != u.ID {
		t.Fatalf("Search: unexpected result: %+v", found)
	}

	if err := repo.Delete(ctx, tx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	after, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil {
		t.Fatalf("GetByIDs after delete: %v", err)
	}
	if len(after) != 0 {
		t.Fatalf("expected soft-deleted user to be filtered, got %+v", after)
	}
}
