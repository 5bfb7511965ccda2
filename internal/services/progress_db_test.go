package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surakshalabs/suraksha-backend/internal/catalog"
	"github.com/surakshalabs/suraksha-backend/internal/data/repos"
	"github.com/surakshalabs/suraksha-backend/internal/data/repos/testutil"
	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/pointers"
)

func newProgressService(tb testing.TB, tx *gorm.DB) ProgressService {
	tb.Helper()
	log := testutil.Logger(tb)
	return NewProgressService(
		tx, log, catalog.Default(),
		repos.NewUserRepo(tx, log),
		repos.NewQuizResultRepo(tx, log),
		repos.NewDrillResultRepo(tx, log),
		repos.NewModuleCompletionRepo(tx, log),
		repos.NewCertificateRepo(tx, log),
		repos.NewAchievementRepo(tx, log),
		nil,
	)
}

func TestRecordQuizResultFirstPerfectAttempt(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "quiz-perfect@example.com")
	svc := newProgressService(t, tx)

	outcome, err := svc.RecordQuizResult(ctx, user.ID, QuizSubmission{
		DisasterType: types.DisasterFire,
		Level:        "1",
		Score:        100,
	})
	if err != nil {
		t.Fatalf("RecordQuizResult: %v", err)
	}

	// 100% on tier 1 with an improved best: 1000 base + 50 bonus.
	if outcome.PointsAwarded != 1050 {
		t.Fatalf("points = %d, want 1050", outcome.PointsAwarded)
	}
	if outcome.TotalPoints != 1050 || outcome.Level != 2 {
		t.Fatalf("total=%d level=%d, want 1050/2", outcome.TotalPoints, outcome.Level)
	}
	if !outcome.ImprovedBest || outcome.BestScore != 100 {
		t.Fatalf("best score not tracked: %+v", outcome)
	}
	if outcome.CertificateIssued == nil {
		t.Fatal("expected certificate at 100%")
	}
	if len(outcome.AchievementsEarned) != 2 {
		t.Fatalf("achievements = %d, want first_quiz and perfect_quiz", len(outcome.AchievementsEarned))
	}
}

func TestRecordQuizResultKeepsBestScore(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "quiz-best@example.com")
	svc := newProgressService(t, tx)

	if _, err := svc.RecordQuizResult(ctx, user.ID, QuizSubmission{
		DisasterType: types.DisasterEarthquake,
		Level:        "2",
		Score:        90,
	}); err != nil {
		t.Fatalf("first attempt: %v", err)
	}

	outcome, err := svc.RecordQuizResult(ctx, user.ID, QuizSubmission{
		DisasterType: types.DisasterEarthquake,
		Level:        "2",
		Score:        60,
	})
	if err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	if outcome.ImprovedBest {
		t.Fatal("lower score must not count as improvement")
	}
	if outcome.BestScore != 90 {
		t.Fatalf("best score = %d, want 90 kept", outcome.BestScore)
	}
	// Tier 2 multiplier 1.2, no bonus: floor(600 * 1.2) = 720.
	if outcome.PointsAwarded != 720 {
		t.Fatalf("points = %d, want 720", outcome.PointsAwarded)
	}

	results, err := svc.ListQuizResults(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListQuizResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("one record per (type, level) expected, got %d", len(results))
	}
	if results[0].Score != 90 || results[0].Percentage != 60 {
		t.Fatalf("score=%d percentage=%d, want sticky 90 / latest 60", results[0].Score, results[0].Percentage)
	}
}

func TestRecordDrillResultPerfectExecution(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "drill-perfect@example.com")
	svc := newProgressService(t, tx)

	outcome, err := svc.RecordDrillResult(ctx, user.ID, DrillSubmission{
		DisasterType:          types.DisasterFire,
		DrillID:               "fire_evacuation",
		Score:                 96,
		TimeToCompleteSeconds: 50,
		Mistakes:              0,
	})
	if err != nil {
		t.Fatalf("RecordDrillResult: %v", err)
	}

	// 96*15 + (200-50) - 0 + 100 perfect bonus = 1690.
	if outcome.PointsAwarded != 1690 {
		t.Fatalf("points = %d, want 1690", outcome.PointsAwarded)
	}
	if !outcome.PerfectExecution {
		t.Fatal("expected perfect execution")
	}
	if outcome.CertificateIssued == nil || outcome.CertificateIssued.Level != types.CertificateLevelPractical {
		t.Fatalf("expected practical certificate, got %+v", outcome.CertificateIssued)
	}
	// Perfect drill and speed demon (under 60s).
	if len(outcome.AchievementsEarned) != 2 {
		t.Fatalf("achievements = %d, want 2", len(outcome.AchievementsEarned))
	}
}

func TestRecordDrillResultRepeatDoesNotReissueCertificate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "drill-repeat@example.com")
	svc := newProgressService(t, tx)

	sub := DrillSubmission{
		DisasterType:          types.DisasterFlood,
		DrillID:               "flood_high_ground",
		Score:                 90,
		TimeToCompleteSeconds: 120,
		Mistakes:              1,
	}
	first, err := svc.RecordDrillResult(ctx, user.ID, sub)
	if err != nil {
		t.Fatalf("first drill: %v", err)
	}
	if first.CertificateIssued == nil {
		t.Fatal("expected certificate on first qualifying run")
	}

	second, err := svc.RecordDrillResult(ctx, user.ID, sub)
	if err != nil {
		t.Fatalf("second drill: %v", err)
	}
	if second.CertificateIssued != nil {
		t.Fatal("certificate must be issued once per (type, disaster, level)")
	}

	certs, err := svc.ListCertificates(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListCertificates: %v", err)
	}
	if len(certs) != 1 {
		t.Fatalf("certificates = %d, want 1", len(certs))
	}
}

func TestRecordQuizResultUnknownUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	svc := newProgressService(t, tx)

	_, err := svc.RecordQuizResult(context.Background(), uuid.New(), QuizSubmission{
		DisasterType: types.DisasterFire,
		Level:        "1",
		Score:        50,
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateProfilePartialFields(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "profile@example.com")
	log := testutil.Logger(t)
	svc := NewUserService(tx, log, repos.NewUserRepo(tx, log), nil)

	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{
		FullName: pointers.String("Asha Verma"),
		Phone:    pointers.String("+91 98765 43210"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FullName != "Asha Verma" || updated.Phone != "+91 98765 43210" {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if updated.Institution != user.Institution {
		t.Fatal("untouched fields must keep their values")
	}
}
