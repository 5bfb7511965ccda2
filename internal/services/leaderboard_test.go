package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestBadgesForUser(t *testing.T) {
	tests := []struct {
		name         string
		level        int
		points       int
		certificates int64
		achievements int64
		want         []string
	}{
		{"new user", 1, 0, 0, 0, []string{}},
		{"advanced only", 5, 4000, 0, 0, []string{"Advanced"}},
		{"expert implies advanced", 10, 9000, 0, 0, []string{"Expert", "Advanced"}},
		{"high achiever", 3, 10000, 0, 0, []string{"High Achiever"}},
		{"certified", 2, 1500, 5, 0, []string{"Certified"}},
		{"achievement hunter", 2, 1500, 0, 10, []string{"Achievement Hunter"}},
		{
			"everything at once",
			12, 15000, 7, 12,
			[]string{"Expert", "Advanced", "High Achiever", "Certified", "Achievement Hunter"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BadgesForUser(tt.level, tt.points, tt.certificates, tt.achievements)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestRankEntriesPermutation(t *testing.T) {
	entries := []LeaderboardEntry{
		{UserID: uuid.New(), Points: 100},
		{UserID: uuid.New(), Points: 5000},
		{UserID: uuid.New(), Points: 0},
		{UserID: uuid.New(), Points: 2500},
	}
	ranked := RankEntries(entries)

	seen := map[int]bool{}
	for i, e := range ranked {
		if e.Rank != i+1 {
			t.Fatalf("rank at position %d is %d", i, e.Rank)
		}
		if seen[e.Rank] {
			t.Fatalf("duplicate rank %d", e.Rank)
		}
		seen[e.Rank] = true
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Points > ranked[i-1].Points {
			t.Fatalf("not sorted descending at %d", i)
		}
	}
	if ranked[0].Points != 5000 || ranked[len(ranked)-1].Points != 0 {
		t.Fatalf("unexpected order: %+v", ranked)
	}
}

func TestRankEntriesStableTies(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()
	entries := []LeaderboardEntry{
		{UserID: first, Points: 1000},
		{UserID: second, Points: 1000},
		{UserID: third, Points: 1000},
	}
	ranked := RankEntries(entries)
	if ranked[0].UserID != first || ranked[1].UserID != second || ranked[2].UserID != third {
		t.Fatalf("ties must keep enumeration order: %+v", ranked)
	}
}
