package services

import "testing"

func TestQuizPoints(t *testing.T) {
	tests := []struct {
		name       string
		percentage int
		level      string
		improved   bool
		want       int
	}{
		{"perfect tier one first attempt", 100, "1", true, 1050},
		{"perfect tier one repeat", 100, "1", false, 1000},
		{"tier two scaling", 100, "2", false, 1200},
		{"tier three scaling", 80, "3", false, 1200},
		{"tier four scaling", 50, "4", false, 900},
		{"tier five scaling", 100, "5", true, 2050},
		{"unknown tier falls back to 1.0", 70, "9", false, 700},
		{"zero score", 0, "1", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuizPoints(tt.percentage, tt.level, tt.improved); got != tt.want {
				t.Fatalf("QuizPoints(%d, %q, %v) = %d, want %d",
					tt.percentage, tt.level, tt.improved, got, tt.want)
			}
		})
	}
}

func TestDrillPoints(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		time     int
		mistakes int
		want     int
	}{
		// 96*15 + (200-50) + 100 perfect bonus
		{"perfect fast run", 96, 50, 0, 1690},
		// 80*15 + (200-120) - 3*10
		{"average run", 80, 120, 3, 1250},
		// no time bonus past the floor
		{"slow run", 60, 400, 0, 900},
		{"floor at zero", 0, 500, 20, 0},
		// score >= 95 but mistakes > 0: no perfect bonus
		{"near perfect with mistake", 96, 50, 1, 1580},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DrillPoints(tt.score, tt.time, tt.mistakes); got != tt.want {
				t.Fatalf("DrillPoints(%d, %d, %d) = %d, want %d",
					tt.score, tt.time, tt.mistakes, got, tt.want)
			}
		})
	}
}

func TestPerfectExecution(t *testing.T) {
	if !PerfectExecution(95, 0) {
		t.Fatalf("95/0 should be perfect")
	}
	if PerfectExecution(94, 0) {
		t.Fatalf("94/0 should not be perfect")
	}
	if PerfectExecution(100, 1) {
		t.Fatalf("100/1 should not be perfect")
	}
}

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{1050, 2},
		{9999, 10},
		{10000, 11},
	}
	for _, tt := range tests {
		if got := LevelForPoints(tt.points); got != tt.want {
			t.Fatalf("LevelForPoints(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestLevelMonotone(t *testing.T) {
	total := 0
	level := 1
	for _, award := range []int{0, 100, 950, 10, 2000, 0, 500} {
		total += award
		next := LevelForPoints(total)
		if next < level {
			t.Fatalf("level regressed from %d to %d at total %d", level, next, total)
		}
		if next > level {
			level = next
		}
	}
}

func TestCertificateThresholds(t *testing.T) {
	if !QuizEarnsCertificate(80) || QuizEarnsCertificate(79) {
		t.Fatalf("quiz certificate threshold is 80")
	}
	if !DrillEarnsCertificate(85, 2) {
		t.Fatalf("85/2 should earn a drill certificate")
	}
	if DrillEarnsCertificate(84, 0) || DrillEarnsCertificate(90, 3) {
		t.Fatalf("drill certificate bounds violated")
	}
	if !DrillEarnsSpeedAchievement(59) || DrillEarnsSpeedAchievement(60) {
		t.Fatalf("speed achievement threshold is 60 seconds")
	}
}
