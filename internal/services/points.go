package services

import "math"

// Scoring constants. Quiz points scale with a per-tier multiplier; drills
// trade time and mistakes against a flat score multiple.
const (
	quizImprovementBonus = 50
	quizCertThreshold    = 80

	drillScoreMultiplier = 15
	drillTimeBonusFloor  = 200
	drillMistakePenalty  = 10
	drillPerfectBonus    = 100
	drillCertMinScore    = 85
	drillCertMaxMistakes = 2
	drillSpeedThreshold  = 60
	drillPerfectMinScore = 95

	pointsPerLevel = 1000
)

var difficultyMultipliers = map[string]float64{
	"1": 1.0,
	"2": 1.2,
	"3": 1.5,
	"4": 1.8,
	"5": 2.0,
}

func DifficultyMultiplier(level string) float64 {
	if m, ok := difficultyMultipliers[level]; ok {
		return m
	}
	return 1.0
}

// QuizPoints is floor(percentage*10 * tier multiplier), plus a flat bonus
// when the submission strictly beats the stored best.
func QuizPoints(percentage int, level string, improved bool) int {
	base := percentage * 10
	points := int(math.Floor(float64(base) * DifficultyMultiplier(level)))
	if improved {
		points += quizImprovementBonus
	}
	return points
}

func PerfectExecution(score, mistakes int) bool {
	return mistakes == 0 && score >= drillPerfectMinScore
}

// DrillPoints never goes negative; slow, mistake-heavy runs bottom out at 0.
func DrillPoints(score, timeToCompleteSeconds, mistakes int) int {
	points := score * drillScoreMultiplier
	if bonus := drillTimeBonusFloor - timeToCompleteSeconds; bonus > 0 {
		points += bonus
	}
	points -= mistakes * drillMistakePenalty
	if PerfectExecution(score, mistakes) {
		points += drillPerfectBonus
	}
	if points < 0 {
		return 0
	}
	return points
}

// LevelForPoints derives the level a point total maps to. Callers must keep
// levels monotone: a user's level only moves when this exceeds it.
func LevelForPoints(totalPoints int) int {
	return totalPoints/pointsPerLevel + 1
}

func QuizEarnsCertificate(percentage int) bool {
	return percentage >= quizCertThreshold
}

func DrillEarnsCertificate(score, mistakes int) bool {
	return score >= drillCertMinScore && mistakes <= drillCertMaxMistakes
}

func DrillEarnsSpeedAchievement(timeToCompleteSeconds int) bool {
	return timeToCompleteSeconds < drillSpeedThreshold
}
