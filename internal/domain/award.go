package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	CertificateTypeQuiz  = "quiz"
	CertificateTypeDrill = "drill"

	// Drill certificates carry a fixed pseudo-level instead of a tier.
	CertificateLevelPractical = "practical"
)

// Certificate is append-only and unique per (user, type, disaster, level).
// ValidUntil is recorded but re-issuance is not gated on it.
type Certificate struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"not null;uniqueIndex:idx_cert_user_triple" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Type         string    `gorm:"not null;uniqueIndex:idx_cert_user_triple" json:"type"`
	DisasterType string    `gorm:"not null;uniqueIndex:idx_cert_user_triple" json:"disaster_type"`
	Level        string    `gorm:"not null;uniqueIndex:idx_cert_user_triple" json:"level"`
	Score        int       `gorm:"not null" json:"score"`
	IssuedAt     time.Time `gorm:"not null" json:"issued_at"`
	ValidUntil   time.Time `gorm:"not null" json:"valid_until"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Certificate) TableName() string { return "certificate" }

const (
	AchievementFirstQuiz  = "first_quiz"
	AchievementSpeedDemon = "speed_demon"

	AchievementCategoryMilestone  = "milestone"
	AchievementCategoryExcellence = "excellence"
	AchievementCategorySpeed      = "speed"
)

// Achievement is append-only and unique per (user, achievement id). Per-category
// achievements embed the disaster type in the id.
type Achievement struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"not null;uniqueIndex:idx_achievement_user_key" json:"user_id"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AchievementID string    `gorm:"not null;uniqueIndex:idx_achievement_user_key;column:achievement_id" json:"achievement_id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `gorm:"not null" json:"description"`
	Category      string    `gorm:"not null" json:"category"`
	EarnedAt      time.Time `gorm:"not null" json:"earned_at"`
	CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Achievement) TableName() string { return "achievement" }

func PerfectQuizAchievementID(disasterType string) string {
	return "perfect_quiz_" + disasterType
}

func PerfectDrillAchievementID(disasterType string) string {
	return "perfect_drill_" + disasterType
}
