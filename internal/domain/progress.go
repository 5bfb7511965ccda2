package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Disaster categories namespacing quizzes, drills, and learning modules.
const (
	DisasterFire          = "fire"
	DisasterEarthquake    = "earthquake"
	DisasterFlood         = "flood"
	DisasterSevereWeather = "severe_weather"
	DisasterElectrical    = "electrical"
)

// QuizResult holds the best recorded attempt for one (user, category, tier)
// key. A lower score never overwrites a stored one.
type QuizResult struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"not null;uniqueIndex:idx_quiz_user_type_level" json:"user_id"`
	User             *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	DisasterType     string    `gorm:"not null;uniqueIndex:idx_quiz_user_type_level" json:"disaster_type"`
	Level            string    `gorm:"not null;uniqueIndex:idx_quiz_user_type_level" json:"level"`
	Score            int       `gorm:"not null" json:"score"`
	Percentage       int       `gorm:"not null" json:"percentage"`
	Attempts         int       `gorm:"not null;default:1" json:"attempts"`
	TimeSpentSeconds int       `gorm:"not null;default:0;column:time_spent_seconds" json:"time_spent_seconds"`
	CompletedAt      time.Time `gorm:"not null" json:"completed_at"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (QuizResult) TableName() string { return "quiz_result" }

type DrillResult struct {
	ID                    uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID                uuid.UUID      `gorm:"not null;uniqueIndex:idx_drill_user_type_drill" json:"user_id"`
	User                  *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	DisasterType          string         `gorm:"not null;uniqueIndex:idx_drill_user_type_drill" json:"disaster_type"`
	DrillID               string         `gorm:"not null;uniqueIndex:idx_drill_user_type_drill;column:drill_id" json:"drill_id"`
	Score                 int            `gorm:"not null" json:"score"`
	TimeToCompleteSeconds int            `gorm:"not null;column:time_to_complete_seconds" json:"time_to_complete_seconds"`
	Mistakes              int            `gorm:"not null;default:0" json:"mistakes"`
	PerfectExecution      bool           `gorm:"not null;default:false;column:perfect_execution" json:"perfect_execution"`
	StepsTaken            datatypes.JSON `gorm:"column:steps_taken" json:"steps_taken,omitempty"`
	CompletedAt           time.Time      `gorm:"not null" json:"completed_at"`
	CreatedAt             time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (DrillResult) TableName() string { return "drill_result" }

// ModuleCompletion tracks learning-module progress. Modules earn no points.
type ModuleCompletion struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"not null;uniqueIndex:idx_module_user_type_module" json:"user_id"`
	User             *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	DisasterType     string    `gorm:"not null;uniqueIndex:idx_module_user_type_module" json:"disaster_type"`
	ModuleID         string    `gorm:"not null;uniqueIndex:idx_module_user_type_module;column:module_id" json:"module_id"`
	Progress         int       `gorm:"not null;default:0" json:"progress"`
	TimeSpentSeconds int       `gorm:"not null;default:0;column:time_spent_seconds" json:"time_spent_seconds"`
	CompletedAt      time.Time `gorm:"not null" json:"completed_at"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ModuleCompletion) TableName() string { return "module_completion" }
