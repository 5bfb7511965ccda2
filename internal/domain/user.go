package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent       = "student"
	RoleTeacher       = "teacher"
	RoleAdministrator = "administrator"
	RoleStaff         = "staff"
)

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email            string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password         string    `gorm:"not null;column:password" json:"-"`
	FullName         string    `gorm:"not null;column:full_name" json:"full_name"`
	Role             string    `gorm:"not null;default:student;column:role" json:"role"`
	Institution      string    `gorm:"column:institution" json:"institution"`
	StudentID        string    `gorm:"column:student_id" json:"student_id"`
	Phone            string    `gorm:"column:phone" json:"phone,omitempty"`
	DateOfBirth      string    `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Address          string    `gorm:"column:address" json:"address,omitempty"`
	EmergencyContact string    `gorm:"column:emergency_contact" json:"emergency_contact,omitempty"`
	ProfilePicture   string    `gorm:"column:profile_picture" json:"profile_picture,omitempty"`

	// Cumulative award total; never decremented. Level derives from it and
	// only moves up.
	TotalPoints int `gorm:"not null;default:0;column:total_points" json:"total_points"`
	Level       int `gorm:"not null;default:1;column:level" json:"level"`

	LastLoginAt time.Time      `gorm:"column:last_login_at" json:"last_login_at"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdministrator, RoleStaff:
		return true
	}
	return false
}
