package db

import (
	"gorm.io/gorm"

	types "github.com/surakshalabs/suraksha-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Activity records
		&types.QuizResult{},
		&types.DrillResult{},
		&types.ModuleCompletion{},

		// Derived awards
		&types.Certificate{},
		&types.Achievement{},
	)
}
