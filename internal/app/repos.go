package app

import (
	"gorm.io/gorm"

	"github.com/surakshalabs/suraksha-backend/internal/data/repos"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

type Repos struct {
	User             repos.UserRepo
	UserToken        repos.UserTokenRepo
	QuizResult       repos.QuizResultRepo
	DrillResult      repos.DrillResultRepo
	ModuleCompletion repos.ModuleCompletionRepo
	Certificate      repos.CertificateRepo
	Achievement      repos.AchievementRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:             repos.NewUserRepo(db, log),
		UserToken:        repos.NewUserTokenRepo(db, log),
		QuizResult:       repos.NewQuizResultRepo(db, log),
		DrillResult:      repos.NewDrillResultRepo(db, log),
		ModuleCompletion: repos.NewModuleCompletionRepo(db, log),
		Certificate:      repos.NewCertificateRepo(db, log),
		Achievement:      repos.NewAchievementRepo(db, log),
	}
}
