package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
	"github.com/surakshalabs/suraksha-backend/internal/utils"
)

type Service struct {
	db     *gorm.DB
	log    *logger.Logger
	driver string
}

// NewService opens the record store. DB_DRIVER selects postgres (default)
// or sqlite for local development.
func NewService(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", logg))

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	}

	var (
		gdb *gorm.DB
		err error
	)
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "suraksha.db", logg)
		gdb, err = gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
	case "postgres":
		host := utils.GetEnv("POSTGRES_HOST", "localhost", logg)
		port := utils.GetEnv("POSTGRES_PORT", "5432", logg)
		user := utils.GetEnv("POSTGRES_USER", "postgres", logg)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", logg)
		name := utils.GetEnv("POSTGRES_NAME", "suraksha", logg)

		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			user, password, host, port, name,
		)
		gdb, err = gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}

	return &Service{db: gdb, log: serviceLog, driver: driver}, nil
}

func (s *Service) DB() *gorm.DB   { return s.db }
func (s *Service) Driver() string { return s.driver }

func (s *Service) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
