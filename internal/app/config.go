package app

import (
	"time"

	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
	"github.com/surakshalabs/suraksha-backend/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CatalogPath     string
	SnapshotTTL     time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	catalogPath := utils.GetEnv("CATALOG_PATH", "", log)
	snapshotTTLSeconds := utils.GetEnvAsInt("SNAPSHOT_TTL", 300, log)
	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		CatalogPath:     catalogPath,
		SnapshotTTL:     time.Duration(snapshotTTLSeconds) * time.Second,
	}
}
