package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/pkg/utils"
	"github.com/joho/godotenv"
)

const AppEnvKey = "APP_ENV"

var developmentEnvs = map[string]bool{
	"":            true,
	"dev":         true,
	"development": true,
	"local":       true,
	"test":        true,
	"testing":     true,
}

// InitializeEnvFile loads ENV_FILE (default ".env") without overriding variables already set.
func InitializeEnvFile(logger *log.Logger) {
	if utils.GetEnvBool("SKIP_DOTENV", false) {
		logger.Info("Skipping env file load", "reason", "SKIP_DOTENV")
		return
	}

	path := utils.GetEnvTrimmedOrDefault("ENV_FILE", ".env")
	if err := godotenv.Load(path); err != nil {
		logger.Warn("Env file not loaded", "path", path, "error", err.Error())
		return
	}

	logger.Info("Environment variables loaded", "path", path)
}

func GetAppEnv() string {
	return normalizeEnv(os.Getenv(AppEnvKey))
}

// IsDevelopmentEnv reports whether appEnv names a local, test or unset environment.
func IsDevelopmentEnv(appEnv string) bool {
	return developmentEnvs[normalizeEnv(appEnv)]
}

func ValidateAutoMigrateAllowed(appEnv string) error {
	if env := normalizeEnv(appEnv); !IsDevelopmentEnv(env) {
		return fmt.Errorf("--auto-migrate is not allowed when %s=%q", AppEnvKey, env)
	}
	return nil
}

func normalizeEnv(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
