package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/akeren/macro-app-api/internal/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SSLMode         string // Default: "require", Supabase rejects plaintext
}

func defaultDBConfig() *DBConfig {
	return &DBConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    50,
		ConnMaxLifetime: 5 * time.Minute,
		SSLMode:         "require",
	}
}

// NewDatabase connects to the hosted Postgres behind SUPABASE_DB_URL, authenticating with
// SUPABASE_DB_KEY.
func NewDatabase(logger *log.Logger, secrets Secrets, cfg *DBConfig) (*gorm.DB, error) {
	if cfg == nil {
		cfg = defaultDBConfig()
	}

	dsn, err := BuildDSN(secrets.SupabaseDBURL, secrets.SupabaseDBKey, cfg.SSLMode)
	if err != nil {
		logger.Error("Invalid database URL", "error", err)
		return nil, err
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Error("Failed to get database instance", "error", err)
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := PingDatabase(context.Background(), gdb); err != nil {
		logger.Error("Database ping failed", "error", err)
		return nil, err
	}

	logger.Info("Database connection established successfully")
	return gdb, nil
}

// BuildDSN turns the datastore URL and key into a Postgres connection URL. The key becomes
// the password unless the URL already carries one; a missing user defaults to "postgres".
func BuildDSN(rawURL, key, sslMode string) (string, error) {
	rawURL = sanitizeEnv(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("database url is empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("unsupported database url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("database url is missing a host")
	}

	username := "postgres"
	if u.User != nil && u.User.Username() != "" {
		username = u.User.Username()
	}
	if password, ok := u.User.Password(); ok && password != "" {
		u.User = url.UserPassword(username, password)
	} else {
		u.User = url.UserPassword(username, key)
	}

	if strings.Trim(u.Path, "/") == "" {
		u.Path = "/postgres"
	}

	q := u.Query()
	if q.Get("sslmode") == "" && sslMode != "" {
		q.Set("sslmode", sslMode)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func PingDatabase(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database is not configured")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	return s
}

func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...interface{}) error {
	if db == nil {
		logger.Error("Cannot migrate: db is empty")
		return fmt.Errorf("cannot migrate: db is empty")
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Database migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database migration completed successfully")

	return nil
}

func CloseDatabase(db *gorm.DB, logger *log.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	} else {
		logger.Info("Database closed successfully")
	}
}
