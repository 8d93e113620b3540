package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/akeren/macro-app-api/config"
	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/pkg/migrations"
	"github.com/akeren/macro-app-api/pkg/utils"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		if err := runMigrate(logger, args[1:]); err != nil {
			logger.Error("Migration command failed", "error", err.Error())
			os.Exit(1)
		}
		return

	case "check-migrations":
		dir := utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations")
		if err := migrations.CheckPairs(dir); err != nil {
			logger.Error("Migration files are inconsistent", "dir", dir, "error", err.Error())
			os.Exit(1)
		}
		logger.Info("Migration files are consistent", "dir", dir)
		return

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

// runMigrate only needs the datastore credentials, not the full server configuration.
func runMigrate(logger *log.Logger, args []string) error {
	subcommand := "up"
	if len(args) > 0 {
		subcommand = args[0]
	}

	secrets := config.Secrets{
		SupabaseDBURL: utils.GetEnvTrimmed("SUPABASE_DB_URL"),
		SupabaseDBKey: utils.GetEnvTrimmed("SUPABASE_DB_KEY"),
	}
	if secrets.SupabaseDBURL == "" || secrets.SupabaseDBKey == "" {
		return &config.ConfigError{Missing: missingDBVars(secrets)}
	}

	db, err := config.NewDatabase(logger, secrets, nil)
	if err != nil {
		return err
	}
	defer config.CloseDatabase(db, logger)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	cfg := migrations.Config{
		Dir:    utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations"),
		Logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	switch subcommand {
	case "up":
		if err := migrations.Up(ctx, sqlDB, cfg); err != nil {
			return err
		}
		logger.Info("Database migrations completed")

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[1])
			}
			steps = n
		}
		if err := migrations.Down(ctx, sqlDB, cfg, steps); err != nil {
			return err
		}
		logger.Info("Database migrations rolled back", "steps", steps)

	case "version":
		version, dirty, err := migrations.Version(ctx, sqlDB, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)

	default:
		return fmt.Errorf("unknown migrate subcommand %q", subcommand)
	}

	return nil
}

func missingDBVars(secrets config.Secrets) []string {
	var missing []string
	if secrets.SupabaseDBURL == "" {
		missing = append(missing, "SUPABASE_DB_URL")
	}
	if secrets.SupabaseDBKey == "" {
		missing = append(missing, "SUPABASE_DB_KEY")
	}
	return missing
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate [up]        Apply every pending database migration")
	fmt.Println("  migrate down [n]    Roll back the last n migrations (default 1)")
	fmt.Println("  migrate version     Print the current migration version")
	fmt.Println("  check-migrations    Verify every migration has an up and a down file")
}
