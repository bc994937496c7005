package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"github.com/secondhandshop/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		command        string
		migrationsPath string
		logLevel       string
		steps          int
		version        int
		name           string
		description    string
	)

	flag.StringVar(&command, "cmd", "", "Command: up, down, steps, version, force, create, list")
	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.IntVar(&steps, "n", 0, "Number of steps for -cmd steps (negative rolls back)")
	flag.IntVar(&version, "version", -1, "Version for -cmd force")
	flag.StringVar(&name, "name", "", "Migration name for -cmd create")
	flag.StringVar(&description, "desc", "", "Migration description for -cmd create")
	flag.Usage = printUsage
	flag.Parse()

	if command == "" {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	migrationsPath, err = resolveMigrationsPath(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", migrationsPath),
	)

	switch command {
	case "create":
		if name == "" {
			log.Fatal("Migration name required. Usage: migrate -cmd create -name <name> [-desc <description>]")
		}
		mf, err := migration.NewCreator(migrationsPath).Create(name, description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return
	case "list":
		files, err := migration.ListMigrations(migrationsPath)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		log.Info("Available migrations", zap.Int("count", len(files)))
		for _, f := range files {
			fmt.Println("  -", f)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatal("SQL migrations only target postgres; sqlite schemas are created by auto-migrate",
			zap.String("driver", cfg.Database.Driver))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := migration.New(db, migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}
	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}
	case "steps":
		if steps == 0 {
			log.Fatal("Step count required. Usage: migrate -cmd steps -n <n>")
		}
		if err := m.Steps(steps); err != nil {
			log.Fatal("Migration steps failed", zap.Error(err))
		}
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if v == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		}
	case "force":
		if version < 0 {
			log.Fatal("Version required. Usage: migrate -cmd force -version <v>")
		}
		log.Warn("Forcing migration version", zap.Int("version", version))
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}
	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// resolveMigrationsPath falls back to ./migrations, then to the directory
// two levels above the executable.
func resolveMigrationsPath(path string) (string, error) {
	if path == "" {
		if _, err := os.Stat(defaultMigrationsPath); err == nil {
			path = defaultMigrationsPath
		} else if execPath, err := os.Executable(); err == nil {
			candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsPath)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
		if path == "" {
			path = defaultMigrationsPath
		}
	}
	return filepath.Abs(path)
}

func printUsage() {
	fmt.Println(`SecondHandShop database migration tool

Usage:
  migrate -cmd <command> [flags]

Commands:
  up         Apply all pending migrations
  down       Roll back all migrations
  steps      Apply -n migrations (positive=up, negative=down)
  version    Show current migration version
  force      Force set migration version to -version (use with caution)
  create     Create a new migration file pair named -name
  list       List available migrations

Flags:
  -path string       Path to migrations directory (default: ./migrations)
  -log-level string  Log level: debug, info, warn, error (default: info)
  -n int             Step count for steps
  -version int       Target version for force
  -name string       Name for create
  -desc string       Description for create

Database settings come from config.toml or SHOP_DATABASE_* environment variables.

Examples:
  migrate -cmd up
  migrate -cmd steps -n -1
  migrate -cmd create -name add_product_tags -desc "Tag table for products"`)
}