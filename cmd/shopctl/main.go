// Command shopctl is the operator CLI for the storefront: seeding mock data,
// creating admin accounts, flushing queued inquiry emails and uploading
// product photos through the admin API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"github.com/secondhandshop/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	timeout time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "SecondHandShop operator CLI",
	Long: `shopctl manages a SecondHandShop deployment.

Database commands (seed, admin, emails) read config.toml and SHOP_* environment
variables the same way the API server does. The images command talks to a
running API server over HTTP.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	adminCmd.AddCommand(adminCreateCmd)
	emailsCmd.AddCommand(emailsFlushCmd)
	imagesCmd.AddCommand(imagesUploadCmd)

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(emailsCmd)
	rootCmd.AddCommand(imagesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a console logger; verbose switches it to debug.
func newLogger() (*zap.Logger, error) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.New(&logger.Config{
		Level:      level,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "15:04:05",
	})
}

// commandContext bounds a command by the --timeout flag.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// openDatabase loads configuration and connects to the configured database.
// sqlite databases get their schema created on the fly.
func openDatabase(ctx context.Context, log *zap.Logger) (*config.Config, *persistence.Database, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		return nil, nil, err
	}
	if db.Driver() == config.DriverSQLite {
		if err := db.AutoMigrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	return cfg, db, nil
}