package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"cocktaildb/internal/config"
	"cocktaildb/internal/db"
	"cocktaildb/internal/db/mock"
	applog "cocktaildb/internal/log"
)

// openDatabaseFunc is replaced in tests.
var openDatabaseFunc = openDatabase

func main() {
	if err := newRootCmd().Execute(); err != nil {
		applog.Error(context.Background(), "command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Maintain the cocktail catalog database",
		Long: `catalogctl runs maintenance tasks against the catalog database configured
through DATABASE_URL (or the in-memory mock when DATABASE_USE_MOCK is set).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applog.SetLevel(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Minimum log level (debug, info, warn, error)")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newImportIngredientsCmd(),
		newEditorCmd(),
		newFilterCmd(),
		newBatchCmd(),
	)
	return root
}

// openDatabase connects without migrating; run "catalogctl migrate" first.
func openDatabase(ctx context.Context) (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.UseMock {
		return mock.New(ctx)
	}
	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}
