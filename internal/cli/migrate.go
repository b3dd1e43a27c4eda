package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/tienda/internal/config"
	"github.com/Skotchmaster/tienda/internal/repo"
	pkgdb "github.com/Skotchmaster/tienda/pkg/db"
	"github.com/Skotchmaster/tienda/pkg/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the productos, ordenes and orden_productos tables",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv(envFile)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	db, err := pkgdb.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pkgdb.Close(db)

	if err := (&repo.GormRepo{DB: db}).AutoMigrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("schema migrated", "driver", cfg.DatabaseDriver)
	return nil
}
