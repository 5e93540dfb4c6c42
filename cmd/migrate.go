package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskforge/allocd/config"
	"github.com/taskforge/allocd/infra/logger"
	"github.com/taskforge/allocd/infra/store/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrations,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrations(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	m, err := postgres.NewMigrator(cfg.Database, logger.New("migrate"))
	if err != nil {
		return err
	}
	return m.Ensure(cmd.Context())
}
