/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ProgrammerShajib/fullstack/config"
	"github.com/ProgrammerShajib/fullstack/internal/db"
	"github.com/ProgrammerShajib/fullstack/internal/logger"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := logger.Configure(cfg.Logging)

		if err := cfg.Validate(); err != nil {
			return err
		}
		backend, err := cfg.Database.Backend()
		if err != nil {
			return err
		}
		if backend != config.BackendPostgres {
			return fmt.Errorf("migrations only apply to postgres, URI selects %s", backend)
		}

		if err := db.MigrateUp(cfg.Database.URI); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
}
