package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/david578-arc/invoice-analytics/config"
	"github.com/david578-arc/invoice-analytics/db"
	"github.com/david578-arc/invoice-analytics/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.json>",
	Short: "Import extracted invoice records and demo users into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		n, err := seed.Run(cmd.Context(), database, args[0])
		if err != nil {
			return err
		}
		slog.Info("seed complete", "invoices", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
