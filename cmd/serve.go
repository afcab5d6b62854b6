package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/david578-arc/invoice-analytics/config"
	"github.com/david578-arc/invoice-analytics/db"
	"github.com/david578-arc/invoice-analytics/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the invoice analytics HTTP API",
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

		handlers.DB = database
		handlers.JWTSecret = []byte(cfg.JWTSecret)
		handlers.TokenTTL = cfg.JWTTTL

		addr := fmt.Sprintf(":%d", cfg.Port)
		slog.Info("server starting", "address", addr)
		return http.ListenAndServe(addr, handlers.Router())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
