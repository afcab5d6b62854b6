package main

//go:generate swag init

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/david578-arc/invoice-analytics/cmd"
	_ "github.com/david578-arc/invoice-analytics/docs"
)

// @title           Invoice Analytics API
// @version         1.0.0
// @description     REST API for invoice CRUD, reporting aggregations, and chat-with-data queries.
// @host            localhost:3001
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in              header
// @name            Authorization

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	// Configure structured logging
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	cmd.Execute()
}
