package main

import (
	"context"
	"os"

	"spendtrack/internal/cli"
	"spendtrack/internal/config"
	"spendtrack/internal/services"
)

func main() {
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg)
	cli.ValidateConfig(logger, cfg)

	repo := cli.InitStore(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	service := services.NewExpenseService(repo)

	app := newApp(service, cfg, logger, os.Stdin, os.Stdout)
	if err := app.Run(context.Background()); err != nil {
		logger.Error("Application terminated", "error", err)
		os.Exit(1)
	}
}
