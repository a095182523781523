package main

import (
	"log"

	"github.com/joho/godotenv"

	"gopower/app"
	"gopower/domain/sweep"
	"gopower/internal/config"
	"gopower/internal/logging"
	"gopower/ui"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := logging.NewDefault()

	sweeps := app.NewSweepService(sweep.Fixed{
		Baseline: cfg.Defaults.Baseline,
		MDE:      cfg.Defaults.MDE,
		Alpha:    cfg.Defaults.Alpha,
		Power:    cfg.Defaults.Power,
	})

	dashboard, err := ui.NewApp(sweeps, logger)
	if err != nil {
		log.Fatalf("failed to initialize dashboard: %v", err)
	}

	if err := dashboard.Serve(cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
