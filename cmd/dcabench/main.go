package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/rewired-gh/dcabench/internal/bench"
	"github.com/rewired-gh/dcabench/internal/config"
	"github.com/rewired-gh/dcabench/internal/logger"
	"github.com/rewired-gh/dcabench/internal/models"
	"github.com/rewired-gh/dcabench/internal/scenario"
	"github.com/rewired-gh/dcabench/internal/simulate"
	"github.com/rewired-gh/dcabench/internal/storage"
)

var configPath = flag.String("config", "", "Path to configuration file (empty = built-in defaults)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	if *configPath != "" {
		logger.Info("Configuration loaded from %s", *configPath)
	} else {
		logger.Debug("Using built-in configuration defaults")
	}

	sim := cfg.Simulation
	genConfig := scenario.Config{
		Months:  sim.Months,
		Trends:  sim.MonthlyTrendReturns(),
		Crashes: sim.CrashMagnitudes,
	}

	startTime := time.Now()
	scenarios, err := scenario.Generate(genConfig)
	if err != nil {
		logger.Fatal("Scenario generation failed: %v", err)
	}

	overlaps := scenario.Overlaps(genConfig.Trends, genConfig.Crashes)
	expected := scenario.ExpectedCount(sim.Months, len(genConfig.Trends), len(genConfig.Crashes), len(overlaps))
	if len(scenarios) != expected {
		logger.Fatal("Generated %d scenarios but the closed-form count is %d; generator and formula disagree", len(scenarios), expected)
	}
	logger.Info("Generated %d scenarios (%d months, %d trends, %d crashes, %d overlap)",
		len(scenarios), sim.Months, len(genConfig.Trends), len(genConfig.Crashes), len(overlaps))

	params := simulate.Params{
		InitialPrice:      sim.InitialPrice,
		TotalInvestment:   sim.TotalInvestment,
		MonthlyInvestment: sim.MonthlyInvestment(),
		DividendYield:     sim.MonthlyDividendYield(),
	}
	tally, results, err := bench.Run(scenarios, params)
	if err != nil {
		logger.Fatal("Benchmark run failed: %v", err)
	}
	duration := time.Since(startTime)
	logger.Info("Evaluated %d scenarios in %v", tally.Total, duration)

	stats := bench.SummarizeMargins(results)
	logger.Debug("Share margin (DCA - all-in): mean=%.4f sigma=%.4f", stats.Mean(), stats.Sigma())

	fmt.Println(tally)

	if cfg.Storage.Enabled {
		persistRun(cfg, sim, tally, results, duration)
	} else {
		logger.Debug("Run archive disabled, nothing persisted")
	}
}

func persistRun(
	cfg *config.Config,
	sim config.SimulationConfig,
	tally models.Tally,
	results []models.ScenarioResult,
	duration time.Duration,
) {
	store, err := storage.New(cfg.Storage.MaxRuns, cfg.Storage.DBPath)
	if err != nil {
		logger.Error("Failed to initialize run archive: %v", err)
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close run archive: %v", err)
		}
	}()

	rec := models.NewRunRecord(sim.Months, len(sim.AnnualTrendReturns), len(sim.CrashMagnitudes), tally, duration)
	if err := store.SaveRun(rec, results); err != nil {
		logger.Error("Failed to archive run: %v", err)
		return
	}
	logger.Info("Archived run %s (%d scenario results)", rec.ID, len(results))
}
