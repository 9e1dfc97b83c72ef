package main

import (
	"fmt"
	"os"

	"airbnb-pipeline/config"
	"airbnb-pipeline/services"
	"airbnb-pipeline/storage"
	"airbnb-pipeline/utils"
)

func main() {
	logger := utils.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	logger.Info("=== Airbnb Listing Cleaning Pipeline starting ===")
	logger.Infof("Config — input: %s | rejects: %s | concurrency: %d | batch: %d",
		cfg.CSVInputPath, cfg.RejectsCSVPath, cfg.MaxConcurrency, cfg.InsertBatchSize)

	source, err := storage.NewCSVReader(cfg.CSVInputPath)
	if err != nil {
		logger.Errorf("Failed to open raw CSV source: %v", err)
		os.Exit(1)
	}
	defer source.Close()

	retry := &utils.RetryConfig{
		MaxAttempts: cfg.ConnectRetries,
		BaseDelay:   cfg.ConnectRetryDelay,
		Logger:      logger,
	}
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), cfg.InsertBatchSize, retry)
	if err != nil {
		logger.Errorf("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer pgWriter.Close()

	rawListings, err := source.ReadAll()
	if err != nil {
		logger.Errorf("Failed to read raw listings: %v", err)
		os.Exit(1)
	}
	logger.Infof("Read %d raw rows from %s", len(rawListings), cfg.CSVInputPath)

	cleaner := services.NewCleaner(logger, cfg.MaxConcurrency)
	dispositions := cleaner.Clean(rawListings)

	rejects := services.Rejected(dispositions)
	if len(rejects) > 0 {
		rejectWriter, err := storage.NewRejectCSVWriter(cfg.RejectsCSVPath)
		if err != nil {
			logger.Errorf("Failed to create rejects writer: %v", err)
			os.Exit(1)
		}
		if err := rejectWriter.WriteRejects(rejects); err != nil {
			logger.Errorf("Failed to write rejects audit file: %v", err)
			_ = rejectWriter.Close()
			os.Exit(1)
		}
		_ = rejectWriter.Close()
		logger.Infof("Rejected rows written to %s", cfg.RejectsCSVPath)
	}

	admitted := services.Admitted(dispositions)
	logger.Infof("Clean dataset: %d listings", len(admitted))

	if err := pgWriter.Write(admitted); err != nil {
		logger.Errorf("PostgreSQL write failed: %v", err)
		os.Exit(1)
	}

	count, err := pgWriter.Count()
	if err != nil {
		logger.Errorf("Failed to verify listings table: %v", err)
	} else {
		logger.Infof("Clean listings published to PostgreSQL (table: listings, rows: %d)", count)
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(dispositions)
	insightSvc.Print(report)

	fmt.Printf("  Done. Rejects CSV → %s | Clean data → PostgreSQL (listings table)\n\n",
		cfg.RejectsCSVPath)
}
