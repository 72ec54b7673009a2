package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"surveystat/internal/config"
	"surveystat/internal/container"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create dependency injection container
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer.Logger.Info("analysis defaults: threshold=%.3f language=%s min_frequency=%d",
		appConfig.Analysis.SignificanceThreshold,
		appConfig.Analysis.DefaultLanguage,
		appConfig.Analysis.MinCategoryFrequency)

	if err := appContainer.API().Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("✅ Server stopped")
}
