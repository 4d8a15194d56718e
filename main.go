package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Fifty-Move-Club/podium/app"
	"github.com/Fifty-Move-Club/podium/app/shared/observability"
	"github.com/Fifty-Move-Club/podium/config"
)

func main() {
	// A missing .env is fine; containers inject real environment variables.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, err := observability.Init(ctx, config.ToObsConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to initialize observability: %v", err)
	}

	application := &app.App{}
	if err := application.Initialize(ctx, cfg, obs); err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	runErr := application.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Close(shutdownCtx); err != nil {
		log.Printf("Shutdown finished with errors: %v", err)
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Printf("Observability shutdown failed: %v", err)
	}

	if runErr != nil && runErr != context.Canceled {
		log.Fatalf("App stopped with error: %v", runErr)
	}
	log.Println("Application shut down gracefully.")
}
