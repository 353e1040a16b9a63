package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/careerlens/backend/config"
	"github.com/careerlens/backend/internal/database"
	"github.com/careerlens/backend/internal/inference"
	"github.com/careerlens/backend/internal/server"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Redis error: %v", err)
	}

	if cfg.ModelS3Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := inference.FetchArtifactsFromS3(ctx, cfg.ModelS3Bucket, cfg.ModelS3Prefix, cfg.ModelDir); err != nil {
			log.Printf("Warning: artifact download failed: %v", err)
		}
		cancel()
	}

	// The server starts even without a usable model; the predict endpoint
	// then fails fast while auth and CRUD keep working.
	var predictor *inference.Predictor
	artifacts, err := inference.LoadArtifacts(cfg.ModelDir)
	if err != nil {
		log.Printf("Warning: model artifacts not loaded: %v", err)
		predictor = inference.NewPredictor(nil)
	} else {
		log.Printf("Loaded ML model with %d classes", len(artifacts.Labels.Classes))
		predictor = inference.NewPredictor(artifacts)
	}

	srv := server.New(cfg, db, predictor, redisClient)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s...", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
