package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/susu3304/tabiplan/internal/api"
	"github.com/susu3304/tabiplan/internal/bot"
	"github.com/susu3304/tabiplan/internal/config"
	"github.com/susu3304/tabiplan/internal/db"
	"github.com/susu3304/tabiplan/internal/itinerary"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	database, err := db.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Itinerary generation is optional
	var itins *itinerary.Service
	if cfg.OpenAIAPIKey != "" {
		itins = itinerary.NewService(cfg.OpenAIAPIKey)
	} else {
		log.Println("OPENAI_API_KEY not set; itinerary generation disabled")
	}

	// Initialize Discord bot
	discordBot, err := bot.New(cfg.DiscordToken, database)
	if err != nil {
		log.Fatalf("Failed to create discord bot: %v", err)
	}

	// Initialize API server
	apiServer := api.New(cfg, database, itins)

	// Start Discord bot
	if err := discordBot.Start(); err != nil {
		log.Fatalf("Failed to start discord bot: %v", err)
	}
	defer discordBot.Stop()

	// Start API server
	go func() {
		if err := apiServer.Start(); err != nil {
			log.Printf("API server error: %v", err)
		}
	}()

	// Wait for signal to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
}
