package main

import (
	"log"

	"github.com/torcriss/CocoReddit-sub000/internal/bootstrap"
	"github.com/torcriss/CocoReddit-sub000/internal/config"
	"github.com/torcriss/CocoReddit-sub000/internal/server"
	"github.com/torcriss/CocoReddit-sub000/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedSubreddits(db); err != nil {
		log.Fatalf("failed to seed subreddits: %v", err)
	}

	redisClient := database.ConnectRedis()
	if redisClient == nil {
		log.Println("redis unavailable, rate limiting and live notifications disabled")
	}

	srv := server.NewServer(db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
