package main

import (
	"context"
	"log"

	"github.com/Arviva-Admin/portfolio-backend/config"
	"github.com/Arviva-Admin/portfolio-backend/internal/auth"
	"github.com/Arviva-Admin/portfolio-backend/internal/bootstrap"
	"github.com/Arviva-Admin/portfolio-backend/internal/storage/postgres"

	firebaseauth "firebase.google.com/go/v4/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	cache, err := bootstrap.OpenRedis(context.Background(), &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if cache == nil {
		log.Println("REDIS_ADDR not set, list cache disabled")
	} else {
		defer cache.Close()
	}

	var authClient *firebaseauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, admin routes are unprotected")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config:     cfg,
		DB:         db,
		Cache:      cache,
		AuthClient: authClient,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
