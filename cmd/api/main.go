package main

import (
	"context"
	"log"

	"github.com/crimson-site/crimson-backend/config"
	"github.com/crimson-site/crimson-backend/internal/auth"
	"github.com/crimson-site/crimson-backend/internal/bootstrap"
	cronjob "github.com/crimson-site/crimson-backend/internal/projects/cron"
	"github.com/crimson-site/crimson-backend/internal/projects/repository"

	fbauth "firebase.google.com/go/v4/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	var authClient *fbauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
		log.Println("Firebase token verification enabled")
	} else {
		log.Println("Firebase not configured, running in guest mode")
	}

	sweeper := cronjob.NewScheduler(repository.NewProjectRepository(db), cfg.Retention)
	sweeper.Start()
	defer sweeper.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "crimson-backend",
		Version:     cfg.App.Version,
		DB:          db,
		Redis:       rdb,
		AuthClient:  authClient,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
