package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yukikurage/diet-tracker-api/internal/config"
	"github.com/yukikurage/diet-tracker-api/internal/database"
	"github.com/yukikurage/diet-tracker-api/internal/logger"
	"github.com/yukikurage/diet-tracker-api/internal/repository"
	"github.com/yukikurage/diet-tracker-api/internal/services"
	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", os.Getenv("SUPERUSER_EMAIL"), "email of the superuser")
	password := flag.String("password", os.Getenv("SUPERUSER_PASSWORD"), "password of the superuser")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.LogFile)
	defer log.Sync()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createsuperuser -email <email> -password <password>")
		os.Exit(2)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("database_connect_failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration_failed", zap.Error(err))
	}

	authService := services.NewAuthService(repository.NewUserRepository(db))
	user, err := authService.CreateSuperuser(*email, *password)
	if err != nil {
		log.Fatal("create_superuser_failed", zap.Error(err))
	}

	log.Info("superuser_created", zap.Uint64("user_id", user.ID), zap.String("email", user.Email))
}
