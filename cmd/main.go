package main

import (
	"context"

	"github.com/adminkit/account-service/config"
	"github.com/adminkit/account-service/db"
	"github.com/adminkit/account-service/internal/account/handler"
	repo "github.com/adminkit/account-service/internal/account/repository/postgres"
	"github.com/adminkit/account-service/internal/account/service"
	"github.com/adminkit/account-service/internal/logger"
	"github.com/adminkit/account-service/internal/mailer"
	storage "github.com/adminkit/account-service/internal/storage/minio"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err)
	}

	log := logger.New(cfg.LogLevel)

	dbPool, err := db.NewPostgresPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatal("failed to create object storage client", "error", err)
	}

	avatarStore, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		log.Fatal("failed to initialize avatar storage", "error", err)
	}

	userRepo := repo.NewPostgresUserRepository(dbPool)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	lifecycleService := service.NewLifecycleService(userRepo, smtpMailer, log,
		cfg.Lifecycle.ActivationTTL, cfg.Lifecycle.ResetTTL)
	userService := service.NewUserService(userRepo, tokenService, lifecycleService, cfg)

	authHandler := handler.NewAuthHandler(userService, tokenService)
	lifecycleHandler := handler.NewLifecycleHandler(lifecycleService)
	avatarHandler := handler.NewAvatarHandler(avatarStore)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, lifecycleHandler, avatarHandler)

	log.Info("starting account service", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
