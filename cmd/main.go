package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NikhilKumarMandal/todo-backend/internal/config"
	"github.com/NikhilKumarMandal/todo-backend/internal/database"
	"github.com/NikhilKumarMandal/todo-backend/internal/handlers"
	"github.com/NikhilKumarMandal/todo-backend/internal/mailer"
	"github.com/NikhilKumarMandal/todo-backend/internal/middleware"
	"github.com/NikhilKumarMandal/todo-backend/internal/repository"
	"github.com/NikhilKumarMandal/todo-backend/internal/server"
	"github.com/NikhilKumarMandal/todo-backend/internal/services"
	"github.com/NikhilKumarMandal/todo-backend/internal/storage"
	"github.com/NikhilKumarMandal/todo-backend/internal/utils"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.App.Env)
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()
	sugar.Infof("Starting todo-backend in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket)
	if err != nil {
		sugar.Fatalf("s3 init: %v", err)
	}

	mail := mailer.NewClient(cfg.Mail.APIKey, cfg.Mail.SenderEmail, cfg.Mail.SenderName)
	if !mail.IsConfigured() {
		sugar.Warn("Mail client not fully configured. Password reset emails will be skipped.")
	}

	tokens := utils.NewTokenManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTTLMinutes,
		cfg.JWT.RefreshTTLDays,
	)

	userRepo := repository.NewMongoUserRepo(db)
	todoRepo := repository.NewMongoTodoRepo(db)

	authSvc := services.NewAuthService(userRepo, tokens, store, mail, cfg.App.BaseURL, cfg.Security.ResetTokenTTLMinutes, sugar)
	todoSvc := services.NewTodoService(todoRepo)

	authHandler := handlers.NewAuthHandler(authSvc, tokens.AccessTTL(), tokens.RefreshTTL())
	todoHandler := handlers.NewTodoHandler(todoSvc)
	gate := middleware.RequireAuth(tokens, userRepo)

	app := server.New(cfg, authHandler, todoHandler, gate, logger)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctxShut); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}

	sugar.Info("Graceful shutdown complete")
}
