package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"toolkeep/internal/config"
	apihttp "toolkeep/internal/http"
	"toolkeep/internal/repository"
	"toolkeep/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if cfg.SessionSecret == config.DevSessionSecret {
		logger.Warn("using development session secret")
	}

	userRepo, err := repository.NewFileUserRepository(cfg.UsersFile)
	if err != nil {
		logger.Fatal("users file init", zap.Error(err))
	}

	loginWindow := time.Duration(cfg.LoginWindowMinutes) * time.Minute
	limiter := service.NewLoginRateLimiter(loginWindow, cfg.LoginMaxAttempts)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisLoginRateLimiter(redisClient, loginWindow, cfg.LoginMaxAttempts)
		}
		cancel()
	}

	sessionSvc := service.NewSessionService(cfg.SessionSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)
	userSvc := service.NewUserService(logger, userRepo)
	authHandler := apihttp.NewAuthHandler(logger, userSvc, sessionSvc, limiter)
	router := apihttp.NewRouter(logger, authHandler, sessionSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("users_file", userRepo.Path()),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
