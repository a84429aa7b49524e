package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tasknest/tasknest-go/internal/cache"
	"github.com/tasknest/tasknest-go/internal/config"
	"github.com/tasknest/tasknest-go/internal/crypto"
	"github.com/tasknest/tasknest-go/internal/handler"
	"github.com/tasknest/tasknest-go/internal/repository"
	"github.com/tasknest/tasknest-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	setupLogger(cfg)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	codec, err := crypto.NewTokenCodec([]byte(cfg.JWTSecret))
	if err != nil {
		slog.Error("creating token codec failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var (
		users service.UserStore
		tasks service.TaskStore
	)
	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err == nil {
		err = repository.Migrate(ctx, db)
	}
	switch {
	case err == nil:
		defer db.Close()
		users = repository.NewUserRepository(db)
		tasks = repository.NewTaskRepository(db)
	case cfg.IsProduction():
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	default:
		slog.Warn("database unavailable, using in-memory store", "error", err)
		mem := repository.NewMemoryStore()
		users = mem.Users()
		tasks = mem.Tasks()
	}

	var profileCache service.ProfileCache
	if rdb := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		defer rdb.Close()
		profileCache = cache.NewProfileCache(rdb, cfg.ProfileCacheTTL)
	}

	authService := service.NewAuthService(users, codec, cfg.SessionTTL, cfg.BcryptCost)
	profileService := service.NewProfileService(users, profileCache)
	taskService := service.NewTaskService(tasks)

	router := handler.NewRouter(handler.Routes{
		Auth: handler.NewAuthHandler(authService, handler.CookieConfig{
			Name:   cfg.CookieName,
			Secure: cfg.CookieSecure(),
			TTL:    cfg.SessionTTL,
		}),
		Profile:    handler.NewProfileHandler(profileService),
		Tasks:      handler.NewTaskHandler(taskService),
		Dashboard:  handler.NewDashboardHandler(profileService, taskService),
		Verifier:   codec,
		CookieName: cfg.CookieName,
		LoginPath:  cfg.LoginPath,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func setupLogger(cfg config.Config) {
	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(h))
}
