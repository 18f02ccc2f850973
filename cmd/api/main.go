// @title                       Task Manager API
// @version                     1.0
// @description                 Task management REST API with JWT authentication and paginated, searchable listings.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shivam-singh-au17/assessment-sassy/internal/api"
	"github.com/shivam-singh-au17/assessment-sassy/internal/api/handler"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/ports"
	"github.com/shivam-singh-au17/assessment-sassy/internal/core/service"
	"github.com/shivam-singh-au17/assessment-sassy/internal/infrastructure/config"
	"github.com/shivam-singh-au17/assessment-sassy/internal/infrastructure/db/mongo"
	"github.com/shivam-singh-au17/assessment-sassy/internal/infrastructure/db/redis"
	"github.com/shivam-singh-au17/assessment-sassy/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// No logger yet: its level comes from cfg.
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "task-manager",
	})

	if err := run(ctx, cfg); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET_KEY is not set; login and protected routes will fail")
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("db", cfg.Mongo.Database).Msg("connected to mongodb")

	users := mongo.NewUserRepository(db)
	tasks := mongo.NewTaskRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, tasks); err != nil {
		return err
	}

	readiness := []handler.Dependency{{Name: "mongodb", Ping: mongo.Ping(client)}}

	var cache ports.ListCache
	if cfg.CacheEnabled() {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = redis.NewListCache(rdb, cfg.Redis.CacheTTL)
		readiness = append(readiness, handler.Dependency{Name: "redis", Ping: redis.Ping(rdb)})
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("list cache enabled")
	}

	tokens := service.NewTokenService(cfg.JWTSecret)
	e := api.NewRouter(api.Deps{
		Users:     service.NewUserService(users, tokens, cache, log),
		Tasks:     service.NewTaskService(tasks, cache, log),
		Tokens:    tokens,
		Readiness: readiness,
		Logger:    log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server running")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
