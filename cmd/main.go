package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "inkpost/docs" // swagger docs
	"inkpost/internal/config"
	"inkpost/internal/handlers"
	"inkpost/internal/logger"
	"inkpost/internal/repository"
	"inkpost/internal/repository/db"
	"inkpost/internal/server"
	"inkpost/internal/service"

	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configs/config.yml, .env and BLOG_* env
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer closeDB(conn, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// optional revocation store
	var revocations service.RevocationStore
	if cfg.Redis.URL != "" {
		client, err := service.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatalw("failed to connect redis", "err", err)
		}
		defer closeRedis(client, log)
		revocations = service.NewRedisRevocations(client)
		log.Infow("token revocation enabled", "store", "redis")
	}

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		JWTSecret:   []byte(cfg.Auth.JWTSecret),
		TokenTTL:    cfg.Auth.TokenTTL,
		PageSize:    cfg.Site.PageSize,
		Revocations: revocations,
	})

	bootstrapAdmin(ctx, services, cfg.Admin, log)

	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		SiteTitle:       cfg.Site.Title,
		SiteDescription: cfg.Site.Description,
		CookieSecure:    cfg.Auth.CookieSecure,
	})

	// start HTTP server
	srv := server.New(cfg.Port, apiHandler.Routes())
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// bootstrapAdmin creates the configured account on an empty users table.
func bootstrapAdmin(ctx context.Context, services *service.Service, admin config.AdminConfig, log *logger.Logger) {
	if admin.Username == "" {
		return
	}
	created, err := services.EnsureAdmin(ctx, admin.Username, admin.Password)
	switch {
	case errors.Is(err, service.ErrNoAdminPassword):
		log.Warnw("no users exist and admin.password is empty; admin area is unreachable", "username", admin.Username)
	case err != nil:
		log.Fatalw("failed to create admin account", "username", admin.Username, "err", err)
	case created:
		log.Infow("admin account created", "username", admin.Username)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

func closeDB(conn *sql.DB, log *logger.Logger) {
	if err := conn.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
}

func closeRedis(client *redis.Client, log *logger.Logger) {
	if err := client.Close(); err != nil {
		log.Errorw("failed to close redis", "err", err)
	}
}
