package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/handlers"
	"github.com/Skotchmaster/storefront/internal/logging"
	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/tokens"
	httpserver "github.com/Skotchmaster/storefront/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Error("db_init_error", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Error("db_migrate_error", "error", err)
		os.Exit(1)
	}

	var events mykafka.Publisher = mykafka.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		prod, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.Error("kafka_init_error", "error", err)
			os.Exit(1)
		}
		events = prod
	} else {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	rp := repo.New(gdb)

	e := httpserver.NewEcho(logger)
	httpserver.Register(e, &httpserver.Deps{
		DB:   gdb,
		Auth: authmw.NewAuthenticator(cfg.JWTSecret, rp),
		AuthHandler: &handlers.AuthHandler{Svc: &service.AuthService{
			Repo:   rp,
			Tokens: tokens.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
			Events: events,
		}},
		ProductHandler: &handlers.ProductHandler{Svc: &service.CatalogService{Repo: rp, Events: events}},
		OrderHandler:   &handlers.OrderHandler{Svc: &service.OrderService{Repo: rp, Events: events}},
		PublicDir:      cfg.PublicDir,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http_server_start", "addr", srv.Addr, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}
	if err := events.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}

	logger.Info("shutdown_complete")
}
