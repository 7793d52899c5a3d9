package main

import (
	"context"
	"errors"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usermgmt/internal/adapters/http"
	"usermgmt/internal/adapters/http/response"
	"usermgmt/internal/application/user"
	"usermgmt/internal/config"
	"usermgmt/internal/domain"
	"usermgmt/internal/logger"
	"usermgmt/internal/storage/mongodb"
	"usermgmt/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)
	defer log.Sync()

	userRepo, closeStore, err := openUserRepository(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Services
	userService := user.NewService(userRepo)

	// HTTP Handlers
	writer := response.NewJSONWriter(log)
	userHandler := http.NewUserHandler(userService, writer, log)

	router := http.NewRouter(cfg, &http.RouterDeps{
		User:   userHandler,
		Writer: writer,
		Log:    log,
	})

	srv := http.NewServer(router, cfg.Address, cfg.RequestTimeout)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http: starting server", "address", cfg.Address, "storage", cfg.StorageDriver)
		errCh <- srv.ListenAndServe()
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http: server shutdown error", "error", err)
		}

	case err := <-errCh:
		if err != nil && !errors.Is(err, netHttp.ErrServerClosed) {
			log.Error("http: server error", "error", err)
		}
	}

	log.Info("server stopped")
}

func openUserRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (domain.UserRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg.MongoURL, cfg.MongoDatabase, log)
		if err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("failed to disconnect mongodb", "error", err)
			}
		}
		return mongodb.NewUserRepository(db), closeFn, nil

	default:
		db, err := sqlite.NewSqliteDB(cfg.DBPath, log)
		if err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Error("failed to close sqlite", "error", err)
			}
		}
		return sqlite.NewUserRepository(db), closeFn, nil
	}
}
