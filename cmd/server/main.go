// Package main is the entry point for the Backroom API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"backroom/internal/config"
	"backroom/internal/domain/ownership"
	"backroom/internal/domain/store"
	"backroom/internal/domain/warehouse"
	"backroom/internal/infrastructure/auth"
	"backroom/internal/infrastructure/blob"
	v1 "backroom/internal/infrastructure/http/v1"
	"backroom/internal/infrastructure/storage/postgres"
	"backroom/internal/infrastructure/storage/postgres/ownership_repo"
	"backroom/internal/infrastructure/storage/postgres/resource_repo"
	"backroom/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting backroom server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.DSN)
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Blob store ---
	blobs, err := blob.New(blob.Config{
		Endpoint:      cfg.Blob.Endpoint,
		AccessKey:     cfg.Blob.AccessKey,
		SecretKey:     cfg.Blob.SecretKey,
		UseSSL:        cfg.Blob.UseSSL,
		PublicBaseURL: cfg.Blob.PublicBaseURL,
	})
	if err != nil {
		log.Fatalw("failed to connect to blob store", "error", err)
	}
	for _, bucket := range []string{cfg.Blob.StoreBucket, cfg.Blob.WarehouseBucket} {
		if err := blobs.EnsureBucket(ctx, bucket); err != nil {
			log.Fatalw("failed to ensure bucket", "bucket", bucket, "error", err)
		}
	}
	log.Info("blob store ready")

	// --- Services ---
	storeOwnership := ownership.NewService(
		ownership_repo.NewUserStoresRepo(txManager), "store ownership")
	warehouseOwnership := ownership.NewService(
		ownership_repo.NewUserWarehousesRepo(txManager), "warehouse ownership")

	storeService := store.NewService(store.ServiceConfig{
		Repo:      resource_repo.NewStoreRepo(txManager),
		Ownership: storeOwnership,
		Blobs:     blobs,
		TxManager: txManager,
		Bucket:    cfg.Blob.StoreBucket,
	})

	warehouseService := warehouse.NewService(warehouse.ServiceConfig{
		Repo:      resource_repo.NewWarehouseRepo(txManager),
		Ownership: warehouseOwnership,
		Blobs:     blobs,
		TxManager: txManager,
		Bucket:    cfg.Blob.WarehouseBucket,
	})

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:           log,
		JWTValidator:     auth.NewValidator(auth.Config{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.Issuer}),
		StoreService:     storeService,
		WarehouseService: warehouseService,
		DB:               pool,
		Development:      cfg.Log.Development,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
