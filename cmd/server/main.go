package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"smartfinance/internal/auth"
	authctrl "smartfinance/internal/auth/controller"
	"smartfinance/internal/backup"
	"smartfinance/internal/config"
	"smartfinance/internal/infrastructure/database"
	"smartfinance/internal/infrastructure/logger"
	"smartfinance/internal/infrastructure/redis"
	"smartfinance/internal/ledger"
	"smartfinance/internal/product"
	"smartfinance/internal/receipt"
	"smartfinance/internal/report"
	"smartfinance/internal/sale"
	"smartfinance/internal/server"
	"smartfinance/internal/serviceorder"
	"smartfinance/internal/stockentry"
)

func main() {
	cfg, err := config.Load("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			zapLogger.Fatal("migrating schema", zap.Error(err))
		}
	}

	runner := database.NewTxRunner(db, cfg.Database, zapLogger)

	revoked := revocationStore(cfg.Redis, zapLogger)
	sessions, err := auth.NewManagerFromConfig(cfg.Auth, revoked, zapLogger)
	if err != nil {
		zapLogger.Fatal("configuring auth", zap.Error(err))
	}

	ledgerMod := ledger.NewModule(db, runner, zapLogger)
	stockMod := stockentry.NewModule(db, runner, zapLogger)
	saleMod := sale.NewModule(db, runner, ledgerMod.Synchronizer, zapLogger)
	orderMod := serviceorder.NewModule(db, runner, ledgerMod.Synchronizer, zapLogger)

	backupCtrl, err := backup.NewModule(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("configuring backup", zap.Error(err))
	}

	router := server.NewRouter(cfg.Server, server.Controllers{
		Auth:         authctrl.NewAuthController(sessions, cfg.Auth.SecureCookie, zapLogger),
		Products:     product.NewModule(db, runner, zapLogger),
		StockEntries: stockMod.Controller,
		Sales:        saleMod.Controller,
		Services:     orderMod.Controller,
		Cash:         ledgerMod.Controller,
		Reports:      report.NewModule(db, stockMod.Repository, ledgerMod.Repository, zapLogger),
		Receipts:     receipt.NewModule(saleMod.Service, orderMod.Service, cfg, zapLogger),
		Backup:       backupCtrl,
	}, sessions, db, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

// revocationStore uses redis when configured and reachable, otherwise an
// in-process denylist that does not survive restarts.
func revocationStore(cfg config.RedisConfig, logger *zap.Logger) auth.RevocationStore {
	if cfg.Addr == "" {
		logger.Info("redis not configured, using in-memory token revocation")
		return auth.NewMemoryRevocationStore()
	}

	client, err := redis.NewClient(context.Background(), cfg)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory token revocation", zap.String("addr", cfg.Addr), zap.Error(err))
		return auth.NewMemoryRevocationStore()
	}

	logger.Info("token revocation backed by redis", zap.String("addr", cfg.Addr))
	return auth.NewRedisRevocationStore(client)
}
