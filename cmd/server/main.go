package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"almacen/internal/catalog"
	"almacen/internal/config"
	"almacen/internal/directory"
	directoryrepo "almacen/internal/directory/repository"
	"almacen/internal/infrastructure/logger"
	"almacen/internal/infrastructure/mysql"
	"almacen/internal/operation"
	"almacen/internal/recipe"
	"almacen/internal/report"
	"almacen/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	branch, err := directoryrepo.NewMySQLBranchesRepository(db).Ensure(ctx, cfg.Branch.Name)
	cancel()
	if err != nil {
		zapLogger.Fatal("ensuring branch", zap.Error(err))
	}
	zapLogger.Info("operating branch ready", zap.String("branch", branch.Name), zap.Int("branchId", branch.ID))

	catalogCtrl := catalog.NewModule(db, zapLogger)
	recipeCtrl := recipe.NewModule(db, zapLogger)
	operationCtrl := operation.NewModule(db, branch.ID, zapLogger)
	reportCtrl := report.NewModule(db, branch.ID, zapLogger)
	directoryCtrl := directory.NewModule(db, zapLogger)

	router := server.NewRouter(catalogCtrl, recipeCtrl, operationCtrl, reportCtrl, directoryCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
