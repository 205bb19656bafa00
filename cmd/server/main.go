package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skladets/internal/config"
	"skladets/internal/database"
	"skladets/internal/inventory"
	"skladets/internal/logger"
	"skladets/internal/store"
	"skladets/internal/web"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	for _, w := range cfg.Warnings {
		zlog.Warn(w)
	}

	repo, err := openRepository(cfg, zlog)
	if err != nil {
		zlog.Fatal("хранилище недоступно", zap.Error(err))
	}

	svc := inventory.NewService(repo, zlog.Named("inventory"))

	if cfg.SeedDemoData {
		if err := database.Seed(context.Background(), svc); err != nil {
			zlog.Fatal("демо-данные не загружены", zap.Error(err))
		}
	}

	srv := web.NewServer(cfg, svc, zlog.Named("http"))

	go func() {
		if err := srv.Start(cfg.HTTPPort); err != nil {
			zlog.Fatal("сервер остановлен с ошибкой", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("остановка сервера")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("сервер не остановлен корректно", zap.Error(err))
	}
}

func openRepository(cfg *config.Config, zlog *zap.Logger) (store.Repository, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		zlog.Info("данные хранятся в памяти и пропадут при перезапуске")
		return store.NewMemoryStore(), nil
	}

	db, err := database.Open(cfg, zlog)
	if err != nil {
		return nil, err
	}
	zlog.Info("база данных подключена", zap.String("driver", cfg.DatabaseDriver))
	return store.NewGormStore(db), nil
}
