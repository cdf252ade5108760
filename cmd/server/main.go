package main

import (
	"arpg-server/internal/engine"
	"arpg-server/internal/server"
	"arpg-server/internal/version"
	"arpg-server/pkg/logger"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	// Читаем флаг -seed. По умолчанию 0 (значит CD_SEED или случайно).
	flag.Int64Var(&seed, "seed", 0, "Initial level seed (0 for random)")
	flag.Parse()

	logger.Log.Info("Starting dungeon server...")
	logger.Log.Info(version.String())

	cfg := engine.NewConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		logger.Log.Fatalf("Bad environment: %v", err)
	}
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using seed: %d", cfg.Seed)
	}

	// 2. Инициализация ядра с конфигом
	gameService, err := engine.NewService(cfg)
	if err != nil {
		logger.Log.Fatalf("Engine init failed: %v", err)
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(gameService, cfg.Port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Warn("HTTP shutdown incomplete")
	}
	gameService.Shutdown()

	logger.Log.Info("Done.")
}
