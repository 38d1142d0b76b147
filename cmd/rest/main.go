package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"eli5-bot/internal/bootstrap"
	"eli5-bot/internal/config"
	"eli5-bot/internal/server"
	"eli5-bot/internal/tracer"
	"eli5-bot/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Debug)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 4. Tracing
	shutdownTracer := tracer.InitTracer(cfg, container.Logger)
	defer shutdownTracer(context.Background())

	// 5. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := container.ActivityConsumer.Consume(ctx); err != nil {
		container.Logger.Error("MAIN", "Activity consumer failed to start", map[string]interface{}{"error": err})
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		container.Logger.Info("MAIN", "Shutting down", nil)
		cancel()
		_ = srv.Shutdown()
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		container.Logger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err})
	}
}
