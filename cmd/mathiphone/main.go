package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kysrn-ww/mathi-phone/config"
	"github.com/kysrn-ww/mathi-phone/internal/app"
	"github.com/kysrn-ww/mathi-phone/internal/webapi"
)

func main() {
	configPath := flag.String("c", "mathi-phone.yml", "config file path")
	flag.Parse()

	// .env is optional; deployments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		zap.S().Fatalf("load config: %v", err)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		zap.S().Fatalf("init application: %v", err)
	}
	defer application.Release()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	application.StartBackgroundJobs(ctx)

	server := webapi.NewServer(application.Catalog(), application.Store())
	e := server.Echo()

	go func() {
		zap.S().Infof("listening on %s", cfg.System.Listen)
		if err := e.Start(cfg.System.Listen); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalf("server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zap.L().Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("server shutdown", zap.Error(err))
	}
}
