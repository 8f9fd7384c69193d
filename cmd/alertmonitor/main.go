package main

import (
	"context"
	"os/signal"
	"syscall"

	"pricealert/config"
	"pricealert/internal/app"
	"pricealert/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// order book levels go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to start", zap.Error(err))
	}

	log.Info("price alert monitor running", zap.String("addr", cfg.Server.Addr))
	if err := a.Run(ctx); err != nil {
		log.Fatal("monitor failed", zap.Error(err))
	}
}
