package main

import (
	"context"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func createRand(logger *slog.Logger) (*rand.Rand, error) {
	seed, ok, err := config.Seed()
	if err != nil {
		return nil, err
	}
	if ok {
		logger.Info("using fixed seed", slog.Any("seed", seed))
		return rand.New(rand.NewPCG(seed[0], seed[1])), nil
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	)), nil
}

func main() {
	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	mines.Log = logger.With(slog.String("component", "engine"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tick, err := config.TickInterval()
	if err != nil {
		logger.Error("failed to read config", "error", err)
		os.Exit(1)
	}
	ttl, err := config.SessionTTL()
	if err != nil {
		logger.Error("failed to read config", "error", err)
		os.Exit(1)
	}
	rnd, err := createRand(logger)
	if err != nil {
		logger.Error("failed to read config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(logger, mines.NewEngine(rnd), app.Options{
		Addr:         config.Port(),
		BasePath:     config.BasePath(),
		TickInterval: tick,
		SessionTTL:   ttl,

		AllowedOrigins: config.AllowedOrigins(),
	})
	if err != nil {
		logger.Error("failed to create app", "error", err)
		os.Exit(1)
	}

	if err := a.Start(ctx); err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	logger.Info("shut down")
}
