package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"github.com/nulln0ne/amm-engine/internal/config"
	"github.com/nulln0ne/amm-engine/internal/handler"
	"github.com/nulln0ne/amm-engine/internal/logging"
	"github.com/nulln0ne/amm-engine/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	app := fiber.New()
	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poolService := service.NewPoolService(logging.Named(logger, "service"))
	poolHandler := handler.NewPoolHandler(logging.Named(logger, "handler"), poolService)
	swapHandler := handler.NewSwapHandler(logging.Named(logger, "handler"), poolService)

	app.Post("/pools", poolHandler.CreatePool())
	app.Get("/pools", poolHandler.PoolInfo())
	app.Post("/liquidity", poolHandler.AddLiquidity())
	app.Post("/liquidity/remove", poolHandler.RemoveLiquidity())
	app.Post("/swap", swapHandler.Swap())
	app.Post("/swap/to", swapHandler.SwapTo())
	app.Get("/quote/out", swapHandler.QuoteOut())
	app.Get("/quote/in", swapHandler.QuoteIn())

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = app.Shutdown()
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	_ = app.Shutdown()

	<-shutdownCtx.Done()
	return nil
}
