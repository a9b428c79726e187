package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbeisheim/fablechess-backend/internal/config"
	"github.com/benbeisheim/fablechess-backend/internal/controller"
	"github.com/benbeisheim/fablechess-backend/internal/logx"
	"github.com/benbeisheim/fablechess-backend/internal/record"
	"github.com/benbeisheim/fablechess-backend/internal/service"
	"github.com/benbeisheim/fablechess-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logx.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("open save store")
	}
	defer store.Close()
	logger.Info().Str("dir", cfg.DataDir).Msg("opened save store")

	codec, err := record.NewCodec()
	if err != nil {
		logger.Fatal().Err(err).Msg("create record codec")
	}
	defer codec.Close()

	// Initialize services
	gameManager := service.NewGameManager(store, codec, logger, cfg.MatchInterval)
	defer gameManager.Close()
	gameService := service.NewGameService(gameManager)

	app := newApp(cfg, gameService, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Error().Err(err).Msg("listen")
	}
}

func newApp(cfg config.Config, gameService *service.GameService, logger zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService, logger)
	controller.RegisterRoutes(app, controller.RouteConfig{
		AllowOrigins: cfg.AllowOrigins,
		Logger:       logger,
	}, gameController, wsController)

	return app
}
