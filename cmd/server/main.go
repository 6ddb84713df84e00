package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"userService/internal/config"
	"userService/internal/db"
	"userService/internal/httpapi"
	"userService/internal/logging"
	"userService/repository"
)

func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	logger.Info().Stringer("config", cfg).Msg("configuration loaded")
	gin.SetMode(cfg.HTTP.Mode)

	// Open DB; creates the user table if absent.
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("open db")
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Error().Err(err).Msg("close db")
		}
	}()
	g, err := db.NewGorm(d, cfg.Database.Debug)
	if err != nil {
		logger.Fatal().Err(err).Msg("init gorm")
	}

	users := repository.NewUserRepository(g)

	// Start HTTP
	srv, err := httpapi.Start(cfg.HTTP.Address, httpapi.NewRouter(users, logger), logger)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.HTTP.Address).Msg("start http")
	}
	logger.Info().Str("addr", srv.Addr()).Msg("http server listening")

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logger.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
