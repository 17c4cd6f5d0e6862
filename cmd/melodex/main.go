package main

import (
	"context"
	"net/http"
	"os"

	"melodex/internal/logging"
	"melodex/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		bootLogger := logging.New(logging.Config{})
		bootLogger.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	dataStore := store.New(db)

	handler, err := newHTTPHandler(cfg, dataStore, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("configure handler")
	}

	logger.Info().Str("addr", cfg.Addr).Msg("API listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
