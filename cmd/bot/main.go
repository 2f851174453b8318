package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/nepa27/homework-bot/internal/app"
	"github.com/nepa27/homework-bot/internal/config"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatal().Msgf("cant load .env file: %v", err.Error())
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Msgf("cant initialize config: %v", err.Error())
	}

	initLogger(cfg.LogLevel)

	a, err := app.NewApp(cfg)
	if err != nil {
		log.Fatal().Msgf("cant initialize app: %v", err.Error())
	}

	if err = a.Run(); err != nil {
		log.Fatal().Msgf("app run: %v", err.Error())
	}
}
