package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	ierrors "github.com/nepa27/homework-bot/internal/errors"
)

type Config struct {
	Practicum Practicum
	Telegram  Telegram
	Postgres  Postgres
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
}

type Practicum struct {
	Token     string        `env:"PRACTICUM_TOKEN"`
	Endpoint  string        `env:"PRACTICUM_ENDPOINT" env-default:"https://practicum.yandex.ru/api/user_api/homework_statuses/"`
	PollDelay time.Duration `env:"POLL_DELAY" env-default:"10m"`
}

type Telegram struct {
	BotToken string `env:"TELEGRAM_TOKEN"`
	ChatID   int64  `env:"TELEGRAM_CHAT_ID"`
}

type Postgres struct {
	// DSN включает журнал уведомлений, пустое значение выключает его
	DSN string `env:"PG_DSN"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	if err := cfg.validateCredentials(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validateCredentials() error {
	missing := make([]string, 0, 3)
	if c.Practicum.Token == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if c.Telegram.BotToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if c.Telegram.ChatID == 0 {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}

	if len(missing) != 0 {
		return fmt.Errorf("%w: %s", ierrors.ErrCredentialsMissing, strings.Join(missing, ", "))
	}

	return nil
}
