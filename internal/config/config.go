package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Postgres Postgres
	Redis    Redis
	Razorpay Razorpay
	Catalog  Catalog
	Bot      Bot
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"dealdrop"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

// Bot configures the hot deal alert bot. Alerts are disabled when the token
// is empty.
type Bot struct {
	Token  string `env:"BOT_TOKEN"`
	ChatID int64  `env:"BOT_CHAT_ID"`
}

func (b Bot) Enabled() bool {
	return b.Token != ""
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
