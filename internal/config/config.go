package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	DBHost            string        `env:"DB_HOST,required"`
	DBPort            int           `env:"DB_PORT,default=5432"`
	DBUser            string        `env:"DB_USER,required"`
	DBPassword        string        `env:"DB_PASSWORD,required"`
	DBName            string        `env:"DB_NAME,required"`
	DBSSLMode         string        `env:"DB_SSLMODE,default=disable"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	SteamBaseURL string        `env:"STEAM_BASE_URL,default=https://steamcommunity.com"`
	SteamTimeout time.Duration `env:"STEAM_TIMEOUT,default=10s"`
	SteamAppID   int           `env:"STEAM_APP_ID,default=730"`

	// CronSecret guards the sweep trigger endpoint. Left empty, the
	// endpoint refuses to run.
	CronSecret string        `env:"CRON_SECRET"`
	HTTPAddr   string        `env:"HTTP_ADDR,default=:8080"`
	SweepDelay time.Duration `env:"SWEEP_DELAY,default=1s"`

	TelegramPollTimeout int    `env:"TELEGRAM_POLL_TIMEOUT,default=60"`
	LogLevel            string `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
