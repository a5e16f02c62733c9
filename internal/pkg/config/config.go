package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// FrontendOrigin is the only origin allowed for CORS and WebSocket
	// upgrades from a browser.
	FrontendOrigin string `env:"FRONTEND_ORIGIN, default=http://localhost:5173"`

	SendBird SendBirdConfig
	Redis    RedisConfig
}

type SendBirdConfig struct {
	AppID    string `env:"SENDBIRD_APP_ID"`
	APIToken string `env:"SENDBIRD_API_TOKEN"`
	// BaseURL overrides the per-application endpoint; used in tests and
	// self-hosted deployments.
	BaseURL string `env:"SENDBIRD_BASE_URL"`
}

type RedisConfig struct {
	// Addr is optional: empty disables the cross-instance relay.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using
// go-envconfig. Missing platform credentials are a startup failure: the
// process must not come up half-configured.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.SendBird.AppID == "" || cfg.SendBird.APIToken == "" {
		return nil, errors.New("config: SENDBIRD_APP_ID and SENDBIRD_API_TOKEN are required")
	}
	return &cfg, nil
}
