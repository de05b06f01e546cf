package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is loaded once at startup and read-only afterwards. Request
// handling code never reads ambient environment state.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT       JWTConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	AuthLimit AuthLimitConfig
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET, required"`
	Issuer   string        `env:"JWT_ISSUER,   default=techmart-identity"`
	Audience string        `env:"JWT_AUDIENCE, default=techmart-clients"`
	TTL      time.Duration `env:"JWT_TTL,      default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=techmart"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AuthLimitConfig tunes the per-IP rate limiter guarding /auth endpoints.
type AuthLimitConfig struct {
	PerMinute int `env:"AUTH_RATE_PER_MINUTE, default=10"`
	Burst     int `env:"AUTH_RATE_BURST,      default=10"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
