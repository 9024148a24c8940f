package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Store    string `env:"STORE,     default=memory"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
	Admin AdminConfig
}

// JWTConfig is the signing material for both token kinds. The secrets have
// no defaults on purpose: a missing secret must fail startup, never fall
// back to a guessable value.
type JWTConfig struct {
	AccessSecret  string        `env:"JWT_SECRET"`
	AccessTTL     time.Duration `env:"JWT_EXPIRES_IN,         default=15m"`
	RefreshSecret string        `env:"REFRESH_JWT_SECRET"`
	RefreshTTL    time.Duration `env:"REFRESH_JWT_EXPIRES_IN, default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_management"`
}

// RedisConfig enables the failed-login throttle. An empty address
// disables Redis entirely; the service runs without throttling.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// AdminConfig seeds the default admin account at startup.
type AdminConfig struct {
	Email    string `env:"DEFAULT_USER_EMAIL"`
	Password string `env:"DEFAULT_USER_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Validate enforces the fail-fast startup requirements.
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.JWT.RefreshSecret == "" {
		return errors.New("REFRESH_JWT_SECRET must be set")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("JWT_SECRET and REFRESH_JWT_SECRET must differ")
	}
	if c.Store != "memory" && c.Store != "mongo" {
		return fmt.Errorf("unknown STORE %q (expected memory or mongo)", c.Store)
	}
	return nil
}
