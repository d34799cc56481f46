package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Storage backend names accepted by StorageConfig.Backend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	Storage StorageConfig `env:",prefix=STORAGE_"`
	Redis   RedisConfig   `env:",prefix=REDIS_"`
	Session SessionConfig `env:",prefix=SESSION_"`
	Env     string        `env:"ENV,default=development"`
}

type StorageConfig struct {
	Backend   string `env:"BACKEND,default=sqlite"`
	Path      string `env:"PATH,default=capsulelog.db"`
	KeyPrefix string `env:"KEY_PREFIX,default=capsulelog:"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

type SessionConfig struct {
	Secret             string   `env:"SECRET,required"`
	TokenExpiry        Duration `env:"TOKEN_EXPIRY,default=30d"`
	RequireCredentials bool     `env:"REQUIRE_CREDENTIALS,default=false"`
}

// Address returns the Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	switch config.Storage.Backend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}

	// Validate session secret length
	if len(config.Session.Secret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}

	return &config, nil
}

// LoadWithDefaults loads configuration with default context
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}
