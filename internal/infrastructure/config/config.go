package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIURL is the base URL of the remote TaskFlow API.
	APIURL      string        `env:"TASKFLOW_API_URL,     default=http://localhost:5000"`
	HTTPTimeout time.Duration `env:"TASKFLOW_HTTP_TIMEOUT, default=15s"`
	LogLevel    string        `env:"LOG_LEVEL,  default=info"`
	LogPretty   bool          `env:"LOG_PRETTY, default=false"`

	Credentials CredentialsConfig
	MockAPI     MockAPIConfig
}

// CredentialsConfig selects where the bearer token is persisted.
type CredentialsConfig struct {
	// Backend is one of "file", "redis", or "memory".
	Backend string `env:"TASKFLOW_CREDENTIALS_BACKEND, default=file"`
	// FilePath overrides the token file location for the file backend.
	// Empty means <user config dir>/taskflow/accessToken.
	FilePath string `env:"TASKFLOW_CREDENTIALS_FILE"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MockAPIConfig configures the local development API server.
type MockAPIConfig struct {
	Port      string        `env:"MOCKAPI_PORT,       default=5000"`
	JWTSecret string        `env:"MOCKAPI_JWT_SECRET, default=taskflow-dev-secret"`
	TokenTTL  time.Duration `env:"MOCKAPI_TOKEN_TTL,  default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
