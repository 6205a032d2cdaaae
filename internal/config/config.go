package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string `validate:"required"`

	Port     int `validate:"min=1,max=65535"`
	HTTPAddr string

	// Store
	DBDriver      string `validate:"oneof=pgx postgres memory"`
	DatabaseURL   string `validate:"required_unless=DBDriver memory"`
	DBAutoMigrate bool
	StoreTimeout  time.Duration `validate:"gt=0"`

	// Allow-list consulted by the api-key gate
	APIKeys []string `validate:"min=1,dive,required"`

	// Redis & Caching
	RedisURL string
	CacheTTL time.Duration `validate:"gt=0"`

	// RabbitMQ
	RabbitURL      string
	RabbitExchange string `validate:"required"`

	CORSAllowedOrigins []string

	// Largest accepted request body, in bytes
	BodyLimit int64 `validate:"gt=0"`

	// Rate Limiting
	RLEnabled bool
	RLLimit   int           `validate:"required_if=RLEnabled true,gte=0"`
	RLWindow  time.Duration `validate:"gte=0"`

	LogLevel  string
	LogFormat string `validate:"oneof=json console"`

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// envNames maps struct fields to the variables that feed them, for error messages.
var envNames = map[string]string{
	"AppEnv":         "APP_ENV",
	"Port":           "PORT",
	"DBDriver":       "DB_DRIVER",
	"DatabaseURL":    "DATABASE_URL",
	"StoreTimeout":   "STORE_TIMEOUT",
	"APIKeys":        "API_KEYS",
	"CacheTTL":       "CACHE_TTL",
	"RabbitExchange": "RABBIT_EXCHANGE",
	"BodyLimit":      "BODY_LIMIT",
	"RLLimit":        "RL_LIMIT",
	"RLWindow":       "RL_WINDOW",
	"LogFormat":      "LOG_FORMAT",
}

// DefaultBodyLimit is 100 KiB.
const DefaultBodyLimit int64 = 100 << 10

var validate = validator.New()

func Load() (*Config, error) {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.Port = getIntEnv("PORT", 3000)
	cfg.HTTPAddr = fmt.Sprintf(":%d", cfg.Port)

	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", "pgx"))
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	cfg.DBAutoMigrate = getBoolEnv("DB_AUTO_MIGRATE", true)
	cfg.StoreTimeout = getDuration("STORE_TIMEOUT", 5*time.Second)

	cfg.APIKeys = getListEnv("API_KEYS", []string{"key1", "key2", "key3"})

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.CacheTTL = getDuration("CACHE_TTL", 5*time.Minute)

	cfg.RabbitURL = getEnv("RABBIT_URL", "")
	cfg.RabbitExchange = getEnv("RABBIT_EXCHANGE", "user.accounts")

	cfg.CORSAllowedOrigins = getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"})
	cfg.BodyLimit = getInt64Env("BODY_LIMIT", DefaultBodyLimit)

	// Rate Limiting Defaults: 100 reqs / 1 min
	cfg.RLEnabled = getBoolEnv("RL_ENABLED", true)
	cfg.RLLimit = getIntEnv("RL_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_WINDOW", 1*time.Minute)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports the first violation by env var name.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name := envNames[fe.StructField()]
	if name == "" {
		name = fe.StructField()
	}
	switch fe.Tag() {
	case "required", "required_unless", "required_if":
		return fmt.Errorf("missing %s", name)
	case "min":
		if fe.StructField() == "APIKeys" {
			return fmt.Errorf("missing %s", name)
		}
	}
	return fmt.Errorf("invalid %s: %v", name, fe.Value())
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getInt64Env(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return i
}

func getBoolEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getListEnv splits a comma-separated value, dropping blank items.
func getListEnv(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
