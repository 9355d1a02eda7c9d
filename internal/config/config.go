package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. The env tag names the
// variable each field is read from and is used in validation errors.
type Config struct {
	Port        int    `env:"PORT" validate:"min=0,max=65535"`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFormat   string `env:"LOG_FORMAT" validate:"oneof=text json"`
	LogDir      string `env:"LOG_DIR" validate:"required"`
	LogSource   bool   `env:"LOG_ADD_SOURCE"` // include file:line in log records
	Environment string `env:"ENVIRONMENT"`
	ServiceName string `env:"SERVICE_NAME"`
	Version     string `env:"VERSION"`
	APIKey      string `env:"API_KEY" validate:"required"`

	// Client IPs are only taken from X-Forwarded-For when the peer is listed here
	TrustedProxies []string `env:"TRUSTED_PROXIES" validate:"dive,ip"`

	StoreDriver       string        `env:"STORE_DRIVER" validate:"oneof=postgres sqlite"`
	DBUser            string        `env:"DB_USER" validate:"required_if=StoreDriver postgres"`
	DBPassword        string        `env:"DB_PASSWORD"`
	DBHost            string        `env:"DB_HOST" validate:"required_if=StoreDriver postgres"`
	DBPort            string        `env:"DB_PORT" validate:"omitempty,numeric"`
	DBName            string        `env:"DB_NAME" validate:"required_if=StoreDriver postgres"`
	DBMaxConns        int           `env:"DB_MAX_CONNS" validate:"min=1"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME"`
	SQLitePath        string        `env:"SQLITE_PATH" validate:"required_if=StoreDriver sqlite"`

	TickInterval       time.Duration `env:"TICK_INTERVAL" validate:"gt=0s,ltefield=MarketInterval"`
	MarketInterval     time.Duration `env:"MARKET_INTERVAL" validate:"gt=0s"`
	MaxOfflineHours    float64       `env:"MAX_OFFLINE_HOURS" validate:"gt=0"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" validate:"gtfield=TickInterval"`
	SnapshotCacheSize  int           `env:"SNAPSHOT_CACHE_SIZE" validate:"min=1"`
	SnapshotCacheTTL   time.Duration `env:"SNAPSHOT_CACHE_TTL" validate:"gt=0s"`

	GeminiAPIKey  string        `env:"GEMINI_API_KEY"`
	GeminiModel   string        `env:"GEMINI_MODEL" validate:"required_with=GeminiAPIKey"`
	GeminiBaseURL string        `env:"GEMINI_BASE_URL" validate:"omitempty,url"`
	AITimeout     time.Duration `env:"AI_TIMEOUT" validate:"gt=0s"`
	TipsRateLimit float64       `env:"TIPS_RATE_LIMIT" validate:"gt=0"` // requests per second per client
	TipsRateBurst int           `env:"TIPS_RATE_BURST" validate:"min=1"`

	DiscordWebhookID    string `env:"DISCORD_WEBHOOK_ID" validate:"required_with=DiscordWebhookToken"`
	DiscordWebhookToken string `env:"DISCORD_WEBHOOK_TOKEN" validate:"required_with=DiscordWebhookID"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:      getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:         getEnv("LOG_DIR", DefaultLogDir),
		LogSource:      getEnvAsBool("LOG_ADD_SOURCE", false),
		Environment:    getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName:    getEnv("SERVICE_NAME", DefaultServiceName),
		Version:        getEnv("VERSION", DefaultVersion),
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", DefaultStoreDriver)),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		SQLitePath:        getEnv("SQLITE_PATH", DefaultSQLitePath),

		TickInterval:       getEnvAsDuration("TICK_INTERVAL", time.Second),
		MarketInterval:     getEnvAsDuration("MARKET_INTERVAL", 30*time.Second),
		MaxOfflineHours:    getEnvAsFloat("MAX_OFFLINE_HOURS", DefaultMaxOfflineHours),
		SessionIdleTimeout: getEnvAsDuration("SESSION_IDLE_TIMEOUT", 15*time.Minute),
		SnapshotCacheSize:  getEnvAsInt("SNAPSHOT_CACHE_SIZE", DefaultSnapshotCacheSize),
		SnapshotCacheTTL:   getEnvAsDuration("SNAPSHOT_CACHE_TTL", 10*time.Minute),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", DefaultGeminiModel),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", DefaultGeminiBaseURL),
		AITimeout:     getEnvAsDuration("AI_TIMEOUT", 20*time.Second),
		TipsRateLimit: getEnvAsFloat("TIPS_RATE_LIMIT", DefaultTipsRateLimit),
		TipsRateBurst: getEnvAsInt("TIPS_RATE_BURST", DefaultTipsRateBurst),

		DiscordWebhookID:    getEnv("DISCORD_WEBHOOK_ID", ""),
		DiscordWebhookToken: getEnv("DISCORD_WEBHOOK_TOKEN", ""),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// DiscordWebhookEnabled reports whether notifications should be mirrored to Discord
func (c *Config) DiscordWebhookEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping blank entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, DefaultTrustedProxiesList), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
