package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton for backwards compatibility with envs package
var globalConfig *Config

// Config holds all environment backed configuration for gift-server.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	// MySQL catalog
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"3306"`
	DBUser     string `env:"DB_USER" envDefault:"root"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"gift_finder"`

	// Auth
	JWTSecret string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Completion provider (any OpenAI-compatible endpoint, remote or a local
	// llama.cpp server)
	CompletionBaseURL string        `env:"COMPLETION_BASE_URL" envDefault:"http://localhost:8001/v1"`
	CompletionAPIKey  string        `env:"COMPLETION_API_KEY"`
	CompletionModel   string        `env:"COMPLETION_MODEL" envDefault:"mistral-7b-instruct"`
	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"120s"`

	// Image search provider
	PexelsBaseURL string `env:"PEXELS_BASE_URL" envDefault:"https://api.pexels.com/v1"`
	PexelsAPIKey  string `env:"PEXELS_API_KEY"`

	// Translation provider
	TranslateBaseURL string `env:"TRANSLATE_BASE_URL" envDefault:"http://localhost:5000"`
	TranslateAPIKey  string `env:"TRANSLATE_API_KEY"`

	// Recommendation tuning
	GiftDisplayLimit    int           `env:"GIFT_DISPLAY_LIMIT" envDefault:"8"`
	DefaultAIGiftCount  int           `env:"DEFAULT_AI_GIFT_COUNT" envDefault:"3"`
	MaxAIGiftCount      int           `env:"MAX_AI_GIFT_COUNT" envDefault:"10"`
	StatusTTL           time.Duration `env:"STATUS_TTL" envDefault:"10m"`
	StatusGeneratingTTL time.Duration `env:"STATUS_GENERATING_TTL" envDefault:"1h"`

	// Housekeeping
	DuplicateCleanEnabled         bool `env:"DUPLICATE_CLEAN_ENABLED" envDefault:"true"`
	DuplicateCleanIntervalMinutes int  `env:"DUPLICATE_CLEAN_INTERVAL_MINUTES" envDefault:"15"`

	// Catalog seed
	SeedEnabled bool   `env:"SEED_ENABLED" envDefault:"true"`
	SeedFile    string `env:"SEED_FILE"`

	// Observability / Logging
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"gift-server"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"giftfinder"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.GiftDisplayLimit <= 0 {
		cfg.GiftDisplayLimit = 8
	}
	if cfg.DefaultAIGiftCount <= 0 {
		cfg.DefaultAIGiftCount = 3
	}
	if cfg.MaxAIGiftCount < cfg.DefaultAIGiftCount {
		cfg.MaxAIGiftCount = cfg.DefaultAIGiftCount
	}

	if _, err := url.ParseRequestURI(cfg.CompletionBaseURL); err != nil {
		return nil, fmt.Errorf("invalid COMPLETION_BASE_URL: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.PexelsBaseURL); err != nil {
		return nil, fmt.Errorf("invalid PEXELS_BASE_URL: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.TranslateBaseURL); err != nil {
		return nil, fmt.Errorf("invalid TRANSLATE_BASE_URL: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	// Update global singleton for backwards compatibility
	globalConfig = cfg

	return cfg, nil
}

// DatabaseDSN renders the MySQL DSN for the catalog connection.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetGlobal returns the global config instance for backwards compatibility.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
