// Package config provides configuration for the API server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string        `yaml:"port"`
	ServerReadTimeout  time.Duration `yaml:"read_timeout"`
	ServerWriteTimeout time.Duration `yaml:"write_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`

	// Chat settings
	TypingDelay     time.Duration `yaml:"typing_delay"`
	DefaultLanguage string        `yaml:"default_language"`

	// NATS settings. An empty URL disables the journal.
	NATSURL      string `yaml:"nats_url"`
	NATSCAFile   string `yaml:"nats_ca_file"`
	NATSCertFile string `yaml:"nats_cert_file"`
	NATSKeyFile  string `yaml:"nats_key_file"`
	NATSToken    string `yaml:"nats_token"`

	// JWT settings
	AuthEnabled bool   `yaml:"auth_enabled"`
	JWTSecret   string `yaml:"jwt_secret"`

	// Rate limiting
	RateLimitRequests int           `yaml:"rate_limit_requests"`
	RateLimitWindow   time.Duration `yaml:"rate_limit_window"`

	// CORS
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Logging. Environment "development" switches to the console logger.
	LogLevel    string `yaml:"log_level"`
	Environment string `yaml:"environment"`

	// Tracing
	TracingEndpoint string `yaml:"tracing_endpoint"`
	TracingEnabled  bool   `yaml:"tracing_enabled"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ServerPort:         "8080",
		ServerReadTimeout:  30 * time.Second,
		ServerWriteTimeout: 120 * time.Second,
		ShutdownTimeout:    30 * time.Second,

		TypingDelay:     2 * time.Second,
		DefaultLanguage: "en",

		JWTSecret: "development-secret-change-in-production",

		RateLimitRequests: 60,
		RateLimitWindow:   time.Minute,

		AllowedOrigins: []string{"https://*", "http://*"},

		LogLevel:    "info",
		Environment: "production",

		TracingEndpoint: "localhost:4318",
	}
}

// Load builds the configuration in layers: defaults, then the YAML file
// (explicit path, HEALTHAI_CONFIG, ./config.yaml), then a .env file, then
// environment variables.
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	if path := discoverConfigFile(configPath); path != "" {
		if err := loadYAMLFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// Existing environment variables take precedence over .env values.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.ServerPort == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.TypingDelay < 0 {
		errs = append(errs, errors.New("typing_delay must not be negative"))
	}
	if c.RateLimitRequests <= 0 {
		errs = append(errs, errors.New("rate_limit_requests must be positive"))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("rate_limit_window must be positive"))
	}
	if c.AuthEnabled && c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required when auth is enabled"))
	}
	return errors.Join(errs...)
}

func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if envPath := os.Getenv("HEALTHAI_CONFIG"); envPath != "" {
		return envPath
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(c *Config) {
	// Server
	c.ServerPort = getEnv("PORT", c.ServerPort)
	c.ServerReadTimeout = getDurationEnv("SERVER_READ_TIMEOUT", c.ServerReadTimeout)
	c.ServerWriteTimeout = getDurationEnv("SERVER_WRITE_TIMEOUT", c.ServerWriteTimeout)
	c.ShutdownTimeout = getDurationEnv("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)

	// Chat
	c.TypingDelay = getDurationEnv("TYPING_DELAY", c.TypingDelay)
	c.DefaultLanguage = getEnv("DEFAULT_LANGUAGE", c.DefaultLanguage)

	// NATS
	c.NATSURL = getEnv("NATS_URL", c.NATSURL)
	c.NATSCAFile = getEnv("NATS_CA_FILE", c.NATSCAFile)
	c.NATSCertFile = getEnv("NATS_CERT_FILE", c.NATSCertFile)
	c.NATSKeyFile = getEnv("NATS_KEY_FILE", c.NATSKeyFile)
	c.NATSToken = getEnv("NATS_TOKEN", c.NATSToken)

	// JWT
	c.AuthEnabled = getBoolEnv("AUTH_ENABLED", c.AuthEnabled)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)

	// Rate limiting
	c.RateLimitRequests = getIntEnv("RATE_LIMIT_REQUESTS", c.RateLimitRequests)
	c.RateLimitWindow = getDurationEnv("RATE_LIMIT_WINDOW", c.RateLimitWindow)

	// CORS
	c.AllowedOrigins = getListEnv("ALLOWED_ORIGINS", c.AllowedOrigins)

	// Logging
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Environment = getEnv("ENV", c.Environment)

	// Tracing
	c.TracingEndpoint = getEnv("TRACING_ENDPOINT", c.TracingEndpoint)
	c.TracingEnabled = getBoolEnv("TRACING_ENABLED", c.TracingEnabled)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
