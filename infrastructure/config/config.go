package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"graphlens/domain/core/valueobjects"

	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendNeo4j  = "neo4j"
	BackendMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress         string   `yaml:"server_address"`
	Environment           string   `yaml:"environment"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
	CORSAllowedOrigins    []string `yaml:"cors_allowed_origins"`

	// Graph store configuration
	StoreBackend  string `yaml:"store_backend"`
	Neo4jURL      string `yaml:"neo4j_url"`
	Neo4jUser     string `yaml:"neo4j_user"`
	Neo4jPassword string `yaml:"neo4j_pass"`
	Neo4jDatabase string `yaml:"neo4j_database"`

	// Relational store, probed for readiness only
	PostgresURL string `yaml:"pg_url"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// Query defaults applied when a parameter is missing or malformed
	DefaultHops              int `yaml:"default_hops"`
	DefaultLimit             int `yaml:"default_limit"`
	DefaultMaxOtherCompanies int `yaml:"default_max_other_companies"`

	// Feature flags
	EnableMetrics        bool   `yaml:"enable_metrics"`
	EnableTracing        bool   `yaml:"enable_tracing"`
	TracingEndpoint      string `yaml:"otel_exporter_otlp_endpoint"`
	EnableCircuitBreaker bool   `yaml:"enable_circuit_breaker"`

	// Per-client request budget; zero disables rate limiting
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

// LoadConfig loads configuration from an optional YAML file named by CONFIG_FILE,
// then from environment variables
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadEnvironmentVariables()

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func defaultConfig() *Config {
	return &Config{
		ServerAddress:            ":8000",
		Environment:              "development",
		RequestTimeoutSeconds:    30,
		CORSAllowedOrigins:       []string{"http://localhost:3000"},
		StoreBackend:             BackendNeo4j,
		Neo4jURL:                 "bolt://localhost:7687",
		Neo4jUser:                "neo4j",
		LogLevel:                 "info",
		DefaultHops:              valueobjects.DefaultHops,
		DefaultLimit:             valueobjects.DefaultResultLimit,
		DefaultMaxOtherCompanies: valueobjects.DefaultMandateCap,
		EnableMetrics:            true,
		TracingEndpoint:          "localhost:4317",
		EnableCircuitBreaker:     true,
		RateLimitBurst:           20,
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnvironmentVariables() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.RequestTimeoutSeconds = getEnvInt("REQUEST_TIMEOUT_SECONDS", c.RequestTimeoutSeconds)
	c.CORSAllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)

	c.StoreBackend = strings.ToLower(getEnv("STORE_BACKEND", c.StoreBackend))
	c.Neo4jURL = getEnv("NEO4J_URL", c.Neo4jURL)
	c.Neo4jUser = getEnv("NEO4J_USER", c.Neo4jUser)
	c.Neo4jPassword = getEnv("NEO4J_PASS", c.Neo4jPassword)
	c.Neo4jDatabase = getEnv("NEO4J_DATABASE", c.Neo4jDatabase)
	c.PostgresURL = getEnv("PG_URL", c.PostgresURL)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)

	c.DefaultHops = getEnvInt("DEFAULT_HOPS", c.DefaultHops)
	c.DefaultLimit = getEnvInt("DEFAULT_LIMIT", c.DefaultLimit)
	c.DefaultMaxOtherCompanies = getEnvInt("DEFAULT_MAX_OTHER_COMPANIES", c.DefaultMaxOtherCompanies)

	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.TracingEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.TracingEndpoint)
	c.EnableCircuitBreaker = getEnvBool("ENABLE_CIRCUIT_BREAKER", c.EnableCircuitBreaker)
	c.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", c.RateLimitRPS)
	c.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", c.RateLimitBurst)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendNeo4j:
		if c.Neo4jURL == "" {
			return fmt.Errorf("NEO4J_URL is required for the neo4j backend")
		}
		if c.Neo4jUser == "" {
			return fmt.Errorf("NEO4J_USER is required for the neo4j backend")
		}
		if c.IsProduction() && c.Neo4jPassword == "" {
			return fmt.Errorf("NEO4J_PASS is required in production")
		}
	case BackendMemory:
		if c.IsProduction() {
			return fmt.Errorf("the memory backend is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.DefaultHops < valueobjects.MinHops || c.DefaultHops > valueobjects.MaxHops {
		return fmt.Errorf("DEFAULT_HOPS must be between 1 and 3")
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("DEFAULT_LIMIT must be positive")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	if c.DefaultMaxOtherCompanies < 0 {
		return fmt.Errorf("DEFAULT_MAX_OTHER_COMPANIES must not be negative")
	}

	return nil
}

// RequestTimeout returns the per-request deadline
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated environment variable
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
