package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Simulator SimulatorConfig `yaml:"simulator"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// AuthConfig holds the token secrets. JWTSecret verifies the user-facing
// bearer tokens issued by the external auth service; InternalToken
// authenticates service-to-service calls to the metric ingestion endpoint.
type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	InternalToken string `yaml:"internal_token"`
}

// SimulatorConfig holds tunables for the metric simulator.
type SimulatorConfig struct {
	EnsureRecentHours int `yaml:"ensure_recent_hours"`
	MinWindowReadings int `yaml:"min_window_readings"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	SeedCatalog            bool   `yaml:"seed_catalog"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Simulator.EnsureRecentHours <= 0 {
		cfg.Simulator.EnsureRecentHours = 1
	}
	if cfg.Simulator.MinWindowReadings <= 0 {
		cfg.Simulator.MinWindowReadings = 10
	}

	if cfg.Auth.JWTSecret == "" {
		log.Printf("auth.jwt_secret is not set; all authenticated endpoints will reject requests")
	}

	return &cfg, nil
}
