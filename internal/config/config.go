package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Data source drivers.
const (
	DriverSupabase = "supabase"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type AppConfig struct {
	Port string `yaml:"port" validate:"required,numeric"`

	Log LogConfig `yaml:"log"`

	Source SourceConfig `yaml:"source"`

	// Server-side limits; the core pipeline imposes none of its own.
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`

	// ProbeInterval controls how often the default collection is counted (0 = never).
	ProbeInterval time.Duration `yaml:"probe_interval" validate:"gte=0"`
}

// LogConfig selects the log level and an optional log file.
type LogConfig struct {
	Level string `yaml:"level" validate:"required,oneof=trace debug info warn warning error fatal panic"`
	File  string `yaml:"file"`
}

// SourceConfig selects and configures the inspection data backend.
type SourceConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=supabase postgres sqlite memory"`

	SupabaseURL string `yaml:"supabase_url" validate:"required_if=Driver supabase"`
	SupabaseKey string `yaml:"supabase_key" validate:"required_if=Driver supabase"`

	PostgresDSN string `yaml:"postgres_dsn" validate:"required_if=Driver postgres"`
	SQLitePath  string `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`

	// FixturesFile seeds the memory driver; empty starts it empty.
	FixturesFile string `yaml:"fixtures_file"`

	// Outbound HTTP settings for the supabase driver.
	HTTPTimeout       time.Duration `yaml:"http_timeout" validate:"gt=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gt=0"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults. When
// CONFIG_FILE names a YAML file, its values override the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "5001")
	cfg.Log.Level = getenvDefault("LOG_LEVEL", "info")
	cfg.Log.File = os.Getenv("LOG_FILE")

	cfg.Source.Driver = getenvDefault("DATA_SOURCE_DRIVER", DriverSupabase)
	cfg.Source.SupabaseURL = os.Getenv("SUPABASE_URL")
	cfg.Source.SupabaseKey = os.Getenv("SUPABASE_KEY")
	cfg.Source.PostgresDSN = os.Getenv("POSTGRES_DSN")
	cfg.Source.SQLitePath = os.Getenv("SQLITE_PATH")
	cfg.Source.FixturesFile = os.Getenv("FIXTURES_FILE")
	cfg.Source.RequestsPerSecond = getenvFloat("SOURCE_RPS", 10)

	var err error
	if cfg.Source.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.ReadTimeout, err = getenvDuration("READ_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getenvDuration("WRITE_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.ProbeInterval, err = getenvDuration("PROBE_INTERVAL", "0s"); err != nil {
		return nil, err
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// overlayFile decodes a YAML file on top of the current values. Keys absent
// from the file keep their environment value.
func (c *AppConfig) overlayFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
