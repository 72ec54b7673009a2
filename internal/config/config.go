package config

import (
	"os"
	"strconv"
	"time"

	"surveystat/adapters/stats/interpret"
	"surveystat/app"
	"surveystat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	Ingest   IngestConfig
	LogLevel string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	MaxUploadMB     int
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// AnalysisConfig seeds the engine defaults and the sweep worker count.
type AnalysisConfig struct {
	MinCategoryFrequency  int
	SignificanceThreshold float64
	DefaultLanguage       string
	OtherLabel            string
	SweepConcurrency      int
}

// IngestConfig holds spreadsheet parsing settings
type IngestConfig struct {
	// NumericThreshold is the share of non-missing cells that must parse as
	// numbers for a column to be read as numeric.
	NumericThreshold float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Analysis: *loadAnalysisConfig(),
		Ingest:   *loadIngestConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		MaxUploadMB:     getEnvIntOrDefault("MAX_UPLOAD_MB", 32),
		ReadTimeout:     getEnvDurationOrDefault("READ_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		MinCategoryFrequency:  getEnvIntOrDefault("MIN_CATEGORY_FREQUENCY", 3),
		SignificanceThreshold: getEnvFloatOrDefault("SIGNIFICANCE_THRESHOLD", interpret.DefaultThreshold),
		DefaultLanguage:       getEnvOrDefault("DEFAULT_LANGUAGE", interpret.DefaultLanguage),
		OtherLabel:            getEnvOrDefault("OTHER_LABEL", "Other"),
		SweepConcurrency:      getEnvIntOrDefault("SWEEP_CONCURRENCY", 4),
	}
}

func loadIngestConfig() *IngestConfig {
	return &IngestConfig{
		NumericThreshold: getEnvFloatOrDefault("NUMERIC_THRESHOLD", 0.8),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if config.Server.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	a := config.Analysis
	if a.MinCategoryFrequency < 1 {
		return errors.ConfigInvalid("MIN_CATEGORY_FREQUENCY must be at least 1")
	}
	if a.SignificanceThreshold <= 0 || a.SignificanceThreshold >= 1 {
		return errors.ConfigInvalid("SIGNIFICANCE_THRESHOLD must be within (0, 1)")
	}
	if a.SweepConcurrency < 1 {
		return errors.ConfigInvalid("SWEEP_CONCURRENCY must be at least 1")
	}
	if a.OtherLabel == "" {
		return errors.ConfigInvalid("OTHER_LABEL must not be empty")
	}
	if t := config.Ingest.NumericThreshold; t <= 0 || t > 1 {
		return errors.ConfigInvalid("NUMERIC_THRESHOLD must be within (0, 1]")
	}
	return nil
}

// DefaultOptions turns the analysis settings into engine defaults.
func (c *Config) DefaultOptions() app.Options {
	return app.Options{
		MinCategoryFrequency:  c.Analysis.MinCategoryFrequency,
		SignificanceThreshold: c.Analysis.SignificanceThreshold,
		Language:              interpret.ResolveLanguage(c.Analysis.DefaultLanguage),
		OtherLabel:            c.Analysis.OtherLabel,
	}.Merge(app.DefaultOptions())
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
