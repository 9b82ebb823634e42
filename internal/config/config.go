package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "nutrimacro/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Storage   StorageConfig   `yaml:"storage" envconfig:"STORAGE"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// StorageConfig describes where the input blob lives
type StorageConfig struct {
	ConnectionStringEnv string `yaml:"connection_string_env" envconfig:"CONNECTION_STRING_ENV" validate:"required"`
	Container           string `yaml:"container" envconfig:"CONTAINER" validate:"required"`
	Blob                string `yaml:"blob" envconfig:"BLOB" validate:"required"`
	APIVersion          string `yaml:"api_version" envconfig:"API_VERSION"`
}

// PathsConfig contains file system locations, relative to the working directory
type PathsConfig struct {
	ResultsFile string `yaml:"results_file" envconfig:"RESULTS_FILE" validate:"required"`
	InputCSV    string `yaml:"input_csv" envconfig:"INPUT_CSV" validate:"required"`
	ChartsDir   string `yaml:"charts_dir" envconfig:"CHARTS_DIR" validate:"required"`
}

// TelemetryConfig switches OpenTelemetry exporters
type TelemetryConfig struct {
	ServiceName    string  `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=prometheus none"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"min=0,max=1"`
}

// RateLimitConfig contains rate limiting configuration for the trigger route
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"min=1"`
}

var validate = validator.New()

// Load builds the configuration from defaults, an optional YAML file and
// NUTRI_* environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	configFile, err := getConfigFilePath()
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return apperrors.NewConfigError("invalid YAML in "+filePath, err)
	}
	return nil
}

// getConfigFilePath returns the config file to load, or "" when there is none
func getConfigFilePath() (string, error) {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", apperrors.NewConfigError(ConfigFileEnv+" points to an unreadable file", err)
		}
		return explicit, nil
	}

	for _, location := range []string{"nutrimacro.yaml", "configs/nutrimacro.yaml"} {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", nil
}

// Validate checks the struct tags of the whole configuration
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid configuration", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return apperrors.NewValidationError("invalid configuration: "+strings.Join(msgs, "; "), nil)
}

// ConnectionString reads the storage connection string from the process
// environment. It is resolved per call so a missing variable surfaces on the
// request that needs it rather than at startup.
func (s StorageConfig) ConnectionString() (string, error) {
	connStr := os.Getenv(s.ConnectionStringEnv)
	if connStr == "" {
		return "", apperrors.NewConfigError(fmt.Sprintf("%s is not set.", s.ConnectionStringEnv), nil).
			WithContext("env", s.ConnectionStringEnv)
	}
	return connStr, nil
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Storage: StorageConfig{
			ConnectionStringEnv: DefaultConnectionStringEnv,
			Container:           DefaultContainer,
			Blob:                DefaultBlob,
			APIVersion:          AzuriteAPIVersion,
		},
		Paths: PathsConfig{
			ResultsFile: DefaultResultsFile,
			InputCSV:    DefaultInputCSV,
			ChartsDir:   DefaultChartsDir,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    AppName,
			Environment:    "development",
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
			RPS:     10,
			Burst:   5,
		},
	}
}
