package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "ledatools/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Report  ReportConfig  `yaml:"report"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"LOG_FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"LOG_OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"LOG_FILE" validate:"required_unless=Output console"`
}

// ReportConfig contains field report output configuration
type ReportConfig struct {
	// FileName is the well-known report file name. Its leading marker is
	// also what excludes previously generated reports from profiling.
	FileName  string `yaml:"file_name" envconfig:"REPORT_FILE" validate:"required,endswith=.xlsx"`
	SheetName string `yaml:"sheet_name" envconfig:"REPORT_SHEET" validate:"required,max=31"`

	// Overwrite replaces an existing report instead of picking a numbered
	// sibling name.
	Overwrite bool `yaml:"overwrite" envconfig:"REPORT_OVERWRITE"`
}

// Default returns the configuration defaults used when no file or
// environment override is present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/ledatools.log",
		},
		Report: ReportConfig{
			FileName:  "_FieldReport.xlsx",
			SheetName: "FieldReport",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// LEDA_* environment variables, in increasing order of precedence.
// An empty configFile means "use the well-known location next to the
// executable"; a missing file is not an error.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = defaultConfigPath()
	}
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process("LEDA", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against the struct validation rules
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError(err)
	}
	return nil
}

// ResolvePaths anchors a relative log file path under the application's
// logs directory so log placement does not depend on the working directory.
func (c *Config) ResolvePaths(paths *Paths) {
	if !filepath.IsAbs(c.Logging.FilePath) {
		c.Logging.FilePath = paths.GetLogPath(filepath.Base(c.Logging.FilePath))
	}
}

// defaultConfigPath returns the config file location next to the executable,
// falling back to the working directory when the executable path is unknown.
func defaultConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "ledatools.yaml"
	}
	return filepath.Join(filepath.Dir(exe), "ledatools.yaml")
}
