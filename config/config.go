/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads texfigure settings from a YAML file, a .env file and
// TEXFIGURE_* environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/suparena/texfigure/errors"
)

// EnvPrefix prefixes every environment variable, e.g. TEXFIGURE_LOG_LEVEL.
const EnvPrefix = "TEXFIGURE"

// DefaultFile is the config file looked up when none is named.
const DefaultFile = "texfigure.yaml"

// Config holds the settings of a texfigure run.
type Config struct {
	Document       string  `yaml:"document" envconfig:"DOCUMENT"`
	BaseDir        string  `yaml:"baseDir" envconfig:"BASE_DIR"`
	Chapter        int     `yaml:"chapter" envconfig:"CHAPTER"`
	DefaultExt     string  `yaml:"defaultExt" envconfig:"DEFAULT_EXT"`
	TextWidth      float64 `yaml:"textWidth" envconfig:"TEXT_WIDTH"`
	Manifest       string  `yaml:"manifest" envconfig:"MANIFEST"`
	DependencyFile string  `yaml:"dependencyFile" envconfig:"DEPENDENCY_FILE"`

	Dirs     DirsConfig     `yaml:"dirs" envconfig:"DIRS"`
	Log      LogConfig      `yaml:"log" envconfig:"LOG"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb" envconfig:"DYNAMODB"`
}

// DirsConfig names the Manager directories. An empty name disables one.
type DirsConfig struct {
	Figs string `yaml:"figs" envconfig:"FIGS"`
	Data string `yaml:"data" envconfig:"DATA"`
	Code string `yaml:"code" envconfig:"CODE"`
}

// LogConfig configures the logger package.
type LogConfig struct {
	Level      string `yaml:"level" envconfig:"LEVEL"`
	Format     string `yaml:"format" envconfig:"FORMAT"`
	Output     string `yaml:"output" envconfig:"OUTPUT"`
	FilePath   string `yaml:"filePath" envconfig:"FILE_PATH"`
	TimeFormat string `yaml:"timeFormat" envconfig:"TIME_FORMAT"`
}

// DynamoDBConfig enables publishing figure records to a DynamoDB table when
// Table is set.
type DynamoDBConfig struct {
	Table     string `yaml:"table" envconfig:"TABLE"`
	Region    string `yaml:"region" envconfig:"REGION"`
	AccessKey string `yaml:"accessKey" envconfig:"ACCESS_KEY"`
	SecretKey string `yaml:"secretKey" envconfig:"SECRET_KEY"`
}

// Enabled reports whether a table is configured.
func (c DynamoDBConfig) Enabled() bool {
	return c.Table != ""
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseDir:        ".",
		Chapter:        1,
		DefaultExt:     ".pdf",
		TextWidth:      345,
		Manifest:       "figures.yaml",
		DependencyFile: "texfigure-deps.yaml",
		Dirs: DirsConfig{
			Figs: "Figs",
			Data: "Data",
			Code: "Code",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stderr",
			TimeFormat: "rfc3339",
		},
		DynamoDB: DynamoDBConfig{
			Region: "us-east-1",
		},
	}
}

// Load builds a Config from the defaults, the YAML file at path, the given
// .env files and the environment. An empty path reads DefaultFile when it
// exists; a named file must exist. With no envFiles, ".env" is read when
// present. Variables already set in the environment win over .env values.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		}
	}
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("error loading env files: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if c.Chapter < 1 {
		return errors.NewValidationError("chapter", fmt.Sprintf("must be at least 1, got %d", c.Chapter))
	}
	if c.TextWidth <= 0 {
		return errors.NewValidationError("textWidth", fmt.Sprintf("must be positive, got %g", c.TextWidth))
	}
	if c.Manifest == "" {
		return errors.NewValidationError("manifest", "must not be empty")
	}
	return nil
}

// WriteFile writes c as YAML to path.
func (c *Config) WriteFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
