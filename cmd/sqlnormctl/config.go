package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/honeynil/sqlnorm"
)

// Config holds all configuration options for the CLI.
type Config struct {
	Driver  string `yaml:"driver"`
	Dialect string `yaml:"dialect"`

	// CompiledCacheCapacity overrides the compiled-statement cache size
	// for this process. Zero keeps the library default.
	CompiledCacheCapacity int `yaml:"compiled_cache_capacity"`

	UseConfig bool   `yaml:"-"`
	Env       string `yaml:"-"`
	JSON      bool   `yaml:"-"`
	Verbose   bool   `yaml:"-"`

	configFile *ConfigFile
}

// ConfigFile represents the structure of .sqlnormctl.yaml
type ConfigFile struct {
	Environments map[string]*Environment `yaml:",inline"`
}

// Environment represents a single environment configuration.
type Environment struct {
	Driver                string `yaml:"driver"`
	Dialect               string `yaml:"dialect"`
	CompiledCacheCapacity int    `yaml:"compiled_cache_capacity"`
}

// loadConfig loads configuration from all sources.
// Priority: flags > env vars > config file.
func (app *App) loadConfig() error {
	app.loadEnv()
	if app.config.UseConfig {
		if err := app.loadConfigFile(".sqlnormctl.yaml"); err != nil {
			return err
		}
	}

	app.logger = sqlnorm.NopLogger()
	if app.config.Verbose {
		app.logger = slog.Default()
	}
	return nil
}

func (app *App) loadEnv() {
	if app.config.Driver == "" {
		if driver := os.Getenv("SQLNORM_DRIVER"); driver != "" {
			app.config.Driver = driver
		}
	}
	if app.config.Dialect == "" {
		if dialect := os.Getenv("SQLNORM_DIALECT"); dialect != "" {
			app.config.Dialect = dialect
		}
	}
}

func (app *App) loadConfigFile(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s (use --use-config only when config file exists)", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cf ConfigFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	app.config.configFile = &cf

	if app.config.Env != "" {
		env, ok := cf.Environments[app.config.Env]
		if !ok {
			return fmt.Errorf("environment '%s' not found in config file", app.config.Env)
		}

		if app.config.Driver == "" {
			app.config.Driver = env.Driver
		}
		if app.config.Dialect == "" {
			app.config.Dialect = env.Dialect
		}
		if app.config.CompiledCacheCapacity == 0 && env.CompiledCacheCapacity > 0 {
			app.config.CompiledCacheCapacity = env.CompiledCacheCapacity
		}
	}

	return nil
}
