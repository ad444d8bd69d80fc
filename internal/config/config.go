// Package config loads clayconfig CLI settings from defaults, an optional
// config file, CLAYCONFIG_* environment variables, and bound flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. CLAYCONFIG_LOG_LEVEL.
	EnvPrefix = "CLAYCONFIG"
	fileName  = "clayconfig"

	KeyCatalog      = "catalog"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyExportFormat = "export.format"
)

// Config is the resolved CLI configuration.
type Config struct {
	Catalog []string     `mapstructure:"catalog" yaml:"catalog"`
	Log     LogConfig    `mapstructure:"log" yaml:"log"`
	Export  ExportConfig `mapstructure:"export" yaml:"export"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ExportConfig holds defaults for the export command.
type ExportConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Export: ExportConfig{
			Format: "json",
		},
	}
}

// NewViper returns a viper instance with defaults and environment bindings
// applied. Callers bind flags on the returned instance before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault(KeyCatalog, defaults.Catalog)
	v.SetDefault(KeyLogLevel, defaults.Log.Level)
	v.SetDefault(KeyLogFormat, defaults.Log.Format)
	v.SetDefault(KeyExportFormat, defaults.Export.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (explicit path, or clayconfig.{yaml,json,toml}
// in the working directory or the user config directory) and unmarshals the
// merged result. A missing default config file is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = NewViper()
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(fileName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, fileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Catalog = cleanPaths(cfg.Catalog)
	return cfg, nil
}

// ConfigFileUsed reports the file viper read, if any.
func ConfigFileUsed(v *viper.Viper) string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

func cleanPaths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
