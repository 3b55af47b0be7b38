package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ENV_PREFIX prefixes every environment variable, for instance IFC_LOG_LEVEL
const ENV_PREFIX = "IFC"

// Store kinds
const (
	STORE_BADGER   = "badger"
	STORE_POSTGRES = "postgres"
)

// Config is the configuration of the command line
type Config struct {
	// LogLevel is a zap level: debug, info, warn, error
	LogLevel string
	// OutputPath is the directory of exported files
	OutputPath string
	Store      StoreConfig
	Header     HeaderConfig
}

// StoreConfig defines where models are saved
type StoreConfig struct {
	// Kind is badger or postgres
	Kind string
	// BadgerPath is the badger directory, in memory if empty
	BadgerPath string
	// DatabaseURL is the postgresql url, mandatory for postgres
	DatabaseURL string
}

// HeaderConfig completes the header of exported files
type HeaderConfig struct {
	Author        string
	Organization  string
	Authorization string
}

// setDefaults sets default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OUTPUT_PATH", ".")
	v.SetDefault("STORE_KIND", STORE_BADGER)
	v.SetDefault("BADGER_PATH", "data/badger")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("HEADER_AUTHOR", "")
	v.SetDefault("HEADER_ORGANIZATION", "")
	v.SetDefault("HEADER_AUTHORIZATION", "")
}

// Load reads configuration from the .env.<env> file in paths (current directory by default),
// then from IFC_ environment variables that take precedence.
// A missing file is not an error.
func Load(env string, paths ...string) (*Config, error) {
	if env == "" {
		env = "dev"
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	v := viper.New()
	v.SetConfigName(fmt.Sprintf(".env.%s", env))
	v.SetConfigType("env")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(ENV_PREFIX)
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		LogLevel:   v.GetString("LOG_LEVEL"),
		OutputPath: v.GetString("OUTPUT_PATH"),
		Store: StoreConfig{
			Kind:        strings.ToLower(v.GetString("STORE_KIND")),
			BadgerPath:  v.GetString("BADGER_PATH"),
			DatabaseURL: v.GetString("DATABASE_URL"),
		},
		Header: HeaderConfig{
			Author:        v.GetString("HEADER_AUTHOR"),
			Organization:  v.GetString("HEADER_ORGANIZATION"),
			Authorization: v.GetString("HEADER_AUTHORIZATION"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate returns all the configuration errors
func (c *Config) Validate() error {
	var errs []error
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if !slices.Contains([]string{STORE_BADGER, STORE_POSTGRES}, c.Store.Kind) {
		errs = append(errs, fmt.Errorf("unknown store kind %q", c.Store.Kind))
	} else if c.Store.Kind == STORE_POSTGRES && c.Store.DatabaseURL == "" {
		errs = append(errs, fmt.Errorf("%s_DATABASE_URL is required for postgres store", ENV_PREFIX))
	}

	return errors.Join(errs...)
}

// NewLogger returns a json logger at level, to standard error
func NewLogger(level string) (*zap.SugaredLogger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parsed)
	config.Sampling = nil
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
