// Package config loads the settings of a recordkeeper process.
//
// Settings start from Default, are overlaid by an optional YAML file
// and finally by RECORDKEEPER_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/jrife/recordkeeper/storage/kv"
	"github.com/jrife/recordkeeper/storage/kv/plugins"
	"github.com/jrife/recordkeeper/utils/log"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "RECORDKEEPER_"

// ErrInvalid is matched by every error returned by Validate
var ErrInvalid = errors.New("invalid config")

// Config holds the settings of one process
type Config struct {
	// App names the application to serve, such as "care"
	App string `yaml:"app" env:"APP"`
	// Driver names the kv plugin
	Driver string `yaml:"driver" env:"DRIVER"`
	// DataPath is the database file for drivers that need one
	DataPath string `yaml:"data_path" env:"DATA_PATH"`
	// Listen is the gRPC listen address
	Listen string `yaml:"listen" env:"LISTEN"`
	// RESTListen is the HTTP listen address. The REST frontend
	// is disabled when it is empty.
	RESTListen      string `yaml:"rest_listen" env:"REST_LISTEN"`
	LogLevel        string `yaml:"log_level" env:"LOG_LEVEL"`
	TracingEndpoint string `yaml:"tracing_endpoint" env:"TRACING_ENDPOINT"`
}

// Default returns the settings used when nothing overrides them
func Default() Config {
	return Config{
		App:      "care",
		Driver:   "bbolt",
		DataPath: "./recordkeeper.db",
		Listen:   "127.0.0.1:7860",
		LogLevel: "info",
	}
}

// Load reads the YAML file at path, if path is not empty,
// and then applies the environment
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)

		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)

		if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&config, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return config, nil
}

// Validate reports the first setting that cannot work
func (config Config) Validate() error {
	if config.App == "" {
		return fmt.Errorf("%w: app is required", ErrInvalid)
	}

	if plugins.Plugin(config.Driver) == nil {
		return fmt.Errorf("%w: unknown driver %q, expected one of %v", ErrInvalid, config.Driver, plugins.Names())
	}

	if config.Driver != "memory" && config.DataPath == "" {
		return fmt.Errorf("%w: driver %s requires data_path", ErrInvalid, config.Driver)
	}

	if config.Listen == "" {
		return fmt.Errorf("%w: listen is required", ErrInvalid)
	}

	return nil
}

// PluginOptions are the options passed to the kv plugin
func (config Config) PluginOptions() kv.PluginOptions {
	if config.Driver == "memory" {
		return kv.PluginOptions{}
	}

	return kv.PluginOptions{"path": config.DataPath}
}

// Logger builds the process logger at the configured level
func (config Config) Logger() (*zap.Logger, error) {
	return log.New(config.LogLevel)
}
