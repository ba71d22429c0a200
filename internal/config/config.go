// Package config loads connection descriptors and logging settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/adata/dbconn/core"
)

const (
	configDir  = ".dbconn"
	configFile = "config"
	configType = "yaml"
	envPrefix  = "DBCONN"
)

var ErrNoConnections = errors.New("no connections configured")

// Config represents the application configuration.
type Config struct {
	Connections       []*core.ConnectionParams `mapstructure:"connections"`
	DefaultConnection string                   `mapstructure:"default_connection"`
	Log               Log                      `mapstructure:"log"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads the configuration from path, or searches ~/.dbconn and the
// working directory for config.yaml when path is empty. A missing file
// found by search yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFile)
		v.SetConfigType(configType)
		if dir, err := configDirPath(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	for i, params := range cfg.Connections {
		if params == nil {
			return nil, fmt.Errorf("connection %d: empty entry", i)
		}
		if params.ID == "" {
			params.ID = core.ConnectionID(params.Name)
		}
	}

	return cfg, nil
}

// Connection returns the descriptor with the given name or id. An empty
// name selects the default connection, or the first one.
func (c *Config) Connection(name string) (*core.ConnectionParams, error) {
	if len(c.Connections) == 0 {
		return nil, ErrNoConnections
	}

	if name == "" {
		name = c.DefaultConnection
	}
	if name == "" {
		return c.Connections[0], nil
	}

	for _, params := range c.Connections {
		if params.Name == name || string(params.ID) == name {
			return params, nil
		}
	}

	return nil, fmt.Errorf("connection %q not found", name)
}

func configDirPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir), nil
}
