package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DataFile  string    `yaml:"data_file" mapstructure:"data_file"`
	ExportDir string    `yaml:"export_dir" mapstructure:"export_dir"`
	Theme     string    `yaml:"theme" mapstructure:"theme"`
	Log       LogConfig `yaml:"log" mapstructure:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	File   string `yaml:"file" mapstructure:"file"`
	Format string `yaml:"format" mapstructure:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		DataFile:  "contacts.json",
		ExportDir: ".",
		Theme:     "green",
		Log: LogConfig{
			Level:  "info",
			File:   os.DevNull,
			Format: "text",
		},
	}
}

// searchPaths lists the directories checked for config.yaml, in order.
func searchPaths() []string {
	paths := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "contactbook"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "contactbook"))
	}
	return paths
}

func Load() (*Config, error) {
	return load(viper.New(), searchPaths())
}

func load(v *viper.Viper, paths []string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// CONTACTBOOK_DATA_FILE, CONTACTBOOK_LOG_LEVEL, ...
	v.SetEnvPrefix("CONTACTBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper already knows about
	for _, key := range []string{"data_file", "export_dir", "theme", "log.level", "log.file", "log.format"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.DataFile = os.ExpandEnv(cfg.DataFile)
	cfg.ExportDir = os.ExpandEnv(cfg.ExportDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors and fills in blanks.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		c.DataFile = "contacts.json"
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}

	c.Theme = strings.ToLower(c.Theme)
	switch c.Theme {
	case "":
		c.Theme = "green"
	case "green", "amber":
	default:
		return fmt.Errorf("config: theme %q is invalid (must be green or amber)", c.Theme)
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	case "":
		c.Log.Level = "info"
	default:
		return fmt.Errorf("config: log.level %q is invalid (must be debug, info, warn or error)", c.Log.Level)
	}

	c.Log.Format = strings.ToLower(c.Log.Format)
	switch c.Log.Format {
	case "text", "json":
	case "":
		c.Log.Format = "text"
	default:
		return fmt.Errorf("config: log.format %q is invalid (must be text or json)", c.Log.Format)
	}
	return nil
}

// YAML renders the effective configuration in config file form.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
