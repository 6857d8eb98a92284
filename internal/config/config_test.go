package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "contacts.json", cfg.DataFile)
	assert.Equal(t, "green", cfg.Theme)
	assert.Equal(t, os.DevNull, cfg.Log.File)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoConfigFileUsesDefaults(t *testing.T) {
	cfg, err := load(viper.New(), []string{t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	yml := `data_file: /tmp/book.json
theme: AMBER
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0o644))

	cfg, err := load(viper.New(), []string{dir})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/book.json", cfg.DataFile)
	assert.Equal(t, "amber", cfg.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// untouched keys keep defaults
	assert.Equal(t, ".", cfg.ExportDir)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONTACTBOOK_DATA_FILE", "from-env.json")
	t.Setenv("CONTACTBOOK_LOG_LEVEL", "warn")

	cfg, err := load(viper.New(), []string{t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.DataFile)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_ExpandsEnvInPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOOK_HOME", "/srv/books")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("data_file: $BOOK_HOME/contacts.json\n"), 0o644))

	cfg, err := load(viper.New(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, "/srv/books/contacts.json", cfg.DataFile)
}

func TestLoad_BrokenYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("theme: [unclosed\n"), 0o644))

	_, err := load(viper.New(), []string{dir})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad theme", func(c *Config) { c.Theme = "pink" }, "theme"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"blank data file is defaulted", func(c *Config) { c.DataFile = " " }, ""},
		{"blank theme is defaulted", func(c *Config) { c.Theme = "" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, DefaultConfig(), cfg)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestYAML(t *testing.T) {
	out, err := DefaultConfig().YAML()
	require.NoError(t, err)
	assert.Contains(t, out, "data_file: contacts.json")
	assert.Contains(t, out, "theme: green")
	assert.Contains(t, out, "level: info")
}
