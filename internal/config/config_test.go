package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "sst.db", cfg.Storage.Filename)
	assert.Equal(t, 1, cfg.Validation.TitleMinLength)
	assert.Equal(t, 200, cfg.Validation.TitleMaxLength)
	assert.Equal(t, time.Duration(0), cfg.Session.SignInDelay)
	assert.Equal(t, 24*time.Hour, cfg.Session.SeedDueIn)
	assert.Equal(t, "table", cfg.Commands.ListDefaultFormat)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("SST_STORAGE_DIR", "/tmp/sst-test")
	t.Setenv("SST_STORAGE_QUERY_TIMEOUT", "3s")
	t.Setenv("SST_VALIDATION_TITLE_MAX", "80")
	t.Setenv("SST_DISPLAY_RELATIVE_DUE", "false")
	t.Setenv("SST_SESSION_SIGNIN_DELAY", "1500ms")
	t.Setenv("SST_SESSION_PROVIDER", "github")
	t.Setenv("SST_LIST_DEFAULT_FORMAT", "json")
	t.Setenv("SST_VALIDATION_MAX_TAGS", "not-a-number")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/sst-test", cfg.Storage.Dir)
	assert.Equal(t, 3*time.Second, cfg.Storage.QueryTimeout)
	assert.Equal(t, 80, cfg.Validation.TitleMaxLength)
	assert.False(t, cfg.Display.RelativeDueDates)
	assert.Equal(t, 1500*time.Millisecond, cfg.Session.SignInDelay)
	assert.Equal(t, "github", cfg.Session.DefaultProvider)
	assert.Equal(t, "json", cfg.Commands.ListDefaultFormat)
	assert.Equal(t, 20, cfg.Validation.MaxTags, "unparseable values keep the default")
	assert.Equal(t, "/tmp/sst-test/sst.db", cfg.GetDatabasePath())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"empty storage dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"zero query timeout", func(c *Config) { c.Storage.QueryTimeout = 0 }, "storage.query_timeout"},
		{"title min below one", func(c *Config) { c.Validation.TitleMinLength = 0 }, "validation.title_min_length"},
		{"title max below min", func(c *Config) { c.Validation.TitleMaxLength = 0 }, "validation.title_max_length"},
		{"narrow title column", func(c *Config) { c.Display.TitleWidth = 5 }, "display.title_width"},
		{"negative sign-in delay", func(c *Config) { c.Session.SignInDelay = -time.Second }, "session.signin_delay"},
		{"unknown list format", func(c *Config) { c.Commands.ListDefaultFormat = "xml" }, "commands.list_default_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			configErr, ok := err.(*ConfigError)
			require.True(t, ok, "expected *ConfigError, got %T", err)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	t.Setenv("SST_LIST_DEFAULT_FORMAT", "csv")

	format := "yaml"
	delay := 2 * time.Second
	verbose := true
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		ListDefaultFormat: &format,
		SignInDelay:       &delay,
		Verbose:           &verbose,
	})
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Commands.ListDefaultFormat, "flags win over environment")
	assert.Equal(t, 2*time.Second, cfg.Session.SignInDelay)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoader_LoadWithOverrides_Invalid(t *testing.T) {
	format := "xml"
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{ListDefaultFormat: &format})
	assert.Error(t, err)
}

func TestIsListFormat(t *testing.T) {
	for _, f := range ListFormats {
		assert.True(t, IsListFormat(f))
	}
	assert.False(t, IsListFormat("xml"))
}
