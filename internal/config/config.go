package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"smart-share-todo/internal/logging"
	"smart-share-todo/internal/repository/sqlite"
)

// Config holds all configuration options for Smart Share Todo
type Config struct {
	Storage     StorageConfig
	Time        TimeConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
	Session     SessionConfig
	Commands    CommandsConfig
}

// StorageConfig holds settings for the local key-value store
type StorageConfig struct {
	Dir            string        `env:"SST_STORAGE_DIR"`
	Filename       string        `env:"SST_STORAGE_FILENAME"`
	QueryTimeout   time.Duration `env:"SST_STORAGE_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"SST_STORAGE_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"SST_STORAGE_DIR_PERMISSIONS"`
}

// TimeConfig holds time formatting configuration
type TimeConfig struct {
	DisplayFormat string `env:"SST_TIME_DISPLAY_FORMAT"`
	DateFormat    string `env:"SST_TIME_DATE_FORMAT"`
}

// ValidationConfig holds task validation limits
type ValidationConfig struct {
	TitleMinLength       int `env:"SST_VALIDATION_TITLE_MIN"`
	TitleMaxLength       int `env:"SST_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `env:"SST_VALIDATION_DESCRIPTION_MAX"`
	TagMaxLength         int `env:"SST_VALIDATION_TAG_MAX"`
	MaxTags              int `env:"SST_VALIDATION_MAX_TAGS"`
	MaxRecipients        int `env:"SST_VALIDATION_MAX_RECIPIENTS"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TitleWidth       int  `env:"SST_DISPLAY_TITLE_WIDTH"`
	RelativeDueDates bool `env:"SST_DISPLAY_RELATIVE_DUE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"SST_APP_TIMEOUT"`
	Verbose bool          `env:"SST_APP_VERBOSE"`
}

// SessionConfig holds the mock sign-in settings
type SessionConfig struct {
	SignInDelay     time.Duration `env:"SST_SESSION_SIGNIN_DELAY"`
	DefaultProvider string        `env:"SST_SESSION_PROVIDER"`
	SeedDueIn       time.Duration `env:"SST_SESSION_SEED_DUE_IN"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultFormat string `env:"SST_LIST_DEFAULT_FORMAT"`
}

// ListFormats are the output formats accepted by the list command.
var ListFormats = []string{"table", "json", "yaml", "csv"}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Storage: StorageConfig{
			Dir:            filepath.Join(homeDir, ".sst"),
			Filename:       "sst.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Time: TimeConfig{
			DisplayFormat: "2006-01-02 15:04",
			DateFormat:    "2006-01-02",
		},
		Validation: ValidationConfig{
			TitleMinLength:       1,
			TitleMaxLength:       200,
			DescriptionMaxLength: 2000,
			TagMaxLength:         50,
			MaxTags:              20,
			MaxRecipients:        50,
		},
		Display: DisplayConfig{
			TitleWidth:       40,
			RelativeDueDates: true,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
		Session: SessionConfig{
			DefaultProvider: "google",
			SeedDueIn:       24 * time.Hour,
		},
		Commands: CommandsConfig{
			ListDefaultFormat: "table",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// StorageOptions returns the per-call timeouts for the sqlite store
func (c *Config) StorageOptions() sqlite.Options {
	return sqlite.Options{
		QueryTimeout: c.Storage.QueryTimeout,
		WriteTimeout: c.Storage.WriteTimeout,
	}
}

// LoadFromEnvironment loads configuration from SST_* environment variables.
// Values that do not parse are ignored and the previous value is kept.
func (c *Config) LoadFromEnvironment() error {
	envString("SST_STORAGE_DIR", &c.Storage.Dir)
	envString("SST_STORAGE_FILENAME", &c.Storage.Filename)
	envDuration("SST_STORAGE_QUERY_TIMEOUT", &c.Storage.QueryTimeout)
	envDuration("SST_STORAGE_WRITE_TIMEOUT", &c.Storage.WriteTimeout)
	if perms := os.Getenv("SST_STORAGE_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Storage.DirPermissions = uint32(p)
		} else {
			logging.Debugf("ignoring SST_STORAGE_DIR_PERMISSIONS=%q: %v", perms, err)
		}
	}

	envString("SST_TIME_DISPLAY_FORMAT", &c.Time.DisplayFormat)
	envString("SST_TIME_DATE_FORMAT", &c.Time.DateFormat)

	envInt("SST_VALIDATION_TITLE_MIN", &c.Validation.TitleMinLength)
	envInt("SST_VALIDATION_TITLE_MAX", &c.Validation.TitleMaxLength)
	envInt("SST_VALIDATION_DESCRIPTION_MAX", &c.Validation.DescriptionMaxLength)
	envInt("SST_VALIDATION_TAG_MAX", &c.Validation.TagMaxLength)
	envInt("SST_VALIDATION_MAX_TAGS", &c.Validation.MaxTags)
	envInt("SST_VALIDATION_MAX_RECIPIENTS", &c.Validation.MaxRecipients)

	envInt("SST_DISPLAY_TITLE_WIDTH", &c.Display.TitleWidth)
	envBool("SST_DISPLAY_RELATIVE_DUE", &c.Display.RelativeDueDates)

	envDuration("SST_APP_TIMEOUT", &c.Application.Timeout)
	envBool("SST_APP_VERBOSE", &c.Application.Verbose)

	envDuration("SST_SESSION_SIGNIN_DELAY", &c.Session.SignInDelay)
	envString("SST_SESSION_PROVIDER", &c.Session.DefaultProvider)
	envDuration("SST_SESSION_SEED_DUE_IN", &c.Session.SeedDueIn)

	envString("SST_LIST_DEFAULT_FORMAT", &c.Commands.ListDefaultFormat)

	return nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		} else {
			logging.Debugf("ignoring %s=%q: %v", key, v, err)
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		} else {
			logging.Debugf("ignoring %s=%q: %v", key, v, err)
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		} else {
			logging.Debugf("ignoring %s=%q: %v", key, v, err)
		}
	}
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "storage filename cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}
	if c.Time.DateFormat == "" {
		return &ConfigError{Field: "time.date_format", Message: "date format cannot be empty"}
	}

	if c.Validation.TitleMinLength < 1 {
		return &ConfigError{Field: "validation.title_min_length", Message: "title minimum length must be at least 1"}
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be greater than minimum length"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length cannot be negative"}
	}
	if c.Validation.TagMaxLength < 1 {
		return &ConfigError{Field: "validation.tag_max_length", Message: "tag maximum length must be at least 1"}
	}
	if c.Validation.MaxTags < 0 || c.Validation.MaxRecipients < 0 {
		return &ConfigError{Field: "validation.max_items", Message: "list limits cannot be negative"}
	}

	if c.Display.TitleWidth < 10 {
		return &ConfigError{Field: "display.title_width", Message: "title width must be at least 10"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	if c.Session.SignInDelay < 0 {
		return &ConfigError{Field: "session.signin_delay", Message: "sign-in delay cannot be negative"}
	}
	if c.Session.DefaultProvider == "" {
		return &ConfigError{Field: "session.default_provider", Message: "default provider cannot be empty"}
	}

	if !IsListFormat(c.Commands.ListDefaultFormat) {
		return &ConfigError{Field: "commands.list_default_format", Message: "list format must be one of table, json, yaml, csv"}
	}

	return nil
}

// IsListFormat reports whether format is a supported list output format.
func IsListFormat(format string) bool {
	for _, f := range ListFormats {
		if f == format {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
