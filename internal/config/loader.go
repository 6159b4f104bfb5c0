package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load applies defaults, then environment variables, then validates.
// Command line flags are layered on top by LoadWithOverrides.
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(l.config)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields were not set.
type ConfigOverrides struct {
	StorageDir      *string
	StorageFilename *string
	QueryTimeout    *time.Duration
	WriteTimeout    *time.Duration

	DateFormat *string

	TitleMaxLength *int

	TitleWidth       *int
	RelativeDueDates *bool

	Timeout *time.Duration
	Verbose *bool

	SignInDelay     *time.Duration
	DefaultProvider *string

	ListDefaultFormat *string
}

// Apply copies every set override into config
func (o *ConfigOverrides) Apply(config *Config) {
	if o.StorageDir != nil {
		config.Storage.Dir = *o.StorageDir
	}
	if o.StorageFilename != nil {
		config.Storage.Filename = *o.StorageFilename
	}
	if o.QueryTimeout != nil {
		config.Storage.QueryTimeout = *o.QueryTimeout
	}
	if o.WriteTimeout != nil {
		config.Storage.WriteTimeout = *o.WriteTimeout
	}

	if o.DateFormat != nil {
		config.Time.DateFormat = *o.DateFormat
	}

	if o.TitleMaxLength != nil {
		config.Validation.TitleMaxLength = *o.TitleMaxLength
	}

	if o.TitleWidth != nil {
		config.Display.TitleWidth = *o.TitleWidth
	}
	if o.RelativeDueDates != nil {
		config.Display.RelativeDueDates = *o.RelativeDueDates
	}

	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}

	if o.SignInDelay != nil {
		config.Session.SignInDelay = *o.SignInDelay
	}
	if o.DefaultProvider != nil {
		config.Session.DefaultProvider = *o.DefaultProvider
	}

	if o.ListDefaultFormat != nil {
		config.Commands.ListDefaultFormat = *o.ListDefaultFormat
	}
}
