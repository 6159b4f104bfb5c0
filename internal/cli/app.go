package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"smart-share-todo/internal/api"
	"smart-share-todo/internal/config"
	"smart-share-todo/internal/notify"
)

// Connector opens storage for cfg and returns the API over it together with
// the resource to close when the command finishes.
type Connector func(cfg *config.Config) (api.BusinessAPI, io.Closer, error)

// App represents the main CLI application
type App struct {
	config      *config.Config
	connect     Connector
	businessAPI api.BusinessAPI
	closer      io.Closer
	out         io.Writer
	errOut      io.Writer
	registry    *CommandRegistry
}

// NewApp creates a CLI application over an already wired API
func NewApp(businessAPI api.BusinessAPI) *App {
	return NewAppWithConfig(businessAPI, config.NewConfig())
}

// NewAppWithConfig is NewApp with an explicit configuration
func NewAppWithConfig(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	app := newApp(cfg)
	app.businessAPI = businessAPI
	return app
}

// NewAppWithConnector creates a CLI application that opens storage on first
// use, after command line flags have been applied to cfg.
func NewAppWithConnector(cfg *config.Config, connect Connector) *App {
	app := newApp(cfg)
	app.connect = connect
	return app
}

// NewAppWithDefaultRepository creates the production application: storage is
// chosen by SST_ENV and notifications go to stderr.
func NewAppWithDefaultRepository(cfg *config.Config) *App {
	return NewAppWithConnector(cfg, DefaultConnector(os.Stderr))
}

func newApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		config: cfg,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// DefaultConnector opens the repository for the current environment and
// prints notifications to notices.
func DefaultConnector(notices io.Writer) Connector {
	return func(cfg *config.Config) (api.BusinessAPI, io.Closer, error) {
		factory := config.NewRepositoryFactory(config.GetEnvironment(), cfg)
		repo, err := factory.CreateRepository()
		if err != nil {
			return nil, nil, err
		}
		businessAPI := api.New(repo, api.Options{
			Config: cfg,
			Sink:   notify.NewWriterSink(notices),
		})
		return businessAPI, repo, nil
	}
}

// SetOutput redirects command output and error output
func (a *App) SetOutput(out, errOut io.Writer) {
	a.out = out
	a.errOut = errOut
}

// Config returns the configuration commands run with
func (a *App) Config() *config.Config {
	return a.config
}

// API returns the business API, connecting on first use
func (a *App) API() (api.BusinessAPI, error) {
	if a.businessAPI != nil {
		return a.businessAPI, nil
	}
	if a.connect == nil {
		return nil, fmt.Errorf("no storage configured")
	}

	businessAPI, closer, err := a.connect(a.config)
	if err != nil {
		return nil, err
	}
	a.businessAPI = businessAPI
	a.closer = closer
	return businessAPI, nil
}

// Close releases storage opened by API. The next API call reconnects.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	a.businessAPI = nil
	return err
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	root := NewRootCommand(a)
	root.SetArgs(args)
	root.SetOutput(a.out, a.errOut)
	return root.ExecuteContext(ctx)
}
