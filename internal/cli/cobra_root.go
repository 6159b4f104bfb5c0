package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"smart-share-todo/internal/config"
	"smart-share-todo/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App) *RootCommand {
	root := &RootCommand{app: app}

	root.cmd = &cobra.Command{
		Use:   "sst",
		Short: "Smart Share Todo: a task list you can share",
		Long: `Smart Share Todo (sst) keeps a personal todo list on your machine.

FEATURES:
  • Sign in with a mock provider; your list is seeded with two tasks
  • Add, edit, complete and delete tasks with priorities, due dates and tags
  • Share tasks with team members by email
  • Filter by status, priority and search text; export as table, JSON, YAML or CSV

EXAMPLES:
  sst login github                          # Sign in (google by default)
  sst add "Write report" --priority high --due 2d --tags work,q3
  sst list --status overdue                 # Tasks past their due date
  sst list report --priority high           # High priority tasks matching "report"
  sst toggle 1a2b3c4d                       # Mark complete (any unique id prefix works)
  sst share 1a2b3c4d alice@example.com      # Share with a team member
  sst stats                                 # Totals, tags and next due task
  sst export --format csv > tasks.csv       # Export the full list

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Storage Configuration:
    SST_STORAGE_DIR                        Storage directory (default: ~/.sst)
    SST_STORAGE_FILENAME                   Storage filename (default: sst.db)
    SST_STORAGE_QUERY_TIMEOUT              Read timeout (default: 10s)
    SST_STORAGE_WRITE_TIMEOUT              Write timeout (default: 5s)
    SST_ENV                                development (./sst.db), testing (in memory), production

  Display Configuration:
    SST_TIME_DATE_FORMAT                   Due date format (default: 2006-01-02)
    SST_DISPLAY_TITLE_WIDTH                Title column width (default: 40)
    SST_DISPLAY_RELATIVE_DUE               Show due dates as "in 2 days" (default: true)

  Validation Configuration:
    SST_VALIDATION_TITLE_MAX               Max title length (default: 200)
    SST_VALIDATION_MAX_TAGS                Max tags per task (default: 20)

  Session Configuration:
    SST_SESSION_PROVIDER                   Default sign-in provider (default: google)
    SST_SESSION_SIGNIN_DELAY               Simulated sign-in delay (default: 0s)

  Application Configuration:
    SST_APP_TIMEOUT                        Command timeout (default: 60s)
    SST_APP_VERBOSE                        Enable verbose output (default: false)
    SST_LIST_DEFAULT_FORMAT                Default list format (default: table)

DUE DATES:
  2024-07-01, 2024-07-01T09:00:00Z, or an offset from now: 30m, 2h, 1d, 2w, 3mo, 1y

GETTING HELP:
  sst [command] --help                      # Get help for any specific command
  sst completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.applyConfigFromFlags(cmd)
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx as the parent of every
// command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides the arguments, mainly for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects cobra's usage and help output
func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// Command exposes the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("storage-dir", "", "Storage directory (overrides SST_STORAGE_DIR)")
	flags.String("storage-filename", "", "Storage filename (overrides SST_STORAGE_FILENAME)")
	flags.Duration("query-timeout", 0, "Storage read timeout (overrides SST_STORAGE_QUERY_TIMEOUT)")
	flags.Duration("write-timeout", 0, "Storage write timeout (overrides SST_STORAGE_WRITE_TIMEOUT)")

	// Time and display configuration
	flags.String("date-format", "", "Due date format (overrides SST_TIME_DATE_FORMAT)")
	flags.Int("title-width", 0, "Title column width (overrides SST_DISPLAY_TITLE_WIDTH)")
	flags.Bool("relative-due", true, "Show due dates relative to now (overrides SST_DISPLAY_RELATIVE_DUE)")

	// Validation configuration
	flags.Int("title-max-length", 0, "Maximum title length (overrides SST_VALIDATION_TITLE_MAX)")

	// Session configuration
	flags.Duration("signin-delay", 0, "Simulated sign-in delay (overrides SST_SESSION_SIGNIN_DELAY)")
	flags.String("provider", "", "Default sign-in provider (overrides SST_SESSION_PROVIDER)")

	// Application configuration
	flags.Duration("timeout", 0, "Command timeout (overrides SST_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides SST_APP_VERBOSE)")
	flags.String("list-format", "", "Default list format (overrides SST_LIST_DEFAULT_FORMAT)")
}

// addSubcommands adds every registered command to the root command
func (r *RootCommand) addSubcommands() {
	registry := r.app.registry
	for _, name := range registry.Names() {
		command, _ := registry.Get(name)
		def := command.Definition()

		name := name
		def.RunE = func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()
			defer r.app.Close()

			return registry.Execute(ctx, name, args)
		}
		r.cmd.AddCommand(def)
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app.config != nil && r.app.config.Application.Timeout > 0 {
		return r.app.config.Application.Timeout
	}
	return 60 * time.Second
}

// overridesFromFlags collects the global flags the user actually set
func (r *RootCommand) overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("storage-dir") {
		v, _ := flags.GetString("storage-dir")
		overrides.StorageDir = &v
	}
	if flags.Changed("storage-filename") {
		v, _ := flags.GetString("storage-filename")
		overrides.StorageFilename = &v
	}
	if flags.Changed("query-timeout") {
		v, _ := flags.GetDuration("query-timeout")
		overrides.QueryTimeout = &v
	}
	if flags.Changed("write-timeout") {
		v, _ := flags.GetDuration("write-timeout")
		overrides.WriteTimeout = &v
	}

	if flags.Changed("date-format") {
		v, _ := flags.GetString("date-format")
		overrides.DateFormat = &v
	}
	if flags.Changed("title-width") {
		v, _ := flags.GetInt("title-width")
		overrides.TitleWidth = &v
	}
	if flags.Changed("relative-due") {
		v, _ := flags.GetBool("relative-due")
		overrides.RelativeDueDates = &v
	}

	if flags.Changed("title-max-length") {
		v, _ := flags.GetInt("title-max-length")
		overrides.TitleMaxLength = &v
	}

	if flags.Changed("signin-delay") {
		v, _ := flags.GetDuration("signin-delay")
		overrides.SignInDelay = &v
	}
	if flags.Changed("provider") {
		v, _ := flags.GetString("provider")
		overrides.DefaultProvider = &v
	}

	if flags.Changed("timeout") {
		v, _ := flags.GetDuration("timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("list-format") {
		v, _ := flags.GetString("list-format")
		overrides.ListDefaultFormat = &v
	}

	return overrides
}

// applyConfigFromFlags layers the flag overrides onto the app configuration
func (r *RootCommand) applyConfigFromFlags(cmd *cobra.Command) error {
	cfg := r.app.config
	r.overridesFromFlags(cmd).Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Application.Verbose {
		logging.SetVerbose(true)
	}
	logging.Debugf("storage: %s", cfg.GetDatabasePath())
	return nil
}
