package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"smart-share-todo/internal/errors"
)

// LoginCommand handles the login command
type LoginCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the login command
func (c *LoginCommand) Definition() *cobra.Command {
	return &cobra.Command{
		Use:   "login [provider]",
		Short: "Sign in with a mock provider",
		Long: `Sign in as the demo user. No credentials are checked.

The first sign-in seeds your list with two example tasks.

Examples:
  sst login           # Sign in with the default provider
  sst login github    # Sign in with GitHub`,
		Args: cobra.MaximumNArgs(1),
	}
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.NewInvalidInputError("command", "login", "usage: sst login [provider]")
	}

	provider := c.app.config.Session.DefaultProvider
	if len(args) == 1 {
		provider = args[0]
	}

	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("sign in", err)
	}
	user, err := businessAPI.Login(ctx, provider)
	if err != nil {
		return c.errorHandler.Handle("sign in", err)
	}

	fmt.Fprintf(c.app.out, "Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}
