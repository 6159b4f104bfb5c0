package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// LogoutCommand handles the logout command
type LogoutCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the logout command
func (c *LogoutCommand) Definition() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the local task list",
		Long:  "Sign out. The stored user and every stored task are removed from this machine.",
		Args:  cobra.NoArgs,
	}
}

// Execute runs the logout command
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("sign out", err)
	}
	if err := businessAPI.Logout(ctx); err != nil {
		return c.errorHandler.Handle("sign out", err)
	}

	fmt.Fprintln(c.app.out, "Signed out")
	return nil
}
