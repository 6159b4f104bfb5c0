package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// WhoAmICommand handles the whoami command
type WhoAmICommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewWhoAmICommand creates a new whoami command handler
func NewWhoAmICommand(app *App) *WhoAmICommand {
	return &WhoAmICommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the whoami command
func (c *WhoAmICommand) Definition() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
	}
}

// Execute runs the whoami command
func (c *WhoAmICommand) Execute(ctx context.Context, args []string) error {
	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("look up user", err)
	}
	user, err := businessAPI.WhoAmI(ctx)
	if err != nil {
		if c.errorHandler.IsUnauthenticatedError(err) {
			fmt.Fprintln(c.app.out, "Not signed in")
			return nil
		}
		return c.errorHandler.Handle("look up user", err)
	}

	fmt.Fprintf(c.app.out, "%s <%s>\n", user.Name, user.Email)
	fmt.Fprintf(c.app.out, "id: %s\n", user.ID)
	return nil
}
