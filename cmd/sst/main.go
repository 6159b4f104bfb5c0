package main

import (
	"context"
	"fmt"
	"os"

	"smart-share-todo/internal/cli"
	"smart-share-todo/internal/config"
)

func main() {
	// Load configuration from the environment; flags are layered on per command
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Storage is opened lazily so --storage-dir and friends take effect first
	app := cli.NewAppWithDefaultRepository(cfg)

	// Each command runs under its own SST_APP_TIMEOUT deadline
	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
