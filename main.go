package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/renato0307/cardwatch/internal/cmd"
	"github.com/renato0307/cardwatch/internal/config"
	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/version"
)

// Exit codes
const (
	exitError       = 1
	exitConfigError = 2
)

func main() {
	// A .env in the working directory may carry CARDWATCH_* variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	// Load settings from ~/.cardwatch/settings.json
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
		settings = &config.Settings{} // Use empty settings
	}

	// Parse CLI arguments with Kong
	// Container is created in CLI.AfterApply() after logging is initialized
	var cli cmd.CLI
	cli.SetSettings(settings) // Set settings before parsing
	ctx := kong.Parse(&cli,
		kong.Name("cardwatch"),
		kong.Description(version.Tagline),
		kong.Vars{
			"version": version.Info(),
		},
		kong.UsageOnError(),
		kong.Bind(&cli),
	)
	defer cli.Close()

	if err := ctx.Run(); err != nil {
		cli.Close()
		if errors.Is(err, domain.ErrMissingCredential) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'cardwatch setup', pass --cookie or set CARDWATCH_COOKIE.")
			os.Exit(exitConfigError)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
}
