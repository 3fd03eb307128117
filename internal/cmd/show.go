package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/renato0307/cardwatch/internal/config"
	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ui"
)

// ShowCmd runs the pipeline once and renders the result
type ShowCmd struct {
	FailOnError bool   `help:"Exit with an error when the card could not be read"`
	Format      string `help:"Output format: widget or json (default: format from settings.json, else widget)"`
}

// Run executes the show command
func (s *ShowCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	format := resolveFormat(s.Format, cli.Container.Settings())

	presenter, err := ui.NewPresenter(os.Stdout, format)
	if err != nil {
		return err
	}

	svc, err := cli.Container.NewCardService(presenter)
	if err != nil {
		return fmt.Errorf("failed to configure card client: %w", err)
	}

	logging.Logger.Info("Running card refresh", "format", format)

	if _, err := svc.Run(ctx); err != nil && s.FailOnError {
		return fmt.Errorf("failed to read card: %w", err)
	}
	return nil
}

// resolveFormat picks the --format flag when given, then settings.json, then the widget
func resolveFormat(flag string, settings *config.Settings) string {
	if flag != "" {
		return flag
	}
	if settings != nil && settings.Format != "" {
		return settings.Format
	}
	return ui.FormatWidget
}
