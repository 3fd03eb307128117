package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ui"
)

// WatchCmd keeps the widget on screen and refreshes it periodically
type WatchCmd struct {
	Dev      bool          `help:"Enable development mode (shows version info in the header)"`
	Interval time.Duration `help:"Time between refreshes" default:"5m"`
}

// watchInterval resolves the refresh interval: flag > settings.json > default
func watchInterval(flag time.Duration, cli *CLI) time.Duration {
	if flag != ui.DefaultWatchInterval {
		return flag
	}
	if settings := cli.Container.Settings(); settings.WatchIntervalSeconds != nil {
		return time.Duration(*settings.WatchIntervalSeconds) * time.Second
	}
	return flag
}

// Run executes the TUI
func (w *WatchCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := cli.Container.NewCardService(nil)
	if err != nil {
		return fmt.Errorf("failed to configure card client: %w", err)
	}

	interval := watchInterval(w.Interval, cli)
	logging.Logger.Info("Starting watch TUI", "interval", interval.String())

	p := tea.NewProgram(
		ui.NewWatchModel(ctx, svc.CollectShared, interval, w.Dev),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			logging.Logger.Info("Watch TUI interrupted")
			return nil
		}
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
