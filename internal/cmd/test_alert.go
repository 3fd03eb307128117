package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/renato0307/cardwatch/internal/adapters/desktop"
	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/logging"
)

// TestAlertCmd sends the expiry alert without touching the ledger
type TestAlertCmd struct{}

// Run executes the test-alert command
func (t *TestAlertCmd) Run(cli *CLI) error {
	logging.Logger.Info("Sending test alert")
	// Interactive diagnostic: print the alert when the desktop cannot show it
	alerter := desktop.NewNotifier(cli.Container.SoundPlayer, desktop.WithFallback(os.Stdout))
	if err := alerter.Alert(context.Background(), domain.ExpiryAlert()); err != nil {
		return fmt.Errorf("failed to send test alert: %w", err)
	}
	return nil
}
