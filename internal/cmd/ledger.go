package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/renato0307/cardwatch/internal/domain"
)

// LedgerCmd inspects the notification ledger
type LedgerCmd struct {
	Show LedgerShowCmd `cmd:"show" help:"Show the last day an expiry alert was delivered" default:"1"`
}

// LedgerShowCmd prints the ledger entry
type LedgerShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// ledgerView is the JSON form of the ledger entry
type ledgerView struct {
	Key          string `json:"key"`
	LastNotified string `json:"last_notified,omitempty"`
	Location     string `json:"location"`
	Threshold    int    `json:"near_expiry_days"`
}

// Run executes the ledger show command
func (l *LedgerShowCmd) Run(cli *CLI) error {
	return l.render(context.Background(), cli, os.Stdout)
}

func (l *LedgerShowCmd) render(ctx context.Context, cli *CLI, out io.Writer) error {
	lastNotified, ok, err := cli.Container.Gate.LastNotified(ctx)
	if err != nil {
		return fmt.Errorf("failed to read ledger: %w", err)
	}

	view := ledgerView{
		Key:       domain.LastNotifyKey,
		Location:  describeLedger(cli.Container.Settings()),
		Threshold: cli.Container.Gate.Threshold(),
	}
	if ok {
		view.LastNotified = lastNotified
	}

	if l.Format == "json" {
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	last := view.LastNotified
	if last == "" {
		last = "never"
	}
	fmt.Fprintf(out, "Ledger:           %s\n", view.Location)
	fmt.Fprintf(out, "Key:              %s\n", view.Key)
	fmt.Fprintf(out, "Last notified:    %s\n", last)
	fmt.Fprintf(out, "Near expiry days: %d\n", view.Threshold)
	return nil
}
