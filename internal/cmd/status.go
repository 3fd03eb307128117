package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/renato0307/cardwatch/internal/ui"
)

// StatusCmd prints a single line for tmux or other status bars
type StatusCmd struct{}

// Run executes the status command. It never fails so the status bar keeps rendering.
func (s *StatusCmd) Run(cli *CLI) error {
	presenter, err := ui.NewPresenter(os.Stdout, ui.FormatStatus)
	if err != nil {
		return err
	}

	svc, err := cli.Container.NewCardService(presenter)
	if err != nil {
		// Credential missing or invalid configuration
		fmt.Println("card: run cardwatch setup")
		return nil
	}

	svc.Run(context.Background())
	return nil
}
