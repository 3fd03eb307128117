package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/renato0307/cardwatch/internal/adapters/tmux"
	"github.com/renato0307/cardwatch/internal/config"
	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/paths"
)

const tmuxStatusSnippet = `
# cardwatch status bar configuration
set -g status-right "#(cardwatch status) | %H:%M"
set -g status-interval 300  # refresh every 5 minutes
`

const (
	tmuxStatusCommand  = "cardwatch status"
	tmuxStatusInterval = 5 * time.Minute
)

// statusInstaller is the part of the tmux client used by setup
type statusInstaller interface {
	InstallStatus(command string, interval time.Duration) error
	ServerRunning() bool
}

// SetupCmd stores the credential and alert preferences in settings.json
type SetupCmd struct {
	NonInteractive bool `help:"Do not prompt, save the values given by flags and env vars"`
	Tmux           bool `help:"Add the status segment to the running tmux server"`
}

// setupAnswers holds the values collected by the form
type setupAnswers struct {
	Cookie         string
	LedgerBackend  string
	NearExpiryDays string
}

// Run executes the setup command
func (s *SetupCmd) Run(cli *CLI) error {
	current := cli.EffectiveSettings()

	answers := setupAnswers{
		Cookie:         current.Cookie,
		LedgerBackend:  current.Ledger(),
		NearExpiryDays: strconv.Itoa(cli.NearExpiryDays),
	}

	if !s.NonInteractive {
		if err := newSetupForm(&answers).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("Setup cancelled, nothing saved.")
				return nil
			}
			return fmt.Errorf("failed to run setup form: %w", err)
		}
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if err := applySetupAnswers(settings, answers); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.SaveSettings(settings); err != nil {
		return err
	}
	logging.Logger.Info("Settings saved", "path", paths.GetSettingsPath())

	fmt.Printf("\n✓ Settings saved to %s\n", paths.GetSettingsPath())

	if s.Tmux {
		installTmuxStatus(tmux.NewClient(), os.Stdout)
	}

	fmt.Println("Add this to ~/.tmux.conf to show the card in your status bar:")
	fmt.Print(tmuxStatusSnippet)

	return nil
}

// installTmuxStatus updates the live tmux server; failures only produce a warning
func installTmuxStatus(client statusInstaller, out io.Writer) {
	if !client.ServerRunning() {
		fmt.Fprintln(out, "⚠ tmux is not running, status bar not updated")
		return
	}
	if err := client.InstallStatus(tmuxStatusCommand, tmuxStatusInterval); err != nil {
		logging.Logger.Warn("Failed to install tmux status", "error", err)
		fmt.Fprintf(out, "⚠ Could not update tmux status bar: %v\n", err)
		return
	}
	fmt.Fprintln(out, "✓ tmux status bar updated")
}

func newSetupForm(answers *setupAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Session credential").
				Description("Value of the APPLICATION_SESSION_NAME cookie from the operator's web app").
				EchoMode(huh.EchoModePassword).
				Value(&answers.Cookie).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("credential required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Alert threshold").
				Description("Send the expiry alert when this many days or fewer remain").
				Value(&answers.NearExpiryDays).
				Validate(validateDays),
			huh.NewSelect[string]().
				Title("Ledger").
				Description("Where the last alert date is stored").
				Options(
					huh.NewOption("SQLite file (default)", config.LedgerBackendSQLite),
					huh.NewOption("Redis (shared between machines)", config.LedgerBackendRedis),
					huh.NewOption("Memory (alert on every run)", config.LedgerBackendMemory),
				).
				Value(&answers.LedgerBackend),
		),
	)
}

func validateDays(s string) error {
	days, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number of days")
	}
	if days < 0 {
		return fmt.Errorf("days must not be negative")
	}
	return nil
}

// applySetupAnswers copies the collected answers into settings
func applySetupAnswers(settings *config.Settings, answers setupAnswers) error {
	if strings.TrimSpace(answers.Cookie) == "" {
		return fmt.Errorf("credential required: pass --cookie or set CARDWATCH_COOKIE")
	}
	if err := validateDays(answers.NearExpiryDays); err != nil {
		return err
	}

	days, _ := strconv.Atoi(strings.TrimSpace(answers.NearExpiryDays))
	settings.Cookie = strings.TrimSpace(answers.Cookie)
	settings.NearExpiryDays = &days
	if answers.LedgerBackend != config.LedgerBackendSQLite {
		settings.LedgerBackend = answers.LedgerBackend
	} else {
		settings.LedgerBackend = ""
	}
	return nil
}
