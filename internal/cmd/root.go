package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/renato0307/cardwatch/internal/config"
	"github.com/renato0307/cardwatch/internal/logging"
)

const defaultMaxLogFiles = 100

// CLI represents the command-line interface structure
type CLI struct {
	Version        kong.VersionFlag `help:"Show version information"`
	Cookie         string           `help:"Session credential (value of the operator's session cookie)" env:"CARDWATCH_COOKIE"`
	Debug          bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile      string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	LedgerBackend  string           `help:"Ledger backend: sqlite, redis or memory" env:"CARDWATCH_LEDGER_BACKEND"`
	MaxLogFiles    int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"100"`
	NearExpiryDays int              `help:"Alert when this many days or fewer remain" default:"3" env:"CARDWATCH_NEAR_EXPIRY_DAYS"`

	Show      ShowCmd      `cmd:"" help:"Refresh the card and render the widget (default)" default:"1"`
	Status    StatusCmd    `cmd:"status" help:"Refresh the card and print one line for status bars"`
	Watch     WatchCmd     `cmd:"watch" help:"Keep the widget on screen, refreshing periodically"`
	Serve     ServeCmd     `cmd:"serve" help:"Serve the watch screen over SSH"`
	Ledger    LedgerCmd    `cmd:"ledger" help:"Inspect the notification ledger"`
	Setup     SetupCmd     `cmd:"setup" help:"Store the session credential in settings.json"`
	TestAlert TestAlertCmd `cmd:"test-alert" help:"Send a test expiry alert" hidden:""`
	PlaySound PlaySoundCmd `cmd:"play-sound" help:"Play the alert sound (cross-platform)" hidden:""`
	Settings  SettingsCmd  `cmd:"settings" help:"Manage settings (meta)"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// EffectiveSettings returns settings.json merged with flags and env vars
func (c *CLI) EffectiveSettings() *config.Settings {
	merged := config.Settings{}
	if c.settings != nil {
		merged = *c.settings
	}

	if c.Cookie != "" {
		merged.Cookie = c.Cookie
	}
	if c.LedgerBackend != "" {
		merged.LedgerBackend = strings.ToLower(c.LedgerBackend)
	}
	days := c.NearExpiryDays
	merged.NearExpiryDays = &days

	return &merged
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply(kctx *kong.Context) error {
	c.applySettings(passedFlags(kctx))

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Share the same log file with the processes this run starts (watch, serve)
	if c.Debug || c.DebugFile != "" {
		os.Setenv("CARDWATCH_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("CARDWATCH_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != defaultMaxLogFiles {
		os.Setenv("CARDWATCH_MAX_LOG_FILES", strconv.Itoa(c.MaxLogFiles))
	}

	settings := c.EffectiveSettings()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Create container AFTER logging is initialized
	// so the gorm logger bridge has somewhere to write
	container, err := NewContainer(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// applySettings fills flags from settings.json with proper precedence:
// CLI flags > env vars > settings.json > defaults.
// A flag counts as given when it is in passed, whatever its value.
func (c *CLI) applySettings(passed map[string]bool) {
	if c.settings == nil {
		return
	}

	if !passed["max-log-files"] && !hasEnv("CARDWATCH_MAX_LOG_FILES") && c.settings.MaxLogFiles != nil {
		c.MaxLogFiles = *c.settings.MaxLogFiles
	}

	if !passed["debug"] && !hasEnv("CARDWATCH_DEBUG") && c.settings.Debug != nil && *c.settings.Debug {
		c.Debug = true
	}

	if !passed["near-expiry-days"] && !hasEnv("CARDWATCH_NEAR_EXPIRY_DAYS") && c.settings.NearExpiryDays != nil {
		c.NearExpiryDays = *c.settings.NearExpiryDays
	}
}

// passedFlags returns the names of the flags given on the command line
func passedFlags(kctx *kong.Context) map[string]bool {
	passed := make(map[string]bool)
	if kctx == nil {
		return passed
	}
	for _, p := range kctx.Path {
		if p.Flag != nil {
			passed[p.Flag.Name] = true
		}
	}
	return passed
}

func hasEnv(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container == nil {
		return nil
	}
	err := c.Container.Close()
	c.Container = nil
	return err
}
