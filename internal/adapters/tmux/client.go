package tmux

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/renato0307/cardwatch/internal/logging"
)

// statusSeparator joins the cardwatch segment with whatever status-right already shows
const statusSeparator = " | "

// Client configures the status bar of a running tmux server
type Client struct {
	run func(args ...string) ([]byte, error)
}

// NewClient creates a Client that shells out to the tmux binary
func NewClient() *Client {
	return &Client{
		run: func(args ...string) ([]byte, error) {
			return exec.Command("tmux", args...).Output()
		},
	}
}

// ServerRunning reports whether a tmux server with at least one session is reachable
func (c *Client) ServerRunning() bool {
	_, err := c.run("list-sessions", "-F", "#{session_name}")
	return err == nil
}

// GlobalOption returns the value of a global tmux option
func (c *Client) GlobalOption(option string) (string, error) {
	output, err := c.run("show-options", "-gqv", option)
	if err != nil {
		return "", fmt.Errorf("failed to read tmux option %s: %w", option, err)
	}
	return strings.TrimRight(string(output), "\n"), nil
}

// SetGlobalOption sets a global tmux option
func (c *Client) SetGlobalOption(option, value string) error {
	if _, err := c.run("set-option", "-g", option, value); err != nil {
		return fmt.Errorf("failed to set tmux option %s=%s: %w", option, value, err)
	}
	return nil
}

// InstallStatus prepends #(command) to status-right and sets the refresh interval.
// Running it twice leaves status-right unchanged.
func (c *Client) InstallStatus(command string, interval time.Duration) error {
	segment := "#(" + command + ")"

	current, err := c.GlobalOption("status-right")
	if err != nil {
		return err
	}

	if !strings.Contains(current, segment) {
		value := segment
		if strings.TrimSpace(current) != "" {
			value += statusSeparator + current
		}
		if err := c.SetGlobalOption("status-right", value); err != nil {
			return err
		}
	}

	seconds := int(interval / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	if err := c.SetGlobalOption("status-interval", strconv.Itoa(seconds)); err != nil {
		return err
	}

	// Redraw now instead of waiting for the next interval
	if _, err := c.run("refresh-client", "-S"); err != nil {
		logging.Logger.Warn("Failed to refresh tmux client", "error", err)
	}

	logging.Logger.Info("Installed tmux status segment", "command", command, "interval", seconds)
	return nil
}
