package desktop

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ports"
)

// Notifier implements ports.Alerter with a native desktop notification
// followed by a sound cue
type Notifier struct {
	command  func(alert domain.Alert) (string, []string)
	fallback io.Writer
	run      func(ctx context.Context, name string, args ...string) error
	sound    ports.SoundPlayer
}

var _ ports.Alerter = (*Notifier)(nil)

// NotifierOption configures a Notifier
type NotifierOption func(*Notifier)

// WithFallback prints alerts to w on platforms without a notification facility.
// Without it such alerts only reach the log, which keeps full-screen views intact.
func WithFallback(w io.Writer) NotifierOption {
	return func(n *Notifier) {
		n.fallback = w
	}
}

// NewNotifier creates a new Notifier. sound may be nil to stay silent.
func NewNotifier(sound ports.SoundPlayer, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		command: notificationCommand,
		run: func(ctx context.Context, name string, args ...string) error {
			out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
			if err != nil {
				return fmt.Errorf("%s: %w: %s", name, err, out)
			}
			return nil
		},
		sound: sound,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Alert shows the notification. The sound cue is best-effort.
func (n *Notifier) Alert(ctx context.Context, alert domain.Alert) error {
	logging.Logger.Info("Showing desktop notification", "title", alert.Title)

	if err := n.show(ctx, alert); err != nil {
		return fmt.Errorf("failed to show notification: %w", err)
	}

	if n.sound != nil && alert.Sound != "" {
		if err := n.sound.PlaySoundNamed(alert.Sound); err != nil {
			logging.Logger.Warn("Failed to play alert sound", "sound", alert.Sound, "error", err)
		}
	}

	return nil
}

func (n *Notifier) show(ctx context.Context, alert domain.Alert) error {
	name, args := n.command(alert)
	if name == "" {
		logging.Logger.Warn("No desktop notification facility", "title", alert.Title, "body", alert.Body)
		if n.fallback == nil {
			return nil
		}
		_, err := fmt.Fprintf(n.fallback, "%s: %s\n", alert.Title, alert.Body)
		return err
	}

	logging.Logger.Debug("Running notification command", "command", name)
	return n.run(ctx, name, args...)
}
