//go:build linux

package desktop

import "github.com/renato0307/cardwatch/internal/domain"

// notificationCommand uses notify-send from libnotify
func notificationCommand(alert domain.Alert) (string, []string) {
	return "notify-send", []string{"--app-name=cardwatch", "--urgency=normal", alert.Title, alert.Body}
}
