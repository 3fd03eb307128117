//go:build !darwin && !linux && !windows

package desktop

import "github.com/renato0307/cardwatch/internal/domain"

func notificationCommand(domain.Alert) (string, []string) {
	return "", nil
}
