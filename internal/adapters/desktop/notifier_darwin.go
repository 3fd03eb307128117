//go:build darwin

package desktop

import (
	"fmt"
	"strconv"

	"github.com/renato0307/cardwatch/internal/domain"
)

// notificationCommand uses osascript. The sound is played separately.
func notificationCommand(alert domain.Alert) (string, []string) {
	script := fmt.Sprintf("display notification %s with title %s",
		strconv.Quote(alert.Body), strconv.Quote(alert.Title))
	return "osascript", []string{"-e", script}
}
