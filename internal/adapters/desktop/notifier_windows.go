//go:build windows

package desktop

import (
	"fmt"
	"strings"

	"github.com/renato0307/cardwatch/internal/domain"
)

const balloonScript = `Add-Type -AssemblyName System.Windows.Forms
$n = New-Object System.Windows.Forms.NotifyIcon
$n.Icon = [System.Drawing.SystemIcons]::Information
$n.Visible = $true
$n.ShowBalloonTip(5000, '%s', '%s', 'Warning')
Start-Sleep -Seconds 5
$n.Dispose()`

// notificationCommand shows a balloon tip through PowerShell
func notificationCommand(alert domain.Alert) (string, []string) {
	escape := func(s string) string { return strings.ReplaceAll(s, "'", "''") }
	return "powershell", []string{"-NoProfile", "-c", fmt.Sprintf(balloonScript, escape(alert.Title), escape(alert.Body))}
}
