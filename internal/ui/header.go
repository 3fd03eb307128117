package ui

import (
	"fmt"

	"github.com/renato0307/cardwatch/internal/theme"
	"github.com/renato0307/cardwatch/internal/version"
)

// renderHeader creates the header shown above the watch widget.
// In dev mode the build information is appended to the app name.
func renderHeader(devMode bool) string {
	appNameLine := theme.AppNameStyle.Render("cardwatch")
	if devMode {
		commit := version.Commit
		if len(commit) > 7 {
			commit = commit[:7] // Short commit hash
		}
		appNameLine += theme.VersionStyle.Render(fmt.Sprintf(" %s | %s | %s | %s",
			version.Version,
			commit,
			version.Date,
			version.GoVersion))
	}

	return appNameLine + "\n" + theme.TaglineStyle.Render(version.Tagline) + "\n"
}
