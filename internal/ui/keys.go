package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/renato0307/cardwatch/internal/theme"
)

// KeyMap contains the watch screen shortcuts
type KeyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Refresh   key.Binding
}

// NewKeyMap creates the default key bindings
func NewKeyMap() KeyMap {
	return KeyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh now"),
		),
	}
}

// ShortHelp returns the bindings shown in the bottom bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}

// renderHelp renders bindings as "key label • key label"
func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, theme.HelpKeyStyle.Render(h.Key)+" "+h.Desc)
	}
	return theme.HelpStyle.Render(strings.Join(parts, " • "))
}
