package sound

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ports"
)

// Sound cue names understood by PlaySoundNamed
const (
	CueDefault = "default"
	CueError   = "error"
)

// command is one way of producing a sound on the current platform
type command struct {
	name string
	args []string
}

// Player implements ports.SoundPlayer
type Player struct {
	bell io.Writer
	run  func(name string, args ...string) error
}

var _ ports.SoundPlayer = (*Player)(nil)

// NewPlayer creates a new sound player
func NewPlayer() *Player {
	return &Player{
		bell: os.Stdout,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// PlaySound plays the default notification sound
func (p *Player) PlaySound() error {
	return p.PlaySoundNamed(CueDefault)
}

// PlaySoundNamed plays the named cue. Unknown names play the default cue.
// Platform-specific candidates are in player_*.go files with build tags.
func (p *Player) PlaySoundNamed(name string) error {
	for _, c := range candidates(name) {
		if err := p.run(c.name, c.args...); err != nil {
			logging.Logger.Debug("Sound command failed", "command", c.name, "cue", name, "error", err)
			continue
		}
		return nil
	}

	return p.terminalBell()
}

// terminalBell outputs a terminal bell character as fallback
func (p *Player) terminalBell() error {
	if _, err := fmt.Fprint(p.bell, "\a"); err != nil {
		return fmt.Errorf("failed to ring terminal bell: %w", err)
	}
	return nil
}
