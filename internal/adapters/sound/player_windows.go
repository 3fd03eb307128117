//go:build windows

package sound

// candidates plays system sounds through PowerShell
func candidates(name string) []command {
	var soundCommands []string

	switch name {
	case CueError:
		soundCommands = []string{
			"[System.Media.SystemSounds]::Hand.Play()",
			"[System.Media.SystemSounds]::Beep.Play()",
		}
	default:
		soundCommands = []string{
			"[System.Media.SystemSounds]::Asterisk.Play()",
			"[System.Media.SystemSounds]::Beep.Play()",
		}
	}

	cmds := make([]command, 0, len(soundCommands))
	for _, c := range soundCommands {
		cmds = append(cmds, command{name: "powershell", args: []string{"-c", c}})
	}
	return cmds
}
