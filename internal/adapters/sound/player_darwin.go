//go:build darwin

package sound

// candidates returns afplay invocations for the cue
func candidates(name string) []command {
	var soundFiles []string

	switch name {
	case CueError:
		soundFiles = []string{
			"/System/Library/Sounds/Basso.aiff",
			"/System/Library/Sounds/Funk.aiff",
		}
	default:
		soundFiles = []string{
			"/System/Library/Sounds/Glass.aiff",
			"/System/Library/Sounds/Tink.aiff",
		}
	}

	cmds := make([]command, 0, len(soundFiles))
	for _, f := range soundFiles {
		cmds = append(cmds, command{name: "afplay", args: []string{f}})
	}
	return cmds
}
