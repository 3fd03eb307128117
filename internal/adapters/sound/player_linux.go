//go:build linux

package sound

// candidates tries paplay (PulseAudio) then aplay (ALSA)
func candidates(name string) []command {
	switch name {
	case CueError:
		return []command{
			{"paplay", []string{"/usr/share/sounds/freedesktop/stereo/dialog-warning.oga"}},
			{"aplay", []string{"/usr/share/sounds/freedesktop/stereo/dialog-warning.wav"}},
			{"paplay", []string{"/usr/share/sounds/freedesktop/stereo/bell.oga"}},
		}
	default:
		return []command{
			{"paplay", []string{"/usr/share/sounds/freedesktop/stereo/message.oga"}},
			{"aplay", []string{"/usr/share/sounds/freedesktop/stereo/message.wav"}},
			{"paplay", []string{"/usr/share/sounds/freedesktop/stereo/bell.oga"}},
		}
	}
}
