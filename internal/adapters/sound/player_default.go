//go:build !darwin && !linux && !windows

package sound

// candidates is empty on unsupported platforms, so the terminal bell is used
func candidates(string) []command {
	return nil
}
