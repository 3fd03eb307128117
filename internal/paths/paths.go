package paths

import (
	"os"
	"path/filepath"
)

// GetHome returns CARDWATCH_HOME or ~/.cardwatch default
func GetHome() string {
	home := os.Getenv("CARDWATCH_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".cardwatch"
		}
		return filepath.Join(homeDir, ".cardwatch")
	}
	return ExpandPath(home)
}

// GetDBPath returns $CARDWATCH_HOME/ledger.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "ledger.db")
}

// GetLockPath returns $CARDWATCH_HOME/run.lock
func GetLockPath() string {
	return filepath.Join(GetHome(), "run.lock")
}

// GetSettingsPath returns $CARDWATCH_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// GetSSHDir returns $CARDWATCH_HOME/ssh
func GetSSHDir() string {
	return filepath.Join(GetHome(), "ssh")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
