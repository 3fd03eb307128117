package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHome_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CARDWATCH_HOME", dir)

	assert.Equal(t, dir, GetHome())
	assert.Equal(t, filepath.Join(dir, "ledger.db"), GetDBPath())
	assert.Equal(t, filepath.Join(dir, "settings.json"), GetSettingsPath())
	assert.Equal(t, filepath.Join(dir, "run.lock"), GetLockPath())
	assert.Equal(t, filepath.Join(dir, "ssh"), GetSSHDir())
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, homeDir, ExpandPath("~"))
	assert.Equal(t, filepath.Join(homeDir, ".cardwatch"), ExpandPath("~/.cardwatch"))
	assert.Equal(t, "/var/lib/cardwatch", ExpandPath("/var/lib/cardwatch"))
	assert.Equal(t, "", ExpandPath(""))
}
