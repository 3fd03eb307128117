package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/cardwatch/internal/adapters/filelock"
	"github.com/renato0307/cardwatch/internal/adapters/redisstore"
	"github.com/renato0307/cardwatch/internal/adapters/storage"
	"github.com/renato0307/cardwatch/internal/config"
	"github.com/renato0307/cardwatch/internal/domain"
)

func intPtr(v int) *int { return &v }

func newTestContainer(t *testing.T, settings *config.Settings) *Container {
	t.Helper()
	t.Setenv("CARDWATCH_HOME", t.TempDir())

	c, err := NewContainer(settings)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestEffectiveSettings_Precedence(t *testing.T) {
	cli := &CLI{NearExpiryDays: 5}
	cli.SetSettings(&config.Settings{
		Cookie:         "from-file",
		LedgerBackend:  config.LedgerBackendRedis,
		NearExpiryDays: intPtr(7),
		RedisAddr:      "localhost:6379",
	})

	settings := cli.EffectiveSettings()
	assert.Equal(t, "from-file", settings.Cookie)
	assert.Equal(t, config.LedgerBackendRedis, settings.Ledger())
	// NearExpiryDays on the CLI has already been resolved by AfterApply
	assert.Equal(t, 5, *settings.NearExpiryDays)

	cli.Cookie = "from-flag"
	cli.LedgerBackend = "MEMORY"
	settings = cli.EffectiveSettings()
	assert.Equal(t, "from-flag", settings.Cookie)
	assert.Equal(t, config.LedgerBackendMemory, settings.Ledger())
}

// unsetEnv clears key for the test and restores it afterwards
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestApplySettings_ExplicitFlagWins(t *testing.T) {
	for _, key := range []string{"CARDWATCH_DEBUG", "CARDWATCH_MAX_LOG_FILES", "CARDWATCH_NEAR_EXPIRY_DAYS"} {
		unsetEnv(t, key)
	}

	tests := []struct {
		name     string
		passed   map[string]bool
		wantDays int
		wantLogs int
	}{
		{"flags at default value but given", map[string]bool{"near-expiry-days": true, "max-log-files": true}, 3, 100},
		{"flags not given", map[string]bool{}, 7, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := &CLI{MaxLogFiles: 100, NearExpiryDays: 3}
			cli.SetSettings(&config.Settings{MaxLogFiles: intPtr(5), NearExpiryDays: intPtr(7)})

			cli.applySettings(tt.passed)

			assert.Equal(t, tt.wantDays, cli.NearExpiryDays)
			assert.Equal(t, tt.wantLogs, cli.MaxLogFiles)
		})
	}
}

func TestApplySettings_EnvBeatsSettingsFile(t *testing.T) {
	t.Setenv("CARDWATCH_NEAR_EXPIRY_DAYS", "3")

	cli := &CLI{NearExpiryDays: 3}
	cli.SetSettings(&config.Settings{NearExpiryDays: intPtr(7)})
	cli.applySettings(map[string]bool{})

	assert.Equal(t, 3, cli.NearExpiryDays)
}

func TestAfterApply_ExplicitThresholdAtDefaultValue(t *testing.T) {
	t.Setenv("CARDWATCH_HOME", t.TempDir())
	for _, key := range []string{"CARDWATCH_COOKIE", "CARDWATCH_DEBUG", "CARDWATCH_LEDGER_BACKEND", "CARDWATCH_MAX_LOG_FILES", "CARDWATCH_NEAR_EXPIRY_DAYS"} {
		unsetEnv(t, key)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"given", []string{"--near-expiry-days", "3", "ledger", "show"}, 3},
		{"omitted", []string{"ledger", "show"}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI
			cli.SetSettings(&config.Settings{
				LedgerBackend:  config.LedgerBackendMemory,
				NearExpiryDays: intPtr(7),
			})
			parser, err := kong.New(&cli, kong.Name("cardwatch"), kong.Exit(func(int) {}))
			require.NoError(t, err)

			_, err = parser.Parse(tt.args)
			require.NoError(t, err)
			t.Cleanup(func() { cli.Close() })

			assert.Equal(t, tt.want, cli.NearExpiryDays)
			assert.Equal(t, tt.want, cli.Container.Gate.Threshold())
		})
	}
}

func TestResolveFormat(t *testing.T) {
	fromFile := &config.Settings{Format: "json"}

	assert.Equal(t, "widget", resolveFormat("widget", fromFile))
	assert.Equal(t, "json", resolveFormat("", fromFile))
	assert.Equal(t, "widget", resolveFormat("", &config.Settings{}))
	assert.Equal(t, "widget", resolveFormat("", nil))
}

func TestEffectiveSettings_DoesNotMutateLoadedSettings(t *testing.T) {
	loaded := &config.Settings{Cookie: "from-file"}
	cli := &CLI{Cookie: "from-flag", NearExpiryDays: 3}
	cli.SetSettings(loaded)

	cli.EffectiveSettings()

	assert.Equal(t, "from-file", loaded.Cookie)
	assert.Nil(t, loaded.NearExpiryDays)
}

func TestNewContainer_Wiring(t *testing.T) {
	c := newTestContainer(t, &config.Settings{NearExpiryDays: intPtr(4)})

	assert.IsType(t, &storage.SQLiteStore{}, c.Ledger)
	assert.Equal(t, 4, c.Gate.Threshold())
	assert.NotNil(t, c.Alerter)
	assert.NotNil(t, c.SoundPlayer)
	assert.IsType(t, &filelock.Lock{}, c.Locker)
}

func TestNewContainer_MemoryBackend(t *testing.T) {
	c := newTestContainer(t, &config.Settings{LedgerBackend: config.LedgerBackendMemory, NearExpiryDays: intPtr(3)})

	assert.IsType(t, &storage.MemoryStore{}, c.Ledger)
}

func TestNewContainer_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	c := newTestContainer(t, &config.Settings{
		LedgerBackend:  config.LedgerBackendRedis,
		NearExpiryDays: intPtr(3),
		RedisAddr:      mr.Addr(),
	})

	assert.IsType(t, &redisstore.Store{}, c.Ledger)

	lock, ok := c.Locker.(*redisstore.Lock)
	require.True(t, ok, "a shared ledger needs a lock every host can see")
	assert.Equal(t, "cardwatch:traffic_card_last_notify_date:lock", lock.Key())
}

func TestNewContainer_UnreachableLedgerFallsBackToMemory(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c := newTestContainer(t, &config.Settings{
		LedgerBackend:  config.LedgerBackendRedis,
		NearExpiryDays: intPtr(3),
		RedisAddr:      addr,
	})

	assert.IsType(t, &storage.MemoryStore{}, c.Ledger)
	assert.IsType(t, &filelock.Lock{}, c.Locker)
}

func TestContainer_NewCardService_MissingCredential(t *testing.T) {
	c := newTestContainer(t, &config.Settings{NearExpiryDays: intPtr(3)})

	_, err := c.NewCardService(nil)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestContainer_NewCardService(t *testing.T) {
	c := newTestContainer(t, &config.Settings{Cookie: "abc123", NearExpiryDays: intPtr(3)})

	svc, err := c.NewCardService(nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestLedgerShow(t *testing.T) {
	c := newTestContainer(t, &config.Settings{LedgerBackend: config.LedgerBackendMemory, NearExpiryDays: intPtr(3)})
	cli := &CLI{Container: c}

	var out bytes.Buffer
	require.NoError(t, (&LedgerShowCmd{Format: "table"}).render(context.Background(), cli, &out))
	assert.Contains(t, out.String(), "Last notified:    never")
	assert.Contains(t, out.String(), domain.LastNotifyKey)

	require.NoError(t, c.Ledger.Set(context.Background(), domain.LastNotifyKey, "2024-01-02"))

	out.Reset()
	require.NoError(t, (&LedgerShowCmd{Format: "json"}).render(context.Background(), cli, &out))

	var view ledgerView
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	assert.Equal(t, "2024-01-02", view.LastNotified)
	assert.Equal(t, 3, view.Threshold)
	assert.Equal(t, "memory (not persisted)", view.Location)
}

func TestApplySetupAnswers(t *testing.T) {
	settings := &config.Settings{LedgerBackend: config.LedgerBackendRedis, RedisAddr: "redis:6379"}

	err := applySetupAnswers(settings, setupAnswers{
		Cookie:         "  abc123 ",
		LedgerBackend:  config.LedgerBackendSQLite,
		NearExpiryDays: "5",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc123", settings.Cookie)
	assert.Equal(t, 5, *settings.NearExpiryDays)
	assert.Equal(t, "", settings.LedgerBackend)
	assert.Equal(t, "redis:6379", settings.RedisAddr)
}

func TestApplySetupAnswers_Invalid(t *testing.T) {
	err := applySetupAnswers(&config.Settings{}, setupAnswers{NearExpiryDays: "3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credential required")

	err = applySetupAnswers(&config.Settings{}, setupAnswers{Cookie: "abc", NearExpiryDays: "soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whole number")

	err = applySetupAnswers(&config.Settings{}, setupAnswers{Cookie: "abc", NearExpiryDays: "-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

type fakeStatusInstaller struct {
	command  string
	err      error
	interval time.Duration
	running  bool
}

func (f *fakeStatusInstaller) InstallStatus(command string, interval time.Duration) error {
	f.command, f.interval = command, interval
	return f.err
}

func (f *fakeStatusInstaller) ServerRunning() bool { return f.running }

func TestInstallTmuxStatus(t *testing.T) {
	tests := []struct {
		name      string
		installer *fakeStatusInstaller
		want      string
		installed bool
	}{
		{"not running", &fakeStatusInstaller{}, "tmux is not running", false},
		{"installed", &fakeStatusInstaller{running: true}, "tmux status bar updated", true},
		{"install fails", &fakeStatusInstaller{running: true, err: errors.New("boom")}, "Could not update tmux status bar: boom", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			installTmuxStatus(tt.installer, &out)

			assert.Contains(t, out.String(), tt.want)
			if tt.installed {
				assert.Equal(t, "cardwatch status", tt.installer.command)
				assert.Equal(t, 5*time.Minute, tt.installer.interval)
			} else {
				assert.Empty(t, tt.installer.command)
			}
		})
	}
}

func TestSettingsMeta(t *testing.T) {
	t.Setenv("CARDWATCH_HOME", t.TempDir())

	var out bytes.Buffer
	require.NoError(t, (&SettingsMetaCmd{Format: "table"}).render(&out))
	assert.Contains(t, out.String(), "settings.json")
	assert.Contains(t, out.String(), "near_expiry_days")

	out.Reset()
	require.NoError(t, (&SettingsMetaCmd{Format: "json"}).render(&out))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Contains(t, decoded, "settings_file")
	assert.Contains(t, decoded, "format")
}
