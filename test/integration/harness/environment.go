package harness

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnvironment provides an isolated test environment with its own CARDWATCH_HOME.
type TestEnvironment struct {
	Home     string
	extraEnv map[string]string
	tb       testing.TB
}

// NewTestEnvironment creates an isolated test environment with a temp CARDWATCH_HOME.
// The temp directory is automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	return &TestEnvironment{
		Home:     tb.TempDir(),
		extraEnv: make(map[string]string),
		tb:       tb,
	}
}

// Environ returns environment variables configured for test isolation.
// It filters out CARDWATCH_* variables and sets:
//   - CARDWATCH_HOME to the temp directory
//   - CARDWATCH_DEBUG to empty string (disables debug logging)
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+2+len(e.extraEnv))

	for _, kv := range os.Environ() {
		key := strings.SplitN(kv, "=", 2)[0]
		if strings.HasPrefix(key, "CARDWATCH_") || e.extraEnv[key] != "" {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"CARDWATCH_HOME="+e.Home,
		"CARDWATCH_DEBUG=",
	)

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// SettingsPath returns the path to the test settings file.
func (e *TestEnvironment) SettingsPath() string {
	return filepath.Join(e.Home, "settings.json")
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}

// WriteSettings writes settings.json into the isolated home.
func (e *TestEnvironment) WriteSettings(settings map[string]any) {
	e.tb.Helper()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		e.tb.Fatalf("Failed to marshal settings: %v", err)
	}
	if err := os.WriteFile(e.SettingsPath(), data, 0600); err != nil {
		e.tb.Fatalf("Failed to write settings: %v", err)
	}
}

// ReadSettings reads settings.json from the isolated home.
func (e *TestEnvironment) ReadSettings() map[string]any {
	e.tb.Helper()

	data, err := os.ReadFile(e.SettingsPath())
	if err != nil {
		e.tb.Fatalf("Failed to read settings: %v", err)
	}
	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		e.tb.Fatalf("Invalid settings.json: %v", err)
	}
	return settings
}

// OperatorCookie is the credential UseOperator hands to cardwatch
const OperatorCookie = "session-token"

// UseOperator points settings.json at op, keeping other keys, and supplies
// the credential through CARDWATCH_COOKIE
func (e *TestEnvironment) UseOperator(op *FakeOperator) {
	e.tb.Helper()

	settings := map[string]any{}
	if _, err := os.Stat(e.SettingsPath()); err == nil {
		settings = e.ReadSettings()
	}
	settings["base_url"] = op.URL()
	e.WriteSettings(settings)
	e.SetEnv("CARDWATCH_COOKIE", OperatorCookie)
}
