package harness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/cardwatch/internal/domain"
)

// AssertSuccess verifies the command exited 0
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Equal(tb, 0, result.ExitCode, "expected exit 0\nstdout: %s\nstderr: %s", result.Stdout, result.Stderr)
}

// AssertFailure verifies the command exited non-zero
func AssertFailure(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.NotEqual(tb, 0, result.ExitCode, "expected a non-zero exit\nstdout: %s", result.Stdout)
}

// AssertExitCode verifies the exact exit code
func AssertExitCode(tb testing.TB, result CommandResult, expected int) {
	tb.Helper()
	assert.Equal(tb, expected, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
}

// AssertStdoutContains verifies stdout contains expected
func AssertStdoutContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, expected)
}

// AssertStdoutNotContains verifies stdout does not contain unexpected
func AssertStdoutNotContains(tb testing.TB, result CommandResult, unexpected string) {
	tb.Helper()
	assert.NotContains(tb, result.Stdout, unexpected)
}

// AssertStderrContains verifies stderr contains expected
func AssertStderrContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, expected)
}

// AssertValidJSON decodes stdout into target
func AssertValidJSON(tb testing.TB, result CommandResult, target any) {
	tb.Helper()
	require.NoError(tb, json.Unmarshal([]byte(result.Stdout), target), "stdout is not JSON: %s", result.Stdout)
}

// AssertJSONContains verifies stdout is a JSON object with key set to expected
func AssertJSONContains(tb testing.TB, result CommandResult, key string, expected any) {
	tb.Helper()
	var data map[string]any
	AssertValidJSON(tb, result, &data)
	assert.Equal(tb, expected, data[key], "JSON key %q", key)
}

// DecodeSummary decodes the success payload printed by `show --format json`
func DecodeSummary(tb testing.TB, result CommandResult) domain.CardSummary {
	tb.Helper()
	var summary domain.CardSummary
	AssertValidJSON(tb, result, &summary)
	return summary
}

// AssertFailurePayload verifies stdout is the fixed failure payload
func AssertFailurePayload(tb testing.TB, result CommandResult) {
	tb.Helper()
	var notice domain.FailureNotice
	AssertValidJSON(tb, result, &notice)
	assert.Equal(tb, domain.FailureNotice{Detail: domain.FailureDetail, Message: domain.FailureMessage}, notice)
}

// AssertLastNotified runs `ledger show` in env and checks the stored date.
// An empty date means the ledger has no entry.
func AssertLastNotified(tb testing.TB, env *TestEnvironment, date string) {
	tb.Helper()

	result := RunCommand(tb, env, "ledger", "show", "--format", "json")
	AssertSuccess(tb, result)

	var view struct {
		Key          string `json:"key"`
		LastNotified string `json:"last_notified"`
	}
	AssertValidJSON(tb, result, &view)
	assert.Equal(tb, domain.LastNotifyKey, view.Key)
	assert.Equal(tb, date, view.LastNotified)
}
