package integration_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/cardwatch/test/integration/harness"
)

func TestStatusLine(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.UseOperator(newOperator(t))

	result := harness.RunCommand(t, env, "status")

	harness.AssertSuccess(t, result)
	line := strings.TrimSpace(result.Stdout)
	assert.True(t, strings.HasPrefix(line, "card 2/3GB 66.67% "), "unexpected status line %q", line)
	assert.NotContains(t, line, "top up!")
}

func TestStatusFailure(t *testing.T) {
	op := newOperator(t)
	op.FailFetch(http.StatusServiceUnavailable)
	env := harness.NewTestEnvironment(t)
	env.UseOperator(op)

	result := harness.RunCommand(t, env, "status")

	harness.AssertSuccess(t, result)
	assert.Equal(t, "card: request failed", strings.TrimSpace(result.Stdout))
}

func TestStatusWithoutCredential(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "status")

	harness.AssertSuccess(t, result)
	assert.Equal(t, "card: run cardwatch setup", strings.TrimSpace(result.Stdout))
}
