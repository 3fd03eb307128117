package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// Build metadata stamped into the test binary
const (
	BuildCommit  = "integration"
	BuildVersion = "0.0.0-integration"

	versionPackage = "github.com/renato0307/cardwatch/internal/version"
)

// commandTimeout bounds a single cardwatch invocation; the client's own
// request timeout is 15s
const commandTimeout = 30 * time.Second

var (
	binaryPath string
	buildErr   error
	buildOnce  sync.Once
)

// CommandResult holds the result of running a CLI command
type CommandResult struct {
	ExitCode int
	Stderr   string
	Stdout   string
}

// BuildBinary compiles cardwatch once per test run with the integration
// build metadata. go-sqlite3 needs cgo, so it is forced on.
func BuildBinary() (string, error) {
	buildOnce.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			buildErr = err
			return
		}

		dir, err := os.MkdirTemp("", "cardwatch-integration-*")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(dir, "cardwatch")
		if runtime.GOOS == "windows" {
			binaryPath += ".exe"
		}

		ldflags := strings.Join([]string{
			"-X " + versionPackage + ".Version=" + BuildVersion,
			"-X " + versionPackage + ".Commit=" + BuildCommit,
			"-X " + versionPackage + ".GoVersion=" + runtime.Version(),
		}, " ")

		var stderr bytes.Buffer
		cmd := exec.Command("go", "build", "-ldflags", ldflags, "-o", binaryPath, ".")
		cmd.Dir = root
		cmd.Env = append(os.Environ(), "CGO_ENABLED=1")
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			buildErr = fmt.Errorf("go build failed: %w\n%s", err, stderr.String())
		}
	})

	return binaryPath, buildErr
}

// CleanupBinary removes the compiled binary and its temp directory
func CleanupBinary() {
	if binaryPath != "" {
		_ = os.RemoveAll(filepath.Dir(binaryPath))
	}
}

// RunCommand runs cardwatch inside env and captures its output.
// A timeout is reported as exit code -1.
func RunCommand(tb testing.TB, env *TestEnvironment, args ...string) CommandResult {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Env = env.Environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		tb.Logf("cardwatch %v timed out after %v", args, commandTimeout)
		result.ExitCode = -1
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		tb.Logf("cardwatch %v could not run: %v", args, err)
		result.ExitCode = -1
	}
	return result
}

// RunShow points env at op with a credential and runs `cardwatch show` with args
func RunShow(tb testing.TB, env *TestEnvironment, op *FakeOperator, args ...string) CommandResult {
	tb.Helper()

	env.UseOperator(op)
	return RunCommand(tb, env, append([]string{"show"}, args...)...)
}

// moduleRoot walks up from this file to the directory holding go.mod
func moduleRoot() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("cannot locate harness source file")
	}

	dir := filepath.Dir(file)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above " + filepath.Dir(file))
		}
		dir = parent
	}
}
