// Package harness provides utilities for integration testing the cardwatch CLI.
// It handles binary compilation, environment isolation, command execution
// and a fake card operator endpoint.
//
// Environment variables managed:
//   - CARDWATCH_HOME: Isolated per test (temp directory)
//   - CARDWATCH_DEBUG: Disabled to reduce noise
//   - CARDWATCH_COOKIE: Cleared unless the test sets it
package harness
