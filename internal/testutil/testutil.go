// Package testutil provides shared test utilities and host fakes.
//
// The fakes implement the host interfaces with recorded calls and
// injectable errors so component tests never need a running simulation.
package testutil

import (
	"fmt"
	"testing"

	"github.com/banshee-data/velocity.assist/internal/monitoring"
)

// MuteLogs silences the monitoring logger for the duration of the test.
// Tests that call it must not run in parallel with tests that inspect logs.
func MuteLogs(t *testing.T) {
	t.Helper()
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = original })
}

// CaptureLogs redirects the monitoring logger into the returned slice
// pointer for the duration of the test.
func CaptureLogs(t *testing.T) *[]string {
	t.Helper()
	original := monitoring.Logf
	var lines []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { monitoring.Logf = original })
	return &lines
}
