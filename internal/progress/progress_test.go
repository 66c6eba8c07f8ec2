package progress

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr swaps os.Stderr for the duration of fn and returns what was
// written to it.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestFinishSkipped(t *testing.T) {
	out := captureStderr(t, func() {
		sp := NewSpinner("Refreshing")
		sp.FinishSkipped("unchanged")
	})
	assert.Contains(t, out, "Refreshing skipped (unchanged)")
}

func TestFinishError(t *testing.T) {
	out := captureStderr(t, func() {
		sp := NewSpinner("Fetching call logs")
		sp.FinishError(io.ErrUnexpectedEOF)
	})
	assert.Contains(t, out, "Fetching call logs error: unexpected EOF")
}

func TestTrackerTicksToCompletion(t *testing.T) {
	out := captureStderr(t, func() {
		tr := NewTracker("Writing report artifacts", 3)
		for i := 0; i < 3; i++ {
			tr.Tick()
		}
		tr.FinishSuccess()
	})
	// A finished tracker clears itself; nothing should survive on stderr
	// besides bar redraws (ANSI control output).
	assert.NotContains(t, out, "error")
	assert.NotContains(t, out, "skipped")
}
