package repl_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pearigee/huckleberry/internal/core"
	"github.com/pearigee/huckleberry/internal/repl"
)

func TestReplEvaluatesAndPrintsResults(t *testing.T) {
	env, err := core.NewRootEnv()
	require.NoError(t, err)

	in := strings.NewReader("(+ 1 2)\n")
	var out strings.Builder
	code := repl.Run(in, &out, env, false)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "3")
	assert.Contains(t, out.String(), "Goodbye")
}

func TestReplPromptsForContinuationOnUnmatchedDelimiter(t *testing.T) {
	env, err := core.NewRootEnv()
	require.NoError(t, err)

	in := strings.NewReader("(+ 1\n2)\n")
	var out strings.Builder
	code := repl.Run(in, &out, env, false)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "...")
	assert.Contains(t, out.String(), "3")
}

// The os.Pipe reader blocks Scan() until the writer closes, so Run is still waiting
// on a line when the interrupt arrives.
func TestReplExitsCleanlyOnInterrupt(t *testing.T) {
	env, err := core.NewRootEnv()
	require.NoError(t, err)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()

	var out strings.Builder
	done := make(chan int, 1)
	go func() { done <- repl.Run(r, &out, env, false) }()

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, proc.Signal(os.Interrupt))

	select {
	case code := <-done:
		assert.Equal(t, 0, code)
		assert.Contains(t, out.String(), "Interrupt")
	case <-time.After(2 * time.Second):
		t.Fatal("repl.Run did not exit after SIGINT")
	}
}

func TestReplReportsEvalErrorsAndContinues(t *testing.T) {
	env, err := core.NewRootEnv()
	require.NoError(t, err)

	in := strings.NewReader("(+ 1 unbound)\n(+ 1 1)\n")
	var out strings.Builder
	code := repl.Run(in, &out, env, false)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Error:")
	assert.Contains(t, out.String(), "2")
}
