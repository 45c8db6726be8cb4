package iocore

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pearigee/huckleberry/internal/core/registry"
	"github.com/pearigee/huckleberry/internal/eval"
	"github.com/pearigee/huckleberry/internal/value"
)

func testEnv() *value.Env {
	env := value.NewRoot()
	for _, fn := range registry.All() {
		env.Define(fn.Str, fn)
	}
	return env
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestPrintConcatenatesDisplayForms(t *testing.T) {
	env := testEnv()
	out := captureStdout(t, func() {
		_, err := eval.Eval(`(print "a" 1 "b")`, env)
		require.NoError(t, err)
	})
	assert.Equal(t, "a1b", out)
}

func TestPrintlnAddsNewline(t *testing.T) {
	env := testEnv()
	out := captureStdout(t, func() {
		_, err := eval.Eval(`(println "done")`, env)
		require.NoError(t, err)
	})
	assert.Equal(t, "done\n", out)
}

func TestStrBuildsAString(t *testing.T) {
	env := testEnv()
	v, err := eval.Eval(`(str "x=" 1)`, env)
	require.NoError(t, err)
	assert.Equal(t, "x=1", v.Str)
}

func TestReadLineReturnsTrimmedLine(t *testing.T) {
	setStdin(strings.NewReader("hello world\n"))
	env := testEnv()
	v, err := eval.Eval(`(read-line)`, env)
	require.NoError(t, err)
	assert.Equal(t, "hello world", v.Str)
}

func TestReadLineAtEOFReturnsNil(t *testing.T) {
	setStdin(strings.NewReader(""))
	env := testEnv()
	v, err := eval.Eval(`(read-line)`, env)
	require.NoError(t, err)
	assert.Equal(t, value.KindNil, v.Kind)
}
