// Package display renders errors for the REPL and
// the one-shot CLI path, adapted from the teacher's cli/errors.go
// FormatError.
package display

import (
	"fmt"
	"io"

	"github.com/pearigee/huckleberry/internal/color"
	"github.com/pearigee/huckleberry/internal/herr"
)

// FormatError renders err for terminal output: a red "Error: " prefix, the
// error's message, and - for scanner/parse failures that carry a source
// line - a Rust/Clang-style snippet underneath.
func FormatError(w io.Writer, src string, err error, useColor bool) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s%s\n", color.Colorize("Error: ", color.Red, useColor), err.Error())
	if sourced, ok := err.(herr.Sourced); ok {
		if snippet := herr.Snippet(src, sourced.Line()); snippet != "" {
			fmt.Fprint(w, color.Colorize(snippet, color.Gray, useColor))
		}
	}
}
