// Package repl implements Huckleberry's line-editor REPL: read a line, try
// to parse the buffered input so far, prompt for continuation lines while a
// delimiter is unmatched, evaluate complete forms, and print the result or
// a rendered error. Grounded on the teacher's cli package for its
// prompt/history/signal-handling shape, adapted from a one-shot command
// runner to a line-at-a-time loop since Huckleberry has no command/plan
// model to drive it.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/pearigee/huckleberry/internal/display"
	"github.com/pearigee/huckleberry/internal/eval"
	"github.com/pearigee/huckleberry/internal/herr"
	"github.com/pearigee/huckleberry/internal/parser"
	"github.com/pearigee/huckleberry/internal/value"
)

const (
	prompt    = "huck> "
	contPrompt = "  ... "
)

// Run drives the REPL loop against env until stdin closes (Ctrl-D) or the
// process receives SIGINT (Ctrl-C); both exit cleanly, each printing its
// own label first, per spec.md §6. Since a blocked Scan() can't be woken by
// a signal alone, lines are read on a background goroutine and raced
// against the signal channel in a select, so Ctrl-C can interrupt a pending
// read. Run returns an exit code rather than calling os.Exit so the loop
// stays testable against in-memory streams; the caller (cmd/huck's main)
// is responsible for the actual process exit.
func Run(in io.Reader, out io.Writer, env *value.Env, useColor bool) int {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	var history []string
	var buf strings.Builder

	fmt.Fprint(out, prompt)
	for {
		select {
		case <-sigc:
			fmt.Fprintln(out, "\nInterrupt")
			return 0

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out, "\nGoodbye")
				return 0
			}

			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(line)

			source := buf.String()
			forms, err := parser.Parse(source)
			if err != nil {
				if isUnmatchedDelimiter(err) {
					fmt.Fprint(out, contPrompt)
					continue
				}
				display.FormatError(out, source, err, useColor)
				buf.Reset()
				fmt.Fprint(out, prompt)
				continue
			}

			history = append(history, source)
			buf.Reset()

			result := value.Nil
			var evalErr error
			for _, form := range forms {
				result, evalErr = eval.EvalExpr(form, env)
				if evalErr != nil {
					break
				}
			}
			if evalErr != nil {
				display.FormatError(out, source, evalErr, useColor)
			} else {
				fmt.Fprintln(out, result.String())
			}
			fmt.Fprint(out, prompt)
		}
	}
}

func isUnmatchedDelimiter(err error) bool {
	pe, ok := err.(*herr.ParseError)
	if !ok {
		return false
	}
	return strings.HasPrefix(pe.Msg, "unmatched ")
}
