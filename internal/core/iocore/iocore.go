// Package iocore registers Huckleberry's I/O primitives. print and
// println are grounded on the Rust original's lib/src/modules/io.rs.
// str and read-line have no original_source counterpart - io.rs defines
// only print/println - they are student-added conveniences built on the
// same resolve-and-render shape as print/println.
package iocore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pearigee/huckleberry/internal/core/registry"
	"github.com/pearigee/huckleberry/internal/eval"
	"github.com/pearigee/huckleberry/internal/value"
)

var stdin = bufio.NewReader(os.Stdin)

// setStdin swaps the reader read-line consumes from; used by tests so
// read-line isn't forever bound to the process's real standard input.
func setStdin(r io.Reader) {
	stdin = bufio.NewReader(r)
}

func init() {
	registry.Register("print", value.Range(0, value.Unbounded), print)
	registry.Register("println", value.Range(0, value.Unbounded), println)
	registry.Register("str", value.Range(0, value.Unbounded), str)
	registry.Register("read-line", value.Count(0), readLine)
}

func print(args []value.Value, env *value.Env) (value.Value, error) {
	s, err := concatDisplay(args, env)
	if err != nil {
		return value.Nil, err
	}
	fmt.Print(s)
	return value.Nil, nil
}

func println(args []value.Value, env *value.Env) (value.Value, error) {
	s, err := concatDisplay(args, env)
	if err != nil {
		return value.Nil, err
	}
	fmt.Println(s)
	return value.Nil, nil
}

func str(args []value.Value, env *value.Env) (value.Value, error) {
	s, err := concatDisplay(args, env)
	if err != nil {
		return value.Nil, err
	}
	return value.Str(s), nil
}

func readLine(args []value.Value, env *value.Env) (value.Value, error) {
	line, err := stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return value.Nil, err
	}
	if err == io.EOF && line == "" {
		return value.Nil, nil
	}
	return value.Str(strings.TrimRight(line, "\r\n")), nil
}

func concatDisplay(args []value.Value, env *value.Env) (string, error) {
	vals, err := eval.ResolveArgs(args, env)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, v := range vals {
		b.WriteString(v.String())
	}
	return b.String(), nil
}
