// Package herr implements Huckleberry's closed error taxonomy. Every stage
// - scanner, parser, evaluator - returns one of these types rather than a
// bare error string, so the REPL and CLI can render a consistent debug form
// and, where a source line is known, a source snippet the way the teacher's
// pkgs/parser.ParseError does.
package herr

import (
	"fmt"
	"strings"
)

// Sourced is implemented by errors that carry a source line, letting the
// REPL/CLI render a snippet for scanner and parse failures.
type Sourced interface {
	error
	Line() int
}

// ScannerError: unexpected character, unterminated string, unparseable number.
type ScannerError struct {
	Msg    string
	SrcLine int
}

func (e *ScannerError) Error() string { return fmt.Sprintf("scanner error: %s", e.Msg) }
func (e *ScannerError) Line() int     { return e.SrcLine }

// ParseError: unexpected token, unmatched closer, odd-length map literal.
type ParseError struct {
	Msg    string
	SrcLine int
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error: %s", e.Msg) }
func (e *ParseError) Line() int     { return e.SrcLine }

// UnboundVar: a symbol is not resolvable in any enclosing scope.
type UnboundVar struct{ Name string }

func (e *UnboundVar) Error() string { return fmt.Sprintf("unbound variable: %s", e.Name) }

// UnboundMethod: no methods are registered under an identifier at all.
type UnboundMethod struct{ Name string }

func (e *UnboundMethod) Error() string { return fmt.Sprintf("unbound method: %s", e.Name) }

// UnexpectedForm: syntactic misuse, e.g. `def` with a non-symbol target.
type UnexpectedForm struct {
	Msg   string
	Value string // debug rendering of the offending value
}

func (e *UnexpectedForm) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("unexpected form: %s", e.Msg)
	}
	return fmt.Sprintf("unexpected form: %s (%s)", e.Msg, e.Value)
}

// NotAFunction: the head of a list resolved to something non-callable.
type NotAFunction struct{ Rendered string }

func (e *NotAFunction) Error() string { return fmt.Sprintf("not a function: %s", e.Rendered) }

// NotAMethod: no registered method for an identifier matched the receiver.
type NotAMethod struct{ ID string }

func (e *NotAMethod) Error() string { return fmt.Sprintf("not a method: %s", e.ID) }

// InvalidEmptyList: () or <> was evaluated.
type InvalidEmptyList struct{ Msg string }

func (e *InvalidEmptyList) Error() string { return fmt.Sprintf("invalid empty list: %s", e.Msg) }

// SetUninitializedVar: set! of a name with no enclosing binding.
type SetUninitializedVar struct{ Name string }

func (e *SetUninitializedVar) Error() string {
	return fmt.Sprintf("set! of uninitialized variable: %s", e.Name)
}

// InvalidArity: an argument count violated a callable's declared arity.
type InvalidArity struct {
	Name     string
	Expected string // Arity.String()
}

func (e *InvalidArity) Error() string {
	return fmt.Sprintf("invalid arity for %s: expected %s arguments", e.Name, e.Expected)
}

// InvalidType: a primitive received a wrong-typed argument.
type InvalidType struct {
	FnName   string
	Offending string // debug rendering of the offending value
}

func (e *InvalidType) Error() string {
	return fmt.Sprintf("invalid type in %s: %s", e.FnName, e.Offending)
}

// EnvironmentNotFound: an environment reference was consulted after
// teardown - an internal consistency failure, never expected to surface
// through normal evaluation since Envs are ordinary Go pointers kept alive
// by the references that use them.
type EnvironmentNotFound struct{}

func (e *EnvironmentNotFound) Error() string { return "environment not found" }

// Snippet renders a Rust/Clang-style source pointer for any Sourced error,
// adapted from the teacher's ParseError.createCodeSnippet.
func Snippet(src string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  --> line %d\n", line)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%3d | %s\n", line, lines[line-1])
	return b.String()
}
