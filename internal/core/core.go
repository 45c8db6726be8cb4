// Package core assembles Huckleberry's built-in module: the arithmetic,
// data, I/O, and special-form primitives registered by its four
// subpackages' init() functions, plus the surface-language prelude that
// rides on top of them.
package core

import (
	"github.com/pearigee/huckleberry/internal/core/registry"
	_ "github.com/pearigee/huckleberry/internal/core/arithcore"
	_ "github.com/pearigee/huckleberry/internal/core/datacore"
	_ "github.com/pearigee/huckleberry/internal/core/formscore"
	_ "github.com/pearigee/huckleberry/internal/core/iocore"
	"github.com/pearigee/huckleberry/internal/eval"
	"github.com/pearigee/huckleberry/internal/value"
)

// NewRootEnv builds a fresh root environment: every registered native
// callable bound by name, followed by the prelude evaluated against it.
func NewRootEnv() (*value.Env, error) {
	env := value.NewRoot()
	for _, fn := range registry.All() {
		env.Define(fn.Str, fn)
	}
	if _, err := eval.Eval(Prelude, env); err != nil {
		return nil, err
	}
	return env, nil
}
