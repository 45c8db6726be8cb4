// Package registry is the package-level table of native callables (special
// forms and primitives) assembled from the core submodules' init()
// functions, modeled on the teacher's runtime/decorators.Registry: a map
// behind a sync.RWMutex with a Register/Get accessor pair, populated by
// several independent init() functions rather than one central list.
//
// Huckleberry has only one kind of native callable, so - unlike the
// teacher's four decorator-kind maps (value/action/block/pattern) - this
// registry holds a single map keyed by name.
package registry

import (
	"sort"
	"sync"

	"github.com/pearigee/huckleberry/internal/value"
)

var (
	mu    sync.RWMutex
	fns   = make(map[string]value.Value)
	names []string
)

// Register installs a native callable under name. Called from the
// arithcore/datacore/iocore/formscore packages' init() functions.
func Register(name string, arity value.Arity, fn value.NativeFunc) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := fns[name]; !exists {
		names = append(names, name)
	}
	fns[name] = value.NativeFn(name, arity, fn)
}

// Get retrieves a registered native callable by name.
func Get(name string) (value.Value, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := fns[name]
	return v, ok
}

// All returns every registered native callable, in registration order.
func All() []value.Value {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]value.Value, 0, len(names))
	for _, n := range names {
		out = append(out, fns[n])
	}
	return out
}

// Names returns the sorted set of registered names, for diagnostics/tests.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}
