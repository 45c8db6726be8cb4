package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pearigee/huckleberry/internal/core"
	"github.com/pearigee/huckleberry/internal/eval"
	"github.com/pearigee/huckleberry/internal/parser"
	"github.com/pearigee/huckleberry/internal/value"
)

// evalForms runs pre-parsed forms against env, restricting the measured
// work to the evaluator rather than the scanner/parser. Grounded on the
// original implementation's lib/benches/interpreter.rs, which preparses
// before entering the criterion loop for the same reason.
func evalForms(b *testing.B, forms []value.Value, env *value.Env) {
	b.Helper()
	for _, form := range forms {
		if _, err := eval.EvalExpr(form, env); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFibonacciRecursion25(b *testing.B) {
	env, err := core.NewRootEnv()
	require.NoError(b, err)
	forms, err := parser.Parse(`
		(def fib (fn [n]
			(if (lt n 2) 1
				(+ (fib (- n 1)) (fib (- n 2))))))
	`)
	require.NoError(b, err)
	evalForms(b, forms, env)

	call, err := parser.Parse(`(fib 25)`)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eval.EvalExpr(call[0], env); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkForEachAccumulation(b *testing.B) {
	env, err := core.NewRootEnv()
	require.NoError(b, err)
	setup, err := parser.Parse(`
		(def total 0)
		(def nums (range 0 10000))
	`)
	require.NoError(b, err)
	evalForms(b, setup, env)

	loop, err := parser.Parse(`
		(for-each n nums (set! total (+ total n)))
	`)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eval.EvalExpr(loop[0], env); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDeepListConstruction(b *testing.B) {
	env, err := core.NewRootEnv()
	require.NoError(b, err)
	def, err := parser.Parse(`
		(def build (fn [n acc]
			(if (lt n 1) acc
				(build (- n 1) (push acc n)))))
	`)
	require.NoError(b, err)
	evalForms(b, def, env)

	call, err := parser.Parse(`(build 5000 [])`)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eval.EvalExpr(call[0], env); err != nil {
			b.Fatal(err)
		}
	}
}
