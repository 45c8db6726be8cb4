// Package arithcore registers Huckleberry's arithmetic, comparison, and
// logic primitives into the shared registry.
package arithcore

import (
	"math"

	"github.com/pearigee/huckleberry/internal/core/registry"
	"github.com/pearigee/huckleberry/internal/eval"
	"github.com/pearigee/huckleberry/internal/herr"
	"github.com/pearigee/huckleberry/internal/value"
)

func init() {
	registry.Register("+", value.Range(1, value.Unbounded), fold("+", func(a, b float64) float64 { return a + b }))
	registry.Register("-", value.Range(1, value.Unbounded), fold("-", func(a, b float64) float64 { return a - b }))
	registry.Register("*", value.Range(1, value.Unbounded), fold("*", func(a, b float64) float64 { return a * b }))
	registry.Register("/", value.Range(1, value.Unbounded), fold("/", func(a, b float64) float64 { return a / b }))

	registry.Register("mod", value.Count(2), mod)
	registry.Register("abs", value.Count(1), abs)

	registry.Register("not", value.Count(1), not)
	registry.Register("and", value.Range(1, value.Unbounded), and)
	registry.Register("or", value.Range(1, value.Unbounded), or)

	registry.Register("lt", value.Range(2, value.Unbounded), chainNum("lt", func(a, b float64) bool { return compareNum(a, b) < 0 }))
	registry.Register("lte", value.Range(2, value.Unbounded), chainNum("lte", func(a, b float64) bool { return compareNum(a, b) <= 0 }))
	registry.Register("gt", value.Range(2, value.Unbounded), chainNum("gt", func(a, b float64) bool { return compareNum(a, b) > 0 }))
	registry.Register("gte", value.Range(2, value.Unbounded), chainNum("gte", func(a, b float64) bool { return compareNum(a, b) >= 0 }))

	registry.Register("=", value.Range(2, value.Unbounded), chainAny("=", func(a, b value.Value) bool { return value.Equal(a, b) }))
	registry.Register("!=", value.Range(2, value.Unbounded), chainAny("!=", func(a, b value.Value) bool { return !value.Equal(a, b) }))
}

// fold evaluates every argument, requires each to be a Number, and folds
// combine over them left to right. A single-argument call returns that
// argument unchanged, per spec.md §4.8.
func fold(name string, combine func(a, b float64) float64) value.NativeFunc {
	return func(args []value.Value, env *value.Env) (value.Value, error) {
		vals, err := eval.ResolveArgs(args, env)
		if err != nil {
			return value.Nil, err
		}
		nums := make([]float64, len(vals))
		for i, v := range vals {
			if v.Kind != value.KindNumber {
				return value.Nil, &herr.InvalidType{FnName: name, Offending: v.DebugString()}
			}
			nums[i] = v.Num
		}
		if len(nums) == 1 {
			return value.Number(nums[0]), nil
		}
		acc := nums[0]
		for _, n := range nums[1:] {
			acc = combine(acc, n)
		}
		return value.Number(acc), nil
	}
}

func mod(args []value.Value, env *value.Env) (value.Value, error) {
	vals, err := eval.ResolveArgs(args, env)
	if err != nil {
		return value.Nil, err
	}
	if vals[0].Kind != value.KindNumber || vals[1].Kind != value.KindNumber {
		return value.Nil, &herr.InvalidType{FnName: "mod", Offending: vals[0].DebugString()}
	}
	return value.Number(math.Mod(vals[0].Num, vals[1].Num)), nil
}

func abs(args []value.Value, env *value.Env) (value.Value, error) {
	vals, err := eval.ResolveArgs(args, env)
	if err != nil {
		return value.Nil, err
	}
	if vals[0].Kind != value.KindNumber {
		return value.Nil, &herr.InvalidType{FnName: "abs", Offending: vals[0].DebugString()}
	}
	return value.Number(math.Abs(vals[0].Num)), nil
}

func not(args []value.Value, env *value.Env) (value.Value, error) {
	v, err := eval.EvalExpr(args[0], env)
	if err != nil {
		return value.Nil, err
	}
	return value.Bool(!value.Truthy(v)), nil
}

func and(args []value.Value, env *value.Env) (value.Value, error) {
	result := value.Value{Kind: value.KindBoolean, Bool: true}
	for _, a := range args {
		v, err := eval.EvalExpr(a, env)
		if err != nil {
			return value.Nil, err
		}
		result = v
		if !value.Truthy(v) {
			return v, nil
		}
	}
	return result, nil
}

func or(args []value.Value, env *value.Env) (value.Value, error) {
	var result value.Value
	for _, a := range args {
		v, err := eval.EvalExpr(a, env)
		if err != nil {
			return value.Nil, err
		}
		result = v
		if value.Truthy(v) {
			return v, nil
		}
	}
	return result, nil
}

// compareNum orders two numbers by value.Compare's total order, so NaN
// sorts above every other number here exactly as it does in map keys.
func compareNum(a, b float64) int {
	return value.Compare(value.Number(a), value.Number(b))
}

func chainNum(name string, cmp func(a, b float64) bool) value.NativeFunc {
	return func(args []value.Value, env *value.Env) (value.Value, error) {
		vals, err := eval.ResolveArgs(args, env)
		if err != nil {
			return value.Nil, err
		}
		for _, v := range vals {
			if v.Kind != value.KindNumber {
				return value.Nil, &herr.InvalidType{FnName: name, Offending: v.DebugString()}
			}
		}
		first := vals[0]
		for _, v := range vals[1:] {
			if !cmp(first.Num, v.Num) {
				return value.False, nil
			}
		}
		return value.True, nil
	}
}

func chainAny(_ string, cmp func(a, b value.Value) bool) value.NativeFunc {
	return func(args []value.Value, env *value.Env) (value.Value, error) {
		vals, err := eval.ResolveArgs(args, env)
		if err != nil {
			return value.Nil, err
		}
		first := vals[0]
		for _, v := range vals[1:] {
			if !cmp(first, v) {
				return value.False, nil
			}
		}
		return value.True, nil
	}
}
