// Package formscore registers Huckleberry's special forms: def/var, set!,
// if, fn, defn, defm, and for-each. Special forms are NativeFn values like
// any other primitive - they just choose not to evaluate every argument
// before deciding what to do with it.
package formscore

import (
	"github.com/pearigee/huckleberry/internal/core/registry"
	"github.com/pearigee/huckleberry/internal/eval"
	"github.com/pearigee/huckleberry/internal/herr"
	"github.com/pearigee/huckleberry/internal/value"
)

func init() {
	registry.Register("def", value.Range(1, 2), define)
	registry.Register("var", value.Range(1, 2), define)
	registry.Register("set!", value.Count(2), setBang)
	registry.Register("if", value.Range(2, 3), ifForm)
	registry.Register("fn", value.Range(1, value.Unbounded), fn)
	registry.Register("defn", value.Range(2, value.Unbounded), defn)
	registry.Register("defm", value.Range(2, value.Unbounded), defm)
	registry.Register("for-each", value.Range(2, value.Unbounded), forEach)
}

func define(args []value.Value, env *value.Env) (value.Value, error) {
	target := args[0]
	if target.Kind != value.KindSymbol {
		return value.Nil, &herr.UnexpectedForm{Msg: "def target must be a symbol", Value: target.DebugString()}
	}
	val := value.Nil
	if len(args) == 2 {
		var err error
		val, err = eval.EvalExpr(args[1], env)
		if err != nil {
			return value.Nil, err
		}
	}
	env.Define(target.Str, val)
	return val, nil
}

func setBang(args []value.Value, env *value.Env) (value.Value, error) {
	target := args[0]
	if target.Kind != value.KindSymbol {
		return value.Nil, &herr.UnexpectedForm{Msg: "set! target must be a symbol", Value: target.DebugString()}
	}
	val, err := eval.EvalExpr(args[1], env)
	if err != nil {
		return value.Nil, err
	}
	if !env.Set(target.Str, val) {
		return value.Nil, &herr.SetUninitializedVar{Name: target.Str}
	}
	return val, nil
}

func ifForm(args []value.Value, env *value.Env) (value.Value, error) {
	cond, err := eval.EvalExpr(args[0], env)
	if err != nil {
		return value.Nil, err
	}
	if value.Truthy(cond) {
		return eval.EvalExpr(args[1], env)
	}
	if len(args) == 3 {
		return eval.EvalExpr(args[2], env)
	}
	return value.Nil, nil
}

func fn(args []value.Value, env *value.Env) (value.Value, error) {
	params := args[0]
	if params.Kind != value.KindVector {
		return value.Nil, &herr.UnexpectedForm{Msg: "fn parameter list must be a vector", Value: params.DebugString()}
	}
	arity, err := deriveFnArity(params.Items)
	if err != nil {
		return value.Nil, err
	}
	// An anonymous fn is named by a rendering of its parameters and body,
	// so only textually identical fn expressions compare equal.
	name := params.DebugString() + " " + value.List(args[1:]).DebugString()
	return value.Fn(name, arity, params.Items, args[1:], env), nil
}

func defn(args []value.Value, env *value.Env) (value.Value, error) {
	name := args[0]
	if name.Kind != value.KindSymbol {
		return value.Nil, &herr.UnexpectedForm{Msg: "defn name must be a symbol", Value: name.DebugString()}
	}
	params := args[1]
	if params.Kind != value.KindVector {
		return value.Nil, &herr.UnexpectedForm{Msg: "defn parameter list must be a vector", Value: params.DebugString()}
	}
	arity, err := deriveFnArity(params.Items)
	if err != nil {
		return value.Nil, err
	}
	f := value.Fn(name.Str, arity, params.Items, args[2:], env)
	env.Define(name.Str, f)
	return f, nil
}

// deriveFnArity turns a flat parameter vector into an Arity: a bare run of
// Symbols is an exact count; an Ampersand switches to variadic mode and must
// be followed by exactly one Symbol and nothing else.
func deriveFnArity(params []value.Value) (value.Arity, error) {
	for i, p := range params {
		if p.Kind != value.KindAmpersand {
			continue
		}
		if i != len(params)-2 || params[i+1].Kind != value.KindSymbol {
			return value.Arity{}, &herr.UnexpectedForm{
				Msg:   "& must be followed by exactly one parameter symbol, at the end of the parameter list",
				Value: value.Vector(params).DebugString(),
			}
		}
		return value.Range(i, value.Unbounded), nil
	}
	return value.Count(len(params)), nil
}

// defm evaluates its selector expression in env, validates a non-empty
// parameter vector (a single bare keyword, or an even-length alternation of
// keyword tokens and parameter symbols), derives the dispatch identifier from the keyword half the same
// way a call site does, and registers the resulting Method in the current
// scope.
func defm(args []value.Value, env *value.Env) (value.Value, error) {
	selector, err := eval.EvalExpr(args[0], env)
	if err != nil {
		return value.Nil, err
	}
	params := args[1]
	if params.Kind != value.KindVector {
		return value.Nil, &herr.UnexpectedForm{Msg: "defm parameter list must be a vector", Value: params.DebugString()}
	}
	// Non-empty; a single bare keyword (Count(0), e.g. [label]) or an even-length
	// alternation of keyword and parameter symbols (e.g. [to: max do: fn]).
	if len(params.Items) == 0 || (len(params.Items) > 1 && len(params.Items)%2 != 0) {
		return value.Nil, &herr.UnexpectedForm{
			Msg:   "defm parameter vector must be a single keyword or an alternating keyword/parameter sequence",
			Value: params.DebugString(),
		}
	}
	id, _ := eval.MethodIdentifier(params.Items)
	arity := value.Count(len(params.Items) / 2)
	m := value.Method(id, selector, arity, params.Items, args[2:], env)
	env.DefineMethod(id, m)
	return m, nil
}

// forEach binds the loop variable named by its first argument into a fresh
// scope created anew each pass - the element itself for a Vector, or a
// 2-element [key value] vector for a Map, iterated in key-sorted order -
// and evaluates the body forms in it.
func forEach(args []value.Value, env *value.Env) (value.Value, error) {
	loopVar := args[0]
	if loopVar.Kind != value.KindSymbol {
		return value.Nil, &herr.UnexpectedForm{Msg: "for-each loop variable must be a symbol", Value: loopVar.DebugString()}
	}
	coll, err := eval.EvalExpr(args[1], env)
	if err != nil {
		return value.Nil, err
	}
	body := args[2:]

	switch coll.Kind {
	case value.KindVector:
		for _, item := range coll.Items {
			iterEnv := value.NewChild(env)
			iterEnv.Define(loopVar.Str, item)
			if _, err := evalSeq(body, iterEnv); err != nil {
				return value.Nil, err
			}
		}
		return value.Nil, nil
	case value.KindMap:
		for _, e := range coll.Entries {
			iterEnv := value.NewChild(env)
			iterEnv.Define(loopVar.Str, value.Vector([]value.Value{e.Key, e.Val}))
			if _, err := evalSeq(body, iterEnv); err != nil {
				return value.Nil, err
			}
		}
		return value.Nil, nil
	default:
		return value.Nil, &herr.UnexpectedForm{Msg: "for-each requires a Vector or Map", Value: coll.DebugString()}
	}
}

func evalSeq(body []value.Value, env *value.Env) (value.Value, error) {
	result := value.Nil
	for _, expr := range body {
		var err error
		result, err = eval.EvalExpr(expr, env)
		if err != nil {
			return value.Nil, err
		}
	}
	return result, nil
}
