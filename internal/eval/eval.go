// Package eval implements Huckleberry's tree-walking evaluator: the
// recursive descent over parsed value trees that resolves symbols, invokes
// callables, evaluates collection literals, and dispatches keyword-messages.
package eval

import (
	"strings"

	"github.com/pearigee/huckleberry/internal/herr"
	"github.com/pearigee/huckleberry/internal/parser"
	"github.com/pearigee/huckleberry/internal/value"
)

// Eval scans, parses, and evaluates source against env in order; the
// result is the value of the last top-level form, or Nil if there are none.
func Eval(source string, env *value.Env) (value.Value, error) {
	forms, err := parser.Parse(source)
	if err != nil {
		return value.Nil, err
	}
	result := value.Nil
	for _, form := range forms {
		result, err = EvalExpr(form, env)
		if err != nil {
			return value.Nil, err
		}
	}
	return result, nil
}

// EvalExpr evaluates a single value tree in env.
func EvalExpr(v value.Value, env *value.Env) (value.Value, error) {
	switch v.Kind {
	case value.KindNil, value.KindBoolean, value.KindNumber, value.KindString,
		value.KindKeyword, value.KindNativeFn, value.KindFn, value.KindMethod,
		value.KindAmpersand:
		return v, nil

	case value.KindSymbol:
		if found, ok := env.Get(v.Str); ok {
			return found, nil
		}
		return value.Nil, &herr.UnboundVar{Name: v.Str}

	case value.KindVector:
		items, err := ResolveArgs(v.Items, env)
		if err != nil {
			return value.Nil, err
		}
		return value.Value{Kind: value.KindVector, Items: items, Meta: v.Meta}, nil

	case value.KindMap:
		m := value.EmptyMap()
		m.Meta = v.Meta
		for _, e := range v.Entries {
			k, err := EvalExpr(e.Key, env)
			if err != nil {
				return value.Nil, err
			}
			val, err := EvalExpr(e.Val, env)
			if err != nil {
				return value.Nil, err
			}
			m = value.MapSet(m, k, val)
		}
		return m, nil

	case value.KindList:
		return evalList(v, env)

	case value.KindMethodList:
		return evalMethodList(v, env)

	default:
		return value.Nil, &herr.UnexpectedForm{Msg: "cannot evaluate value", Value: v.DebugString()}
	}
}

// Resolve requires v to be a Symbol and returns its bound value.
func Resolve(v value.Value, env *value.Env) (value.Value, error) {
	if v.Kind != value.KindSymbol {
		return value.Nil, &herr.UnexpectedForm{Msg: "expected a symbol", Value: v.DebugString()}
	}
	found, ok := env.Get(v.Str)
	if !ok {
		return value.Nil, &herr.UnboundVar{Name: v.Str}
	}
	return found, nil
}

// ResolveArgs evaluates each argument in order, short-circuiting on the
// first error - the left-to-right argument evaluation spec.md §5 requires.
func ResolveArgs(args []value.Value, env *value.Env) ([]value.Value, error) {
	out := make([]value.Value, len(args))
	for i, a := range args {
		v, err := EvalExpr(a, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evalList(v value.Value, env *value.Env) (value.Value, error) {
	if len(v.Items) == 0 {
		return value.Nil, &herr.InvalidEmptyList{Msg: "() evaluated"}
	}
	head := v.Items[0]
	callee, err := Resolve(head, env)
	if err != nil {
		return value.Nil, err
	}
	args := v.Items[1:]
	switch callee.Kind {
	case value.KindNativeFn:
		if !callee.Arity.Allows(len(args)) {
			return value.Nil, &herr.InvalidArity{Name: callee.Str, Expected: callee.Arity.String()}
		}
		return callee.Native(args, env)
	case value.KindFn:
		return CallFn(callee, args, env)
	default:
		return value.Nil, &herr.NotAFunction{Rendered: callee.DebugString()}
	}
}

// CallFn invokes a Fn: verify arity, extend its captured closure
// environment, bind parameters, evaluate the body, return the last value.
func CallFn(fn value.Value, args []value.Value, callerEnv *value.Env) (value.Value, error) {
	if !fn.Arity.Allows(len(args)) {
		return value.Nil, &herr.InvalidArity{Name: fn.Str, Expected: fn.Arity.String()}
	}
	fnEnv := value.NewChild(fn.Env)
	if err := bindParams(fn.Params, args, callerEnv, fnEnv); err != nil {
		return value.Nil, err
	}
	return evalBody(fn.Body, fnEnv)
}

// CallMethod invokes a Method: like CallFn, but the receiver - evaluated in
// the caller's environment - is bound under "this" before positional
// parameters are bound.
func CallMethod(method value.Value, receiver value.Value, args []value.Value, callerEnv *value.Env) (value.Value, error) {
	if !method.Arity.Allows(len(args)) {
		return value.Nil, &herr.InvalidArity{Name: method.Str, Expected: method.Arity.String()}
	}
	methodEnv := value.NewChild(method.Env)
	methodEnv.Define("this", receiver)
	if err := bindMethodParams(method.Params, args, callerEnv, methodEnv); err != nil {
		return value.Nil, err
	}
	return evalBody(method.Body, methodEnv)
}

func evalBody(body []value.Value, env *value.Env) (value.Value, error) {
	result := value.Nil
	for _, expr := range body {
		var err error
		result, err = EvalExpr(expr, env)
		if err != nil {
			return value.Nil, err
		}
	}
	return result, nil
}

// bindParams binds a Fn's flat parameter vector: a bare Symbol binds the
// positional argument at the same index (evaluated in callerEnv); an
// Ampersand switches to variadic mode, binding the following Symbol to a
// Vector of every remaining argument.
func bindParams(params []value.Value, args []value.Value, callerEnv, fnEnv *value.Env) error {
	i := 0
	for idx := 0; idx < len(params); idx++ {
		p := params[idx]
		if p.Kind == value.KindAmpersand {
			name := params[idx+1]
			rest := make([]value.Value, 0, len(args)-i)
			for ; i < len(args); i++ {
				v, err := EvalExpr(args[i], callerEnv)
				if err != nil {
					return err
				}
				rest = append(rest, v)
			}
			fnEnv.Define(name.Str, value.Vector(rest))
			return nil
		}
		v, err := EvalExpr(args[i], callerEnv)
		if err != nil {
			return err
		}
		fnEnv.Define(p.Str, v)
		i++
	}
	return nil
}

// bindMethodParams binds only the odd-indexed elements of a defm parameter
// vector (the parameter symbols; the even-indexed elements are the
// keyword tokens used to build the method's dispatch identifier, see
// MethodIdentifier) to the positional call arguments, in order.
func bindMethodParams(params []value.Value, args []value.Value, callerEnv, methodEnv *value.Env) error {
	argIdx := 0
	for idx := 1; idx < len(params); idx += 2 {
		v, err := EvalExpr(args[argIdx], callerEnv)
		if err != nil {
			return err
		}
		methodEnv.Define(params[idx].Str, v)
		argIdx++
	}
	return nil
}

func evalMethodList(v value.Value, env *value.Env) (value.Value, error) {
	if len(v.Items) == 0 {
		return value.Nil, &herr.InvalidEmptyList{Msg: "<> evaluated"}
	}
	receiverExpr := v.Items[0]
	rest := v.Items[1:]

	id, messageArgs := MethodIdentifier(rest)

	receiver, err := EvalExpr(receiverExpr, env)
	if err != nil {
		return value.Nil, err
	}

	candidates, ok := env.Methods(id)
	if !ok {
		return value.Nil, &herr.UnboundMethod{Name: id}
	}
	for _, m := range candidates {
		matched, err := selectorMatches(*m.Selector, receiver, env)
		if err != nil {
			return value.Nil, err
		}
		if matched {
			return CallMethod(m, receiver, messageArgs, env)
		}
	}
	return value.Nil, &herr.NotAMethod{ID: id}
}

// MethodIdentifier builds the dispatch identifier and positional argument
// list from a keyword-message's tail: rest[0], rest[2], ... are joined
// (space-separated, by display form) into the identifier; rest[1], rest[3],
// ... are the method's unevaluated arguments.
func MethodIdentifier(rest []value.Value) (string, []value.Value) {
	var idParts []string
	var args []value.Value
	for i := 0; i < len(rest); i += 2 {
		idParts = append(idParts, rest[i].String())
		if i+1 < len(rest) {
			args = append(args, rest[i+1])
		}
	}
	return strings.Join(idParts, " "), args
}

// selectorMatches computes a method candidate's match value: a NativeFn or
// Fn selector is called with the receiver as its single argument; any
// other selector value is used as-is. The candidate matches iff the
// result is truthy.
func selectorMatches(selector value.Value, receiver value.Value, env *value.Env) (bool, error) {
	switch selector.Kind {
	case value.KindNativeFn:
		if !selector.Arity.Allows(1) {
			return false, &herr.InvalidArity{Name: selector.Str, Expected: selector.Arity.String()}
		}
		result, err := selector.Native([]value.Value{receiver}, env)
		if err != nil {
			return false, err
		}
		return value.Truthy(result), nil
	case value.KindFn:
		result, err := CallFn(selector, []value.Value{receiver}, env)
		if err != nil {
			return false, err
		}
		return value.Truthy(result), nil
	default:
		return value.Truthy(selector), nil
	}
}
