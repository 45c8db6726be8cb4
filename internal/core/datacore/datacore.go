// Package datacore registers Huckleberry's data-access primitives: get,
// range, number?, and meta, with get grounded on the Rust original's
// lib/src/modules/data.rs. count/push/keys/assoc have no original_source
// counterpart - data.rs defines only get - they are student-added
// conveniences rounding out Vector/Map access, built on the same get/
// resolve-args shape as the rest of this file.
package datacore

import (
	"github.com/pearigee/huckleberry/internal/core/registry"
	"github.com/pearigee/huckleberry/internal/eval"
	"github.com/pearigee/huckleberry/internal/herr"
	"github.com/pearigee/huckleberry/internal/value"
)

func init() {
	registry.Register("get", value.Count(2), get)
	registry.Register("range", value.Count(2), rangeFn)
	registry.Register("number?", value.Count(1), isNumber)
	registry.Register("meta", value.Count(1), meta)

	registry.Register("count", value.Count(1), count)
	registry.Register("push", value.Count(2), push)
	registry.Register("keys", value.Count(1), keys)
	registry.Register("assoc", value.Count(3), assoc)
}

func get(args []value.Value, env *value.Env) (value.Value, error) {
	vals, err := eval.ResolveArgs(args, env)
	if err != nil {
		return value.Nil, err
	}
	recv, key := vals[0], vals[1]
	switch recv.Kind {
	case value.KindMap:
		if v, ok := value.MapGet(recv, key); ok {
			return v, nil
		}
		return value.Nil, nil
	case value.KindVector:
		if key.Kind != value.KindNumber {
			return value.Nil, &herr.UnexpectedForm{Msg: "vector index must be a number", Value: key.DebugString()}
		}
		idx := int(key.Num)
		if idx < 0 || idx >= len(recv.Items) {
			return value.Nil, nil
		}
		return recv.Items[idx], nil
	default:
		return value.Nil, &herr.UnexpectedForm{Msg: "get requires a Map or Vector receiver", Value: recv.DebugString()}
	}
}

func rangeFn(args []value.Value, env *value.Env) (value.Value, error) {
	vals, err := eval.ResolveArgs(args, env)
	if err != nil {
		return value.Nil, err
	}
	min, max := vals[0], vals[1]
	if min.Kind != value.KindNumber || max.Kind != value.KindNumber {
		return value.Nil, &herr.UnexpectedForm{Msg: "range requires Number bounds", Value: min.DebugString()}
	}
	if min.Num >= max.Num {
		return value.Vector(nil), nil
	}
	items := make([]value.Value, 0, int(max.Num-min.Num))
	for n := min.Num; n < max.Num; n++ {
		items = append(items, value.Number(n))
	}
	return value.Vector(items), nil
}

func isNumber(args []value.Value, env *value.Env) (value.Value, error) {
	v, err := eval.EvalExpr(args[0], env)
	if err != nil {
		return value.Nil, err
	}
	return value.Bool(v.Kind == value.KindNumber), nil
}

func meta(args []value.Value, env *value.Env) (value.Value, error) {
	v, err := eval.EvalExpr(args[0], env)
	if err != nil {
		return value.Nil, err
	}
	if v.Meta != nil {
		return *v.Meta, nil
	}
	return value.Nil, nil
}

func count(args []value.Value, env *value.Env) (value.Value, error) {
	v, err := eval.EvalExpr(args[0], env)
	if err != nil {
		return value.Nil, err
	}
	switch v.Kind {
	case value.KindVector, value.KindList, value.KindMethodList:
		return value.Number(float64(len(v.Items))), nil
	case value.KindMap:
		return value.Number(float64(len(v.Entries))), nil
	case value.KindString:
		return value.Number(float64(len([]rune(v.Str)))), nil
	default:
		return value.Nil, &herr.InvalidType{FnName: "count", Offending: v.DebugString()}
	}
}

func push(args []value.Value, env *value.Env) (value.Value, error) {
	vals, err := eval.ResolveArgs(args, env)
	if err != nil {
		return value.Nil, err
	}
	recv, item := vals[0], vals[1]
	if recv.Kind != value.KindVector {
		return value.Nil, &herr.InvalidType{FnName: "push", Offending: recv.DebugString()}
	}
	items := make([]value.Value, len(recv.Items)+1)
	copy(items, recv.Items)
	items[len(recv.Items)] = item
	return value.Vector(items), nil
}

func keys(args []value.Value, env *value.Env) (value.Value, error) {
	v, err := eval.EvalExpr(args[0], env)
	if err != nil {
		return value.Nil, err
	}
	if v.Kind != value.KindMap {
		return value.Nil, &herr.InvalidType{FnName: "keys", Offending: v.DebugString()}
	}
	ks := make([]value.Value, len(v.Entries))
	for i, e := range v.Entries {
		ks[i] = e.Key
	}
	return value.Vector(ks), nil
}

func assoc(args []value.Value, env *value.Env) (value.Value, error) {
	vals, err := eval.ResolveArgs(args, env)
	if err != nil {
		return value.Nil, err
	}
	recv, key, val := vals[0], vals[1], vals[2]
	if recv.Kind != value.KindMap {
		return value.Nil, &herr.InvalidType{FnName: "assoc", Offending: recv.DebugString()}
	}
	return value.MapSet(recv, key, val), nil
}
