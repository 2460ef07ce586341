// Package exprfilter builds refson replacers from expression strings,
// using the expr language. The expression environment exposes the field
// key as `key` and its value as `value`.
package exprfilter

import (
	"github.com/expr-lang/expr"

	refson "github.com/refson/go-refson"
	"github.com/refson/go-refson/debug"
)

// Keep compiles a boolean predicate; a field is kept when the predicate
// evaluates true. An evaluation failure at encode time keeps the field
// unchanged (replacers cannot fail).
func Keep(src string) (refson.Replacer, error) {
	prg, err := expr.Compile(src, expr.Env(env(nil, "")), expr.AsBool())
	if err != nil {
		return nil, err
	}
	return func(key string, v any) (any, bool) {
		res, err := expr.Run(prg, env(v, key))
		if err != nil {
			if debug.Encode() {
				debug.Logf("exprfilter: %q on %q: %v\n", src, key, err)
			}
			return v, true
		}
		return v, res.(bool)
	}, nil
}

// Map compiles an expression whose result replaces the field value.
// An evaluation failure at encode time keeps the field unchanged.
func Map(src string) (refson.Replacer, error) {
	prg, err := expr.Compile(src, expr.Env(env(nil, "")))
	if err != nil {
		return nil, err
	}
	return func(key string, v any) (any, bool) {
		res, err := expr.Run(prg, env(v, key))
		if err != nil {
			if debug.Encode() {
				debug.Logf("exprfilter: %q on %q: %v\n", src, key, err)
			}
			return v, true
		}
		return res, true
	}, nil
}

func env(v any, key string) map[string]any {
	return map[string]any{
		"key":   key,
		"value": v,
	}
}
