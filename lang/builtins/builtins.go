// Package builtins assembles the root namespace of natively-implemented
// functions available to every program: echo, length, numeric helpers, and
// the nslib namespace-manipulation functions (has, remove, combine).
package builtins

import (
	"fmt"
	"io"

	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/errors"
	"github.com/mna/slang/lang/runtime"
	"github.com/mna/slang/lang/token"
)

// Root returns the builtins namespace. Output produced by echo is written
// to stdout.
func Root(stdout io.Writer) *runtime.Namespace {
	return runtime.NewNamespace([]runtime.NamespaceEntry{
		{Name: "echo", Value: unary("echo", echo(stdout))},
		{Name: "length", Value: unary("length", length)},
		{Name: "not", Value: unary("not", not)},
		{Name: "abs", Value: unary("abs", abs)},
		{Name: "min", Value: binary("min", min)},
		{Name: "max", Value: binary("max", max)},
		{Name: "nslib", Value: nslib()},
	})
}

func nslib() *runtime.Namespace {
	return runtime.NewNamespace([]runtime.NamespaceEntry{
		{Name: "has", Value: binary("has", nsHas)},
		{Name: "remove", Value: binary("remove", nsRemove)},
		{Name: "combine", Value: binary("combine", nsCombine)},
	})
}

func unary(name string, fn func(x ast.Expr) (ast.Expr, error)) *ast.FunctionDef {
	return &ast.FunctionDef{
		Params: []*ast.Param{{Name: "x"}},
		Native: func(_ interface{}, args []ast.Expr) (ast.Expr, error) {
			if len(args) != 1 {
				return nil, errors.New(errors.ArityMismatch, nil, token.NoPos, "%s expects 1 argument, got %d", name, len(args))
			}
			return fn(args[0])
		},
	}
}

func binary(name string, fn func(x, y ast.Expr) (ast.Expr, error)) *ast.FunctionDef {
	return &ast.FunctionDef{
		Params: []*ast.Param{{Name: "x"}, {Name: "y"}},
		Native: func(_ interface{}, args []ast.Expr) (ast.Expr, error) {
			if len(args) != 2 {
				return nil, errors.New(errors.ArityMismatch, nil, token.NoPos, "%s expects 2 arguments, got %d", name, len(args))
			}
			return fn(args[0], args[1])
		},
	}
}

func echo(stdout io.Writer) func(x ast.Expr) (ast.Expr, error) {
	return func(x ast.Expr) (ast.Expr, error) {
		fmt.Fprintln(stdout, x)
		return x, nil
	}
}

func length(x ast.Expr) (ast.Expr, error) {
	switch v := x.(type) {
	case *runtime.Array:
		return runtime.Int{Val: int64(v.Len())}, nil
	case runtime.String:
		return runtime.Int{Val: int64(len(v.Val))}, nil
	}
	return nil, errors.New(errors.TypeMismatch, nil, token.NoPos, "length expects an array or string, got %s", x.(runtime.Value).TypeName())
}

func not(x ast.Expr) (ast.Expr, error) {
	b, ok := x.(runtime.Bool)
	if !ok {
		return nil, errors.New(errors.TypeMismatch, nil, token.NoPos, "not expects a bool, got %s", x.(runtime.Value).TypeName())
	}
	return runtime.Bool{Val: !b.Val}, nil
}

func abs(x ast.Expr) (ast.Expr, error) {
	switch v := x.(type) {
	case runtime.Int:
		if v.Val < 0 {
			return runtime.Int{Val: -v.Val}, nil
		}
		return v, nil
	case runtime.Float:
		if v.Val < 0 {
			return runtime.Float{Val: -v.Val}, nil
		}
		return v, nil
	}
	return nil, errors.New(errors.TypeMismatch, nil, token.NoPos, "abs expects a number, got %s", x.(runtime.Value).TypeName())
}

func min(x, y ast.Expr) (ast.Expr, error) {
	lt, err := runtime.Binary(nil, token.NoPos, token.LT, x.(runtime.Value), y.(runtime.Value))
	if err != nil {
		return nil, err
	}
	if lt.(runtime.Bool).Val {
		return x, nil
	}
	return y, nil
}

func max(x, y ast.Expr) (ast.Expr, error) {
	gt, err := runtime.Binary(nil, token.NoPos, token.GT, x.(runtime.Value), y.(runtime.Value))
	if err != nil {
		return nil, err
	}
	if gt.(runtime.Bool).Val {
		return x, nil
	}
	return y, nil
}

func nsHas(x, y ast.Expr) (ast.Expr, error) {
	ns, name, err := namespaceAndName(x, y, "nslib::has")
	if err != nil {
		return nil, err
	}
	return runtime.Bool{Val: ns.Has(name)}, nil
}

func nsRemove(x, y ast.Expr) (ast.Expr, error) {
	ns, name, err := namespaceAndName(x, y, "nslib::remove")
	if err != nil {
		return nil, err
	}
	return ns.Remove(name), nil
}

func nsCombine(x, y ast.Expr) (ast.Expr, error) {
	a, ok := x.(*runtime.Namespace)
	if !ok {
		return nil, errors.New(errors.TypeMismatch, nil, token.NoPos, "nslib::combine expects a namespace, got %s", x.(runtime.Value).TypeName())
	}
	b, ok := y.(*runtime.Namespace)
	if !ok {
		return nil, errors.New(errors.TypeMismatch, nil, token.NoPos, "nslib::combine expects a namespace, got %s", y.(runtime.Value).TypeName())
	}
	return a.Combine(b), nil
}

func namespaceAndName(x, y ast.Expr, op string) (*runtime.Namespace, string, error) {
	ns, ok := x.(*runtime.Namespace)
	if !ok {
		return nil, "", errors.New(errors.TypeMismatch, nil, token.NoPos, "%s expects a namespace, got %s", op, x.(runtime.Value).TypeName())
	}
	name, ok := y.(runtime.String)
	if !ok {
		return nil, "", errors.New(errors.TypeMismatch, nil, token.NoPos, "%s expects a string name, got %s", op, y.(runtime.Value).TypeName())
	}
	return ns, name.Val, nil
}
