package runtime

import (
	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/errors"
	"github.com/mna/slang/lang/token"
)

// Simplify fully reduces e to a Value, following the spec's simplify/reduce
// semantics: literals become scalars, compound syntax is reduced
// structurally, and Call substitutes arguments into the callee body (or
// dispatches to a builtin's native handle) before simplifying the result.
func Simplify(file *token.File, e ast.Expr) (Value, error) {
	switch n := e.(type) {
	case Value:
		return n, nil

	case *ast.IntLit:
		return Int{Val: n.Val}, nil
	case *ast.FloatLit:
		return Float{Val: n.Val}, nil
	case *ast.BoolLit:
		return Bool{Val: n.Val}, nil
	case *ast.StringLit:
		return String{Val: n.Val}, nil

	case *ast.ArrayLit:
		elems := make([]ast.Expr, len(n.Elems))
		for i, el := range n.Elems {
			v, err := Simplify(file, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return NewArray(elems), nil

	case *ast.NamespaceLit:
		defs := make([]NamespaceEntry, len(n.Defs))
		for i, d := range n.Defs {
			v, err := Simplify(file, d.Value)
			if err != nil {
				return nil, err
			}
			defs[i] = NamespaceEntry{Name: d.Name, Value: v}
		}
		return NewNamespace(defs), nil

	case *ast.UnaryOp:
		x, err := Simplify(file, n.X)
		if err != nil {
			return nil, err
		}
		start, _ := n.Span()
		return Unary(file, start, n.Op, x)

	case *ast.BinaryOp:
		x, err := Simplify(file, n.X)
		if err != nil {
			return nil, err
		}
		y, err := Simplify(file, n.Y)
		if err != nil {
			return nil, err
		}
		return Binary(file, n.OpPos, n.Op, x, y)

	case *ast.If:
		t, err := Simplify(file, n.Test)
		if err != nil {
			return nil, err
		}
		b, ok := t.(Bool)
		if !ok {
			return nil, errors.New(errors.TypeMismatch, file, n.IfPos, "if condition must be bool, got %s", t.TypeName())
		}
		if b.Val {
			return Simplify(file, n.Then)
		}
		return Simplify(file, n.Else)

	case *ast.Block:
		for _, s := range n.Stmts {
			if bang, ok := s.(*ast.Bang); ok {
				if _, err := Simplify(file, bang.Value); err != nil {
					return nil, err
				}
			}
			// Let and Import bindings are already wired into Reference targets
			// by the resolver, so they require no runtime action here.
		}
		return Simplify(file, n.Tail)

	case *ast.Reference:
		return Simplify(file, n.Value)

	case *ast.This:
		start, _ := n.Span()
		return nil, errors.New(errors.InternalError, file, start, "this used outside of a function call")

	case *ast.Bound:
		start, _ := n.Span()
		return nil, errors.New(errors.InternalError, file, start, "unresolved bound parameter %q", n.Name)

	case *ast.Variable:
		start, _ := n.Span()
		return nil, errors.New(errors.InternalError, file, start, "unresolved variable %q", n.Name)

	case *ast.Lookup:
		base, err := Simplify(file, n.Base)
		if err != nil {
			return nil, err
		}
		ns, ok := base.(*Namespace)
		if !ok {
			return nil, errors.New(errors.TypeMismatch, file, n.ColCol, "lookup requires a namespace, got %s", base.TypeName())
		}
		v, ok := ns.Lookup(n.Name)
		if !ok {
			return nil, errors.New(errors.NoSuchField, file, n.ColCol, "no field %q in namespace", n.Name)
		}
		return Simplify(file, v)

	case *ast.Index:
		x, err := Simplify(file, n.X)
		if err != nil {
			return nil, err
		}
		arr, ok := x.(*Array)
		if !ok {
			return nil, errors.New(errors.TypeMismatch, file, n.Lbrack, "index requires an array, got %s", x.TypeName())
		}
		idx, err := Simplify(file, n.Idx)
		if err != nil {
			return nil, err
		}
		i, ok := idx.(Int)
		if !ok {
			return nil, errors.New(errors.TypeMismatch, file, n.Lbrack, "array index must be int, got %s", idx.TypeName())
		}
		if i.Val < 0 || i.Val >= int64(len(arr.Elems)) {
			return nil, errors.New(errors.OutOfBounds, file, n.Lbrack, "index %d out of bounds for array of length %d", i.Val, len(arr.Elems))
		}
		return Simplify(file, arr.Elems[i.Val])

	case *ast.FunctionDef:
		return n, nil

	case *ast.Call:
		return simplifyCall(file, n)
	}

	return nil, errors.New(errors.InternalError, file, token.NoPos, "cannot simplify node of type %T", e)
}

func simplifyCall(file *token.File, call *ast.Call) (Value, error) {
	fnVal, err := Simplify(file, call.Fn)
	if err != nil {
		return nil, err
	}
	fn, ok := fnVal.(*ast.FunctionDef)
	if !ok {
		start, _ := call.Span()
		return nil, errors.New(errors.TypeMismatch, file, start, "call target must be a function, got %s", fnVal.TypeName())
	}
	if len(call.Args) != len(fn.Params) {
		start, _ := call.Span()
		return nil, errors.New(errors.ArityMismatch, file, start, "function expects %d argument(s), got %d", len(fn.Params), len(call.Args))
	}

	args := make([]ast.Expr, len(call.Args))
	for i, a := range call.Args {
		v, err := Simplify(file, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if fn.IsBuiltin() {
		values := make([]Value, len(args))
		for i, a := range args {
			values[i] = a.(Value)
		}
		result, err := fn.Native(fn, toExprSlice(values))
		if err != nil {
			return nil, err
		}
		return Simplify(file, result)
	}

	body := rewriteThis(fn.Body, fn)
	body = substitute(body, args, 0)
	return Simplify(file, body)
}

func toExprSlice(vs []Value) []ast.Expr {
	es := make([]ast.Expr, len(vs))
	for i, v := range vs {
		es[i] = v
	}
	return es
}
