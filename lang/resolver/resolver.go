// Package resolver implements the "walk" pass: it turns every free
// Variable produced by the parser into either a Bound (a hit against an
// enclosing function's parameter list, recorded as a de Bruijn depth/index
// pair), a Reference (a hit against a `let`/`import` binding visible in the
// enclosing blocks, linked directly to that binding's expression), or a
// This (the name "this"). A Variable that matches neither is reported as
// ResolveUnbound.
package resolver

import (
	"fmt"

	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/env"
	"github.com/mna/slang/lang/errors"
	"github.com/mna/slang/lang/token"
)

// Resolve walks e, starting with no enclosing function scopes and the
// given top-level environment (typically holding the builtins; `let` and
// `import` statements are bound in the scope of the block that holds them).
// A nil top is treated as an empty environment.
func Resolve(file *token.File, e ast.Expr, top *env.Environment) (ast.Expr, error) {
	if top == nil {
		top = env.New()
	}
	r := &resolver{file: file}
	return r.expr(e, nil, top)
}

type resolver struct {
	file *token.File
}

// expr resolves e. params holds one slice of parameters per enclosing
// function, outermost first; scope is the chain of block-local let/import
// bindings visible at this point.
func (r *resolver) expr(e ast.Expr, params [][]*ast.Param, scope *env.Environment) (ast.Expr, error) {
	switch n := e.(type) {
	case *ast.Variable:
		return r.variable(n, params, scope)

	case *ast.IntLit, *ast.FloatLit, *ast.BoolLit, *ast.StringLit, *ast.This, *ast.Bound, *ast.Reference:
		return n, nil

	case *ast.ArrayLit:
		elems := make([]ast.Expr, len(n.Elems))
		for i, el := range n.Elems {
			re, err := r.expr(el, params, scope)
			if err != nil {
				return nil, err
			}
			elems[i] = re
		}
		return &ast.ArrayLit{Elems: elems, Lbrack: n.Lbrack, Rbrack: n.Rbrack}, nil

	case *ast.UnaryOp:
		x, err := r.expr(n.X, params, scope)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: n.Op, OpPos: n.OpPos, X: x}, nil

	case *ast.BinaryOp:
		x, err := r.expr(n.X, params, scope)
		if err != nil {
			return nil, err
		}
		y, err := r.expr(n.Y, params, scope)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Op: n.Op, OpPos: n.OpPos, X: x, Y: y}, nil

	case *ast.If:
		test, err := r.expr(n.Test, params, scope)
		if err != nil {
			return nil, err
		}
		then, err := r.expr(n.Then, params, scope)
		if err != nil {
			return nil, err
		}
		els, err := r.expr(n.Else, params, scope)
		if err != nil {
			return nil, err
		}
		return &ast.If{Test: test, Then: then, Else: els, IfPos: n.IfPos}, nil

	case *ast.Block:
		return r.block(n, params, scope)

	case *ast.FunctionDef:
		if n.IsBuiltin() {
			return n, nil
		}
		innerParams := make([][]*ast.Param, len(params)+1)
		copy(innerParams, params)
		innerParams[len(params)] = n.Params
		body, err := r.expr(n.Body, innerParams, scope)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionDef{Params: n.Params, Body: body, Native: n.Native, Start: n.Start, End: n.End}, nil

	case *ast.Call:
		fn, err := r.expr(n.Fn, params, scope)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			ra, err := r.expr(a, params, scope)
			if err != nil {
				return nil, err
			}
			args[i] = ra
		}
		return &ast.Call{Fn: fn, Args: args, Lparen: n.Lparen, Rparen: n.Rparen}, nil

	case *ast.Lookup:
		base, err := r.expr(n.Base, params, scope)
		if err != nil {
			return nil, err
		}
		return &ast.Lookup{Base: base, Name: n.Name, ColCol: n.ColCol}, nil

	case *ast.Index:
		x, err := r.expr(n.X, params, scope)
		if err != nil {
			return nil, err
		}
		idx, err := r.expr(n.Idx, params, scope)
		if err != nil {
			return nil, err
		}
		return &ast.Index{X: x, Idx: idx, Lbrack: n.Lbrack, Rbrack: n.Rbrack}, nil

	case *ast.NamespaceLit:
		return r.namespaceLit(n, params, scope)
	}

	return nil, fmt.Errorf("resolver: unsupported expression %T", e)
}

func (r *resolver) variable(n *ast.Variable, params [][]*ast.Param, scope *env.Environment) (ast.Expr, error) {
	if n.Name == "this" {
		return &ast.This{Start: n.Start}, nil
	}
	for d := len(params) - 1; d >= 0; d-- {
		frame := params[d]
		for i, p := range frame {
			if p.Name == n.Name {
				return &ast.Bound{Name: n.Name, Depth: len(params) - 1 - d, Index: i, Start: n.Start}, nil
			}
		}
	}
	if val, ok := scope.Find(n.Name); ok {
		return &ast.Reference{Name: n.Name, Value: val, Start: n.Start}, nil
	}
	return nil, errors.New(errors.ResolveUnbound, r.file, n.Start, "undefined name %q", n.Name)
}

func (r *resolver) block(n *ast.Block, params [][]*ast.Param, scope *env.Environment) (ast.Expr, error) {
	blockScope := scope.Push()
	stmts := make([]ast.Stmt, len(n.Stmts))
	for i, s := range n.Stmts {
		rs, err := r.stmt(s, params, blockScope)
		if err != nil {
			return nil, err
		}
		stmts[i] = rs
	}
	tail, err := r.expr(n.Tail, params, blockScope)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Stmts: stmts, Tail: tail, Lbrace: n.Lbrace, Rbrace: n.Rbrace}, nil
}

func (r *resolver) stmt(s ast.Stmt, params [][]*ast.Param, scope *env.Environment) (ast.Stmt, error) {
	switch n := s.(type) {
	case *ast.Let:
		rv, err := r.expr(n.Value, params, scope)
		if err != nil {
			return nil, err
		}
		if err := scope.Add(r.file, n.Start, n.Name, rv); err != nil {
			return nil, err
		}
		return &ast.Let{Name: n.Name, Value: rv, Start: n.Start, Semi: n.Semi}, nil

	case *ast.Import:
		// n.Value already holds the parsed namespace expression loaded by the
		// parser; only the binding itself needs registering here.
		if err := scope.Add(r.file, n.Start, n.Name, n.Value); err != nil {
			return nil, err
		}
		return n, nil

	case *ast.Bang:
		rv, err := r.expr(n.Value, params, scope)
		if err != nil {
			return nil, err
		}
		return &ast.Bang{Value: rv, Start: n.Start, Semi: n.Semi}, nil
	}

	return nil, fmt.Errorf("resolver: unsupported statement %T", s)
}

// namespaceLit resolves a namespace literal's definitions under a scope
// that extends cumulatively: each definition can refer, by name, to any
// definition that precedes it in the same literal.
func (r *resolver) namespaceLit(n *ast.NamespaceLit, params [][]*ast.Param, scope *env.Environment) (ast.Expr, error) {
	nsScope := scope.Push()
	defs := make([]*ast.NamespaceDef, len(n.Defs))
	for i, d := range n.Defs {
		rv, err := r.expr(d.Value, params, nsScope)
		if err != nil {
			return nil, err
		}
		defs[i] = &ast.NamespaceDef{Name: d.Name, Value: rv, Start: d.Start}
		// Namespace member names may repeat: Define (not Add) records every
		// definition without a redeclaration error, and Find resolves a
		// repeated name to the most recent one, so a same-literal reference to
		// a shadowed name agrees with the runtime Namespace's last-wins
		// Lookup/WriteJSON instead of freezing on the first definition.
		nsScope.Define(d.Name, rv)
	}
	return &ast.NamespaceLit{Defs: defs, NsPos: n.NsPos, Rbrace: n.Rbrace}, nil
}
