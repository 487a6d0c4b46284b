package runtime

import "github.com/mna/slang/lang/ast"

// substitute replaces every Bound parameter reference at the given de
// Bruijn level with its corresponding argument value, and renumbers deeper
// Bound references down by one level to account for the function boundary
// being removed by this application. Arguments are already-reduced values
// (closed terms with no free Bound references), so they need no further
// adjustment once substituted in. This mirrors capture-avoiding
// substitution as used by substitution-based interpreters, adapted here to
// a flat parameter list rather than a single-variable lambda calculus.
func substitute(e ast.Expr, args []ast.Expr, level int) ast.Expr {
	switch n := e.(type) {
	case *ast.Bound:
		switch {
		case n.Depth == level:
			return args[n.Index]
		case n.Depth > level:
			return &ast.Bound{Name: n.Name, Depth: n.Depth - 1, Index: n.Index, Start: n.Start}
		default:
			return n
		}

	case *ast.Reference, *ast.This:
		// Frozen links and unresolved self-references are untouched: a
		// Reference's target was already closed over at resolve time, and a
		// This is rewritten only by the call that owns it.
		return n

	case *ast.FunctionDef:
		if n.IsBuiltin() {
			return n
		}
		return &ast.FunctionDef{
			Params: n.Params,
			Body:   substitute(n.Body, args, level+1),
			Start:  n.Start,
			End:    n.End,
		}

	case *ast.UnaryOp:
		return &ast.UnaryOp{Op: n.Op, OpPos: n.OpPos, X: substitute(n.X, args, level)}

	case *ast.BinaryOp:
		return &ast.BinaryOp{
			Op: n.Op, OpPos: n.OpPos,
			X: substitute(n.X, args, level),
			Y: substitute(n.Y, args, level),
		}

	case *ast.If:
		return &ast.If{
			Test:  substitute(n.Test, args, level),
			Then:  substitute(n.Then, args, level),
			Else:  substitute(n.Else, args, level),
			IfPos: n.IfPos,
		}

	case *ast.Block:
		stmts := make([]ast.Stmt, len(n.Stmts))
		for i, s := range n.Stmts {
			stmts[i] = substituteStmt(s, args, level)
		}
		return &ast.Block{
			Stmts:  stmts,
			Tail:   substitute(n.Tail, args, level),
			Lbrace: n.Lbrace, Rbrace: n.Rbrace,
		}

	case *ast.Call:
		callArgs := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			callArgs[i] = substitute(a, args, level)
		}
		return &ast.Call{Fn: substitute(n.Fn, args, level), Args: callArgs, Lparen: n.Lparen, Rparen: n.Rparen}

	case *ast.Lookup:
		return &ast.Lookup{Base: substitute(n.Base, args, level), Name: n.Name, ColCol: n.ColCol}

	case *ast.Index:
		return &ast.Index{X: substitute(n.X, args, level), Idx: substitute(n.Idx, args, level), Lbrack: n.Lbrack, Rbrack: n.Rbrack}

	case *ast.ArrayLit:
		elems := make([]ast.Expr, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = substitute(el, args, level)
		}
		return &ast.ArrayLit{Elems: elems, Lbrack: n.Lbrack, Rbrack: n.Rbrack}

	case *ast.NamespaceLit:
		defs := make([]*ast.NamespaceDef, len(n.Defs))
		for i, d := range n.Defs {
			defs[i] = &ast.NamespaceDef{Name: d.Name, Value: substitute(d.Value, args, level), Start: d.Start}
		}
		return &ast.NamespaceLit{Defs: defs, NsPos: n.NsPos, Rbrace: n.Rbrace}

	default:
		// Literals, already-reduced values, and Variable (which should not
		// survive resolution) carry no Bound references to rewrite.
		return n
	}
}

func substituteStmt(s ast.Stmt, args []ast.Expr, level int) ast.Stmt {
	switch n := s.(type) {
	case *ast.Let:
		return &ast.Let{Name: n.Name, Value: substitute(n.Value, args, level), Start: n.Start, Semi: n.Semi}
	case *ast.Bang:
		return &ast.Bang{Value: substitute(n.Value, args, level), Start: n.Start, Semi: n.Semi}
	case *ast.Import:
		return n
	default:
		return s
	}
}

// rewriteThis replaces every This leaf reachable from e without crossing a
// nested FunctionDef boundary with a Reference to fn. A nested function
// literal's own `this` belongs to that function, not to the call currently
// being resolved, so traversal stops there. rewriteThis also descends into
// Reference.Value: a `let f = this;` alias makes every later use of `f` a
// Reference pointing at the walked `this`, so the rewrite must follow that
// link or a recursive call made through the alias (`f(x-1)`) never sees its
// This replaced. A seen-set keyed by Reference node identity returns the
// already-rewritten copy when the same Reference node is reached again, and
// guards against looping on a cycle through Reference.Value. Distinct
// Reference nodes that share one Value each rewrite that Value.
func rewriteThis(e ast.Expr, fn *ast.FunctionDef) ast.Expr {
	return rewriteThisSeen(e, fn, map[ast.Expr]ast.Expr{})
}

func rewriteThisSeen(e ast.Expr, fn *ast.FunctionDef, seen map[ast.Expr]ast.Expr) ast.Expr {
	if r, ok := seen[e]; ok {
		return r
	}

	switch n := e.(type) {
	case *ast.This:
		return &ast.Reference{Name: "this", Value: fn, Start: n.Start}

	case *ast.Reference:
		out := &ast.Reference{Name: n.Name, Value: n.Value, Start: n.Start}
		seen[e] = out
		out.Value = rewriteThisSeen(n.Value, fn, seen)
		return out

	case *ast.FunctionDef:
		return n

	case *ast.UnaryOp:
		return &ast.UnaryOp{Op: n.Op, OpPos: n.OpPos, X: rewriteThisSeen(n.X, fn, seen)}

	case *ast.BinaryOp:
		return &ast.BinaryOp{Op: n.Op, OpPos: n.OpPos, X: rewriteThisSeen(n.X, fn, seen), Y: rewriteThisSeen(n.Y, fn, seen)}

	case *ast.If:
		return &ast.If{Test: rewriteThisSeen(n.Test, fn, seen), Then: rewriteThisSeen(n.Then, fn, seen), Else: rewriteThisSeen(n.Else, fn, seen), IfPos: n.IfPos}

	case *ast.Block:
		stmts := make([]ast.Stmt, len(n.Stmts))
		for i, s := range n.Stmts {
			stmts[i] = rewriteThisStmt(s, fn, seen)
		}
		return &ast.Block{Stmts: stmts, Tail: rewriteThisSeen(n.Tail, fn, seen), Lbrace: n.Lbrace, Rbrace: n.Rbrace}

	case *ast.Call:
		callArgs := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			callArgs[i] = rewriteThisSeen(a, fn, seen)
		}
		return &ast.Call{Fn: rewriteThisSeen(n.Fn, fn, seen), Args: callArgs, Lparen: n.Lparen, Rparen: n.Rparen}

	case *ast.Lookup:
		return &ast.Lookup{Base: rewriteThisSeen(n.Base, fn, seen), Name: n.Name, ColCol: n.ColCol}

	case *ast.Index:
		return &ast.Index{X: rewriteThisSeen(n.X, fn, seen), Idx: rewriteThisSeen(n.Idx, fn, seen), Lbrack: n.Lbrack, Rbrack: n.Rbrack}

	case *ast.ArrayLit:
		elems := make([]ast.Expr, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = rewriteThisSeen(el, fn, seen)
		}
		return &ast.ArrayLit{Elems: elems, Lbrack: n.Lbrack, Rbrack: n.Rbrack}

	case *ast.NamespaceLit:
		defs := make([]*ast.NamespaceDef, len(n.Defs))
		for i, d := range n.Defs {
			defs[i] = &ast.NamespaceDef{Name: d.Name, Value: rewriteThisSeen(d.Value, fn, seen), Start: d.Start}
		}
		return &ast.NamespaceLit{Defs: defs, NsPos: n.NsPos, Rbrace: n.Rbrace}

	default:
		return n
	}
}

func rewriteThisStmt(s ast.Stmt, fn *ast.FunctionDef, seen map[ast.Expr]ast.Expr) ast.Stmt {
	switch n := s.(type) {
	case *ast.Let:
		return &ast.Let{Name: n.Name, Value: rewriteThisSeen(n.Value, fn, seen), Start: n.Start, Semi: n.Semi}
	case *ast.Bang:
		return &ast.Bang{Value: rewriteThisSeen(n.Value, fn, seen), Start: n.Start, Semi: n.Semi}
	default:
		return s
	}
}
