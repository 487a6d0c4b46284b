// Package ast defines the term algebra of slang: the tagged expression and
// statement variants produced by the parser, refined in place by the
// resolver ("walk" pass), and reduced by the runtime's substitution engine.
//
// The AST is deliberately small and uniform: every node knows its own
// source span and can be visited, so that positions survive all the way
// from parsing through to runtime error reporting.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mna/slang/lang/token"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements the fmt.Formatter interface so it can print a
	// description of itself. The only supported verbs are 'v' and 's'. The
	// '#' flag prints count information about child nodes.
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk visits each child node to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr represents an expression in the AST. Runtime values (see package
// runtime) are also Exprs, since a value is a degenerate, already-reduced
// expression (spec: "Values (a subset of expressions, is_value = true)").
// A type defined outside this package can satisfy Expr by embedding
// ExprBase.
type Expr interface {
	Node
	exprNode()
	// IsValue reports whether this expression is already fully reduced, i.e.
	// simplify(e) == e. Literal AST nodes (IntLit, etc) are NOT themselves
	// values -- they are unevaluated syntax that reduces to a runtime.Value.
	IsValue() bool
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmtNode()
}

// ExprBase is embedded by expression node types, including ones defined
// outside this package (runtime values), to satisfy the unexported
// exprNode marker of the Expr interface. Embedders that are themselves
// already-reduced values should shadow IsValue to return true.
type ExprBase struct{}

func (ExprBase) exprNode() {}

// IsValue is the default for ExprBase embedders: syntax nodes are not
// values until simplified. runtime.Value implementations shadow this
// method to return true.
func (ExprBase) IsValue() bool { return false }

// StmtBase is embedded by statement node types to satisfy the unexported
// stmtNode marker of the Stmt interface.
type StmtBase struct{}

func (StmtBase) stmtNode() {}

// VisitDirection indicates whether a call to Visit enters or exits a node.
type VisitDirection int

// List of visit directions.
const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor defines the method to implement for a Visitor, which gets called
// for each participating node in the call to Walk. A node's children can
// be skipped by returning a nil visitor from the call to Visit.
type Visitor interface {
	Visit(n Node, dir VisitDirection) (w Visitor)
}

// VisitorFunc is a function that implements the Visitor interface.
type VisitorFunc func(n Node, dir VisitDirection) Visitor

// Visit implements the Visitor interface for VisitorFunc.
func (f VisitorFunc) Visit(n Node, dir VisitDirection) Visitor {
	return f(n, dir)
}

// Walk visits each node with Visitor v starting with the provided node. It
// first calls Visit with the node in VisitEnter direction, and if that call
// returns a non-nil Visitor, it recursively walks the children of this node
// and calls Visit again with the node and VisitExit direction when it exits
// the node (after all children have been visited).
func Walk(v Visitor, node Node) {
	if v = v.Visit(node, VisitEnter); v == nil {
		return
	}
	node.Walk(v)
	v.Visit(node, VisitExit)
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
