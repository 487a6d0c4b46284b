package ast

import (
	"fmt"

	"github.com/mna/slang/lang/token"
)

type (
	// Param represents a single function parameter. Its Type is "" if the
	// parameter carries no annotation, in which case the type judge assigns
	// it Any (spec.md section 4.7).
	Param struct {
		Name  string
		Type  string // basic type annotation literal, or "" if omitted
		Start token.Pos
	}

	// NamespaceDef represents a single `name = value;` definition inside a
	// namespace literal.
	NamespaceDef struct {
		Name  string
		Value Expr
		Start token.Pos
	}
)

func (n *Param) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Name))
}
func (n *Param) Walk(_ Visitor) {}
func (n *Param) Format(f fmt.State, verb rune) {
	lbl := n.Name
	if n.Type != "" {
		lbl += " : " + n.Type
	}
	format(f, verb, n, lbl, nil)
}

func (n *NamespaceDef) Span() (start, end token.Pos) {
	_, vend := n.Value.Span()
	return n.Start, vend
}
func (n *NamespaceDef) Walk(v Visitor) { Walk(v, n.Value) }
func (n *NamespaceDef) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Name+" = ...;", nil)
}
