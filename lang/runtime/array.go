package runtime

import (
	"fmt"
	"strings"

	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/token"
)

// Array is an immutable, fixed-length sequence of values. slang has no
// mutation operators, so unlike the teacher machine package's list type,
// Array carries no frozen flag or iterator bookkeeping.
type Array struct {
	ast.ExprBase
	Elems []ast.Expr
}

// NewArray returns an array wrapping elems. Callers should not subsequently
// modify elems.
func NewArray(elems []ast.Expr) *Array { return &Array{Elems: elems} }

func (*Array) IsValue() bool    { return true }
func (*Array) TypeName() string { return "array" }
func (a *Array) Truth() bool    { return len(a.Elems) > 0 }
func (a *Array) Len() int       { return len(a.Elems) }

func (a *Array) Span() (token.Pos, token.Pos) { return token.NoPos, token.NoPos }

func (a *Array) Walk(v ast.Visitor) {
	for _, e := range a.Elems {
		ast.Walk(v, e)
	}
}

func (a *Array) Format(f fmt.State, verb rune) {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = fmt.Sprintf("%v", e)
	}
	fmt.Fprintf(f, "[%s]", strings.Join(parts, ", "))
}

func (a *Array) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = fmt.Sprintf("%v", e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
