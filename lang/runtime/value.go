// Package runtime implements the substitution-based evaluator: capture-safe
// substitution of bound parameters, self-reference resolution at call time,
// and the scalar, array, namespace and function value representations.
//
// A Value is simply an ast.Expr for which IsValue() reports true: slang has
// no separate value representation distinct from syntax, since every value
// is also the (already-reduced) expression that produced it. This mirrors
// the terms.py Value hierarchy the original implementation used, with
// arithmetic and comparison centralized in the Unary and Binary functions
// of ops.go.
package runtime

import (
	"fmt"

	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/token"
)

// Value is the interface satisfied by every fully-reduced expression: the
// scalar types defined in this file, *Array, *Namespace and *ast.FunctionDef.
type Value interface {
	ast.Expr
	// TypeName returns the short name of the value's dynamic type, as used
	// in diagnostics.
	TypeName() string
	// Truth returns the value's boolean interpretation. The evaluator's `if`
	// does not use it: its condition must be a Bool.
	Truth() bool
}

// IsValue reports whether e is a fully reduced Value.
func IsValue(e ast.Expr) bool {
	_, ok := e.(Value)
	return ok && e.IsValue()
}

// Int is the integer scalar value type.
type Int struct {
	ast.ExprBase
	Val int64
}

// Float is the floating point scalar value type.
type Float struct {
	ast.ExprBase
	Val float64
}

// Bool is the boolean scalar value type.
type Bool struct {
	ast.ExprBase
	Val bool
}

// String is the string scalar value type.
type String struct {
	ast.ExprBase
	Val string
}

func (Int) IsValue() bool    { return true }
func (Float) IsValue() bool  { return true }
func (Bool) IsValue() bool   { return true }
func (String) IsValue() bool { return true }

func (Int) TypeName() string    { return "int" }
func (Float) TypeName() string  { return "float" }
func (Bool) TypeName() string   { return "bool" }
func (String) TypeName() string { return "string" }

func (v Int) Truth() bool    { return v.Val != 0 }
func (v Float) Truth() bool  { return v.Val != 0 }
func (v Bool) Truth() bool   { return v.Val }
func (v String) Truth() bool { return v.Val != "" }

func (v Int) Span() (token.Pos, token.Pos)    { return token.NoPos, token.NoPos }
func (v Float) Span() (token.Pos, token.Pos)  { return token.NoPos, token.NoPos }
func (v Bool) Span() (token.Pos, token.Pos)   { return token.NoPos, token.NoPos }
func (v String) Span() (token.Pos, token.Pos) { return token.NoPos, token.NoPos }

func (v Int) Walk(_ ast.Visitor)    {}
func (v Float) Walk(_ ast.Visitor)  {}
func (v Bool) Walk(_ ast.Visitor)   {}
func (v String) Walk(_ ast.Visitor) {}

func (v Int) Format(f fmt.State, verb rune)    { fmt.Fprintf(f, "%d", v.Val) }
func (v Float) Format(f fmt.State, verb rune)  { fmt.Fprintf(f, "%v", v.Val) }
func (v Bool) Format(f fmt.State, verb rune)   { fmt.Fprintf(f, "%v", v.Val) }
func (v String) Format(f fmt.State, verb rune) { fmt.Fprintf(f, "%q", v.Val) }

func (v Int) String() string    { return fmt.Sprintf("%d", v.Val) }
func (v Float) String() string  { return fmt.Sprintf("%v", v.Val) }
func (v Bool) String() string   { return fmt.Sprintf("%v", v.Val) }
func (v String) String() string { return v.Val }

// Equal reports whether x and y are equal values of the same dynamic type.
// Values of differing dynamic type are never equal, matching the original
// implementation's == semantics (no implicit coercion on comparison).
func Equal(x, y Value) bool {
	switch xv := x.(type) {
	case Int:
		yv, ok := y.(Int)
		return ok && xv.Val == yv.Val
	case Float:
		yv, ok := y.(Float)
		return ok && xv.Val == yv.Val
	case Bool:
		yv, ok := y.(Bool)
		return ok && xv.Val == yv.Val
	case String:
		yv, ok := y.(String)
		return ok && xv.Val == yv.Val
	case *Array:
		yv, ok := y.(*Array)
		if !ok || len(xv.Elems) != len(yv.Elems) {
			return false
		}
		for i, e := range xv.Elems {
			if !Equal(e.(Value), yv.Elems[i].(Value)) {
				return false
			}
		}
		return true
	case *Namespace:
		yv, ok := y.(*Namespace)
		if !ok || len(xv.Defs) != len(yv.Defs) {
			return false
		}
		for i, d := range xv.Defs {
			if d.Name != yv.Defs[i].Name || !Equal(d.Value.(Value), yv.Defs[i].Value.(Value)) {
				return false
			}
		}
		return true
	case *ast.FunctionDef:
		return x == y
	}
	return false
}
