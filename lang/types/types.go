// Package types implements the structural type judge: a minimal lattice of
// basic, array, function and union types, a coercion table describing which
// basic types may stand in for which others (Bool -> Int -> Float), and a
// Judge function that assigns a static type to an AST expression without
// evaluating it.
package types

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mna/slang/lang/ast"
)

// Type is implemented by every member of the type lattice.
type Type interface {
	fmt.Stringer
	typeNode()
}

// Basic is an atomic type: Any, Void, or one of the four scalar types.
type Basic int

const (
	Any Basic = iota
	Void
	Int
	Float
	Bool
	String
)

func (Basic) typeNode() {}

func (b Basic) String() string {
	switch b {
	case Any:
		return "any"
	case Void:
		return "void"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	}
	return "unknown"
}

// Array is the type of arrays whose elements all have type Elem.
type Array struct{ Elem Type }

func (Array) typeNode()        {}
func (a Array) String() string { return fmt.Sprintf("array<%s>", a.Elem) }

// Function is the type of a function accepting Params and returning Result.
type Function struct {
	Params []Type
	Result Type
}

func (Function) typeNode() {}
func (f Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("function<(%s), %s>", strings.Join(parts, ", "), f.Result)
}

// Union is the type of a value that may be either A or B. Construct unions
// with MakeUnion rather than this struct directly, so that nested/duplicate
// members are flattened and deduplicated.
type Union struct{ Members []Type }

func (Union) typeNode() {}
func (u Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// coercions maps a basic type to the set of basic types it may stand in
// for, precomputed transitively from the direct edges Bool -> Int -> Float
// (spec: bool coerces to int, int coerces to float, and therefore bool
// coerces to float too).
var coercions = func() map[Basic]map[Basic]bool {
	direct := map[Basic][]Basic{
		Bool: {Int},
		Int:  {Float},
	}
	reach := make(map[Basic]map[Basic]bool, len(direct))
	var close func(b Basic) map[Basic]bool
	close = func(b Basic) map[Basic]bool {
		if r, ok := reach[b]; ok {
			return r
		}
		r := map[Basic]bool{}
		reach[b] = r
		for _, next := range direct[b] {
			r[next] = true
			for k := range close(next) {
				r[k] = true
			}
		}
		return r
	}
	for b := range direct {
		close(b)
	}
	return reach
}()

// IsSubtype reports whether a value of type sub may be used wherever a
// value of type super is expected: sub == super, super is Any, sub is
// Void (the bottom type, usable as anything, matching an empty array
// literal's element type), a basic coercion connects sub to super, or both
// are compound types whose structure is compatible.
func IsSubtype(sub, super Type) bool {
	if super == Any {
		return true
	}
	if sub == Void {
		return true
	}
	// Function and Union hold slices, so == on them would panic; compare
	// structurally instead.
	if reflect.DeepEqual(sub, super) {
		return true
	}
	switch s := sub.(type) {
	case Basic:
		b, ok := super.(Basic)
		return ok && (s == b || coercions[s][b])
	case Array:
		a, ok := super.(Array)
		return ok && IsSubtype(s.Elem, a.Elem)
	case Function:
		f, ok := super.(Function)
		if !ok || len(s.Params) != len(f.Params) {
			return false
		}
		for i := range s.Params {
			// Parameter types are contravariant: super must accept at least
			// what sub accepts.
			if !IsSubtype(f.Params[i], s.Params[i]) {
				return false
			}
		}
		return IsSubtype(s.Result, f.Result)
	case Union:
		for _, m := range s.Members {
			if !IsSubtype(m, super) {
				return false
			}
		}
		return true
	}
	return false
}

// MakeUnion builds the union of a and b, flattening nested unions and
// collapsing members where one is already a subtype of another. A union of
// a single distinct member is that member, not a Union of one.
func MakeUnion(a, b Type) Type {
	var members []Type
	add := func(t Type) {
		if u, ok := t.(Union); ok {
			for _, m := range u.Members {
				members = appendUnique(members, m)
			}
			return
		}
		members = appendUnique(members, t)
	}
	add(a)
	add(b)

	// Drop any member that is a strict subtype of another distinct member.
	out := make([]Type, 0, len(members))
	for i, m := range members {
		redundant := false
		for j, other := range members {
			if i == j {
				continue
			}
			if !reflect.DeepEqual(m, other) && IsSubtype(m, other) {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, m)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return Union{Members: out}
}

func appendUnique(members []Type, t Type) []Type {
	for _, m := range members {
		if reflect.DeepEqual(m, t) {
			return members
		}
	}
	return append(members, t)
}

// ParseAnnotation maps a parameter's literal type annotation (as written in
// source, or "" if omitted) to a Type. Unknown or missing annotations
// default to Any (spec: an unannotated parameter is typed Any).
func ParseAnnotation(lit string) Type {
	switch lit {
	case "int":
		return Int
	case "float":
		return Float
	case "bool":
		return Bool
	case "string":
		return String
	case "void":
		return Void
	default:
		return Any
	}
}

// Judge assigns a static type to e without evaluating it.
func Judge(e ast.Expr) Type {
	switch n := e.(type) {
	case *ast.IntLit:
		return Int
	case *ast.FloatLit:
		return Float
	case *ast.BoolLit:
		return Bool
	case *ast.StringLit:
		return String

	case *ast.ArrayLit:
		if len(n.Elems) == 0 {
			return Array{Elem: Void}
		}
		elem := Judge(n.Elems[0])
		for _, el := range n.Elems[1:] {
			elem = MakeUnion(elem, Judge(el))
		}
		return Array{Elem: elem}

	case *ast.UnaryOp:
		return Judge(n.X)

	case *ast.BinaryOp:
		return judgeBinary(n)

	case *ast.If:
		return MakeUnion(Judge(n.Then), Judge(n.Else))

	case *ast.Block:
		return Judge(n.Tail)

	case *ast.FunctionDef:
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = ParseAnnotation(p.Type)
		}
		result := Type(Any)
		if !n.IsBuiltin() {
			result = Judge(n.Body)
		}
		return Function{Params: params, Result: result}

	case *ast.Call:
		fnType := Judge(n.Fn)
		if f, ok := fnType.(Function); ok {
			return f.Result
		}
		return Any

	case *ast.Lookup:
		// Without evaluating the namespace, the judge cannot know the field's
		// type; spec leaves member lookup outside the static judge's scope.
		return Any

	case *ast.Index:
		if a, ok := Judge(n.X).(Array); ok {
			return a.Elem
		}
		return Any

	case *ast.NamespaceLit:
		return Any

	case *ast.Reference:
		return Judge(n.Value)

	case *ast.Bound, *ast.This, *ast.Variable:
		return Any
	}
	return Any
}

func judgeBinary(n *ast.BinaryOp) Type {
	xt, yt := Judge(n.X), Judge(n.Y)
	if n.Op.IsComparison() {
		return Bool
	}
	// Any is absorbing: an operand of unknown type makes the result unknown.
	if xt == Any || yt == Any {
		return Any
	}
	xb, xok := xt.(Basic)
	yb, yok := yt.(Basic)
	if xok && yok && xb == String && yb == String {
		return String
	}
	if xok && yok {
		if xb == Float || yb == Float {
			return Float
		}
		return Int
	}
	if _, ok := xt.(Array); ok {
		return xt
	}
	return Any
}
