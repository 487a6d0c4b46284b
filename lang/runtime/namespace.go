package runtime

import (
	"fmt"
	"strings"

	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/token"
)

// NamespaceEntry is a single name/value pair inside a Namespace, in
// declaration order.
type NamespaceEntry struct {
	Name  string
	Value ast.Expr
}

// Namespace is an ordered collection of named values. Lookups resolve
// duplicate names to the last matching entry (last-wins), matching the
// override semantics of the namespace literal: later definitions in the
// same literal shadow earlier ones with the same name without removing them
// from iteration order. Combine instead drops the receiver's entries whose
// name the other namespace binds.
type Namespace struct {
	ast.ExprBase
	Defs []NamespaceEntry
}

// NewNamespace returns a namespace with the given entries, in order.
func NewNamespace(defs []NamespaceEntry) *Namespace { return &Namespace{Defs: defs} }

func (*Namespace) IsValue() bool    { return true }
func (*Namespace) TypeName() string { return "namespace" }
func (n *Namespace) Truth() bool    { return len(n.Defs) > 0 }

func (n *Namespace) Span() (token.Pos, token.Pos) { return token.NoPos, token.NoPos }

func (n *Namespace) Walk(v ast.Visitor) {
	for _, d := range n.Defs {
		ast.Walk(v, d.Value)
	}
}

func (n *Namespace) Format(f fmt.State, verb rune) { fmt.Fprint(f, n.String()) }

func (n *Namespace) String() string {
	parts := make([]string, len(n.Defs))
	for i, d := range n.Defs {
		parts[i] = fmt.Sprintf("%s = %v", d.Name, d.Value)
	}
	return "namespace { " + strings.Join(parts, "; ") + " }"
}

// Has reports whether name is bound in the namespace.
func (n *Namespace) Has(name string) bool {
	_, ok := n.Lookup(name)
	return ok
}

// Lookup returns the value bound to name, resolving duplicates to the last
// matching entry in declaration order. The second result is false if no
// entry by that name exists.
func (n *Namespace) Lookup(name string) (ast.Expr, bool) {
	for i := len(n.Defs) - 1; i >= 0; i-- {
		if n.Defs[i].Name == name {
			return n.Defs[i].Value, true
		}
	}
	return nil, false
}

// Remove returns a new namespace with every entry named name removed,
// preserving the relative order of the remaining entries.
func (n *Namespace) Remove(name string) *Namespace {
	out := make([]NamespaceEntry, 0, len(n.Defs))
	for _, d := range n.Defs {
		if d.Name != name {
			out = append(out, d)
		}
	}
	return NewNamespace(out)
}

// Combine returns a new namespace holding other's entries followed by n's
// entries whose name does not appear anywhere in other, so that a name
// bound in both resolves to other's value while still only appearing once
// in iteration order.
func (n *Namespace) Combine(other *Namespace) *Namespace {
	inOther := make(map[string]bool, len(other.Defs))
	for _, d := range other.Defs {
		inOther[d.Name] = true
	}

	out := make([]NamespaceEntry, 0, len(n.Defs)+len(other.Defs))
	out = append(out, other.Defs...)
	for _, d := range n.Defs {
		if !inOther[d.Name] {
			out = append(out, d)
		}
	}
	return NewNamespace(out)
}
