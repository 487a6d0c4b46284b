// Package env implements the lexical environment chain the resolver walks
// against: a stack of scopes mapping a `let`/`import` name to the AST
// expression it was bound to, so that a later reference can be linked
// directly to that expression rather than looked up again at runtime.
package env

import (
	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/errors"
	"github.com/mna/slang/lang/token"
)

// Environment is one scope in the chain. The zero value is a usable,
// parentless root scope.
type Environment struct {
	parent *Environment
	names  []string
	values []ast.Expr
}

// New returns a new, empty root environment.
func New() *Environment { return &Environment{} }

// Push returns a new child scope of e. Definitions added to the child are
// not visible in e, but e's definitions remain visible (and shadowable) in
// the child.
func (e *Environment) Push() *Environment { return &Environment{parent: e} }

// Add binds name to value in e. It is an error to redeclare the same name
// twice within the same scope.
func (e *Environment) Add(file *token.File, pos token.Pos, name string, value ast.Expr) error {
	for _, n := range e.names {
		if n == name {
			return errors.New(errors.EnvDuplicate, file, pos, "%q is already defined in this scope", name)
		}
	}
	e.names = append(e.names, name)
	e.values = append(e.values, value)
	return nil
}

// Define binds name to value in e without checking for redeclaration,
// appending a new entry even if name is already present in this scope. Find
// resolves a repeated name to the most recently Define'd value, so this
// gives callers last-definition-wins shadowing within a single scope (as
// opposed to Add's redeclare-is-an-error semantics for `let`/`import`).
func (e *Environment) Define(name string, value ast.Expr) {
	e.names = append(e.names, name)
	e.values = append(e.values, value)
}

// Find looks up name starting at e and walking up through parent scopes,
// returning the most recently added matching definition. The boolean
// result is false if no scope in the chain defines name.
func (e *Environment) Find(name string) (ast.Expr, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		for i := len(scope.names) - 1; i >= 0; i-- {
			if scope.names[i] == name {
				return scope.values[i], true
			}
		}
	}
	return nil, false
}

// Keys returns the names defined directly in e, in declaration order. It
// does not include names from parent scopes.
func (e *Environment) Keys() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Root returns the outermost ancestor of e.
func (e *Environment) Root() *Environment {
	scope := e
	for scope.parent != nil {
		scope = scope.parent
	}
	return scope
}
