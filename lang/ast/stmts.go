package ast

import (
	"fmt"

	"github.com/mna/slang/lang/token"
)

type (
	// Let binds Value under Name in the enclosing block's environment for
	// the remainder of that block, i.e. `let Name = Value;`.
	Let struct {
		StmtBase
		Name  string
		Value Expr
		Start token.Pos
		Semi  token.Pos
	}

	// Import loads the namespace defined by the file at Path and binds it
	// under Name, i.e. `import Name = "Path";`. Resolved to the parsed,
	// already-walked namespace expression by the parser at parse time.
	Import struct {
		StmtBase
		Name  string
		Path  string
		Value Expr // the parsed contents of the imported file
		Start token.Pos
		Semi  token.Pos
	}

	// Bang evaluates Value for its side effect (printing via a builtin such
	// as echo) and discards the result, i.e. `!Value;`.
	Bang struct {
		StmtBase
		Value Expr
		Start token.Pos
		Semi  token.Pos
	}
)

func (n *Let) Span() (start, end token.Pos) { return n.Start, n.Semi }
func (n *Let) Walk(v Visitor)               { Walk(v, n.Value) }
func (n *Let) Format(f fmt.State, verb rune) {
	format(f, verb, n, "let "+n.Name, nil)
}

func (n *Import) Span() (start, end token.Pos) { return n.Start, n.Semi }
func (n *Import) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *Import) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("import %s = %q", n.Name, n.Path), nil)
}

func (n *Bang) Span() (start, end token.Pos) { return n.Start, n.Semi }
func (n *Bang) Walk(v Visitor)               { Walk(v, n.Value) }
func (n *Bang) Format(f fmt.State, verb rune) {
	format(f, verb, n, "bang", nil)
}
