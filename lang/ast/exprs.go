package ast

import (
	"fmt"

	"github.com/mna/slang/lang/token"
)

type (
	// IntLit is an integer literal, e.g. 42.
	IntLit struct {
		ExprBase
		Val        int64
		Start, End token.Pos
	}

	// FloatLit is a floating point literal, e.g. 1.5.
	FloatLit struct {
		ExprBase
		Val        float64
		Start, End token.Pos
	}

	// BoolLit is a boolean literal, true or false.
	BoolLit struct {
		ExprBase
		Val        bool
		Start, End token.Pos
	}

	// StringLit is a string literal, e.g. "foo".
	StringLit struct {
		ExprBase
		Val        string
		Start, End token.Pos
	}

	// ArrayLit is an array literal, e.g. [a, b, c].
	ArrayLit struct {
		ExprBase
		Elems          []Expr
		Lbrack, Rbrack token.Pos
	}

	// Variable is a free identifier reference before binding resolution. The
	// walk pass replaces every Variable with either a Bound, a Reference, or
	// (for the name "this") a This.
	Variable struct {
		ExprBase
		Name  string
		Start token.Pos
	}

	// Bound is a resolved reference to a function parameter, expressed as a
	// de Bruijn-style distance from the innermost enclosing function's
	// parameter list: Depth counts the number of function bodies to cross
	// (0 = the directly enclosing function) and Index is the parameter's
	// position within that function's parameter list. Produced only by the
	// resolver, never by the parser.
	Bound struct {
		ExprBase
		Name  string
		Depth int
		Index int
		Start token.Pos
	}

	// Reference is a resolved, frozen link from a use site to the AST of a
	// binder found in the enclosing Environment (a `let` binding or an
	// imported/namespace definition). Produced by the resolver, and also
	// synthesized at Call time to bind `this` to the invoked closure.
	Reference struct {
		ExprBase
		Name  string
		Value Expr
		Start token.Pos
	}

	// This is the self-reference placeholder. It is illegal outside a
	// function body; at call time the runtime substitutes every This leaf in
	// the callee body with a Reference to the closure being applied.
	This struct {
		ExprBase
		Start token.Pos
	}

	// UnaryOp applies a unary operator (+, -, ~, !) to an operand.
	UnaryOp struct {
		ExprBase
		Op    token.Token
		OpPos token.Pos
		X     Expr
	}

	// BinaryOp applies a binary operator to two operands.
	BinaryOp struct {
		ExprBase
		Op    token.Token
		OpPos token.Pos
		X, Y  Expr
	}

	// If is a conditional expression: if Test then Then else Else.
	If struct {
		ExprBase
		Test, Then, Else Expr
		IfPos            token.Pos
	}

	// Block evaluates Stmts in order for their effect on scope, then
	// evaluates Tail and returns its value.
	Block struct {
		ExprBase
		Stmts          []Stmt
		Tail           Expr
		Lbrace, Rbrace token.Pos
	}

	// FunctionDef is a function literal. Body is nil for builtins, which
	// instead carry a non-nil Native handle; substitution and walking leave
	// Native bodies untouched.
	FunctionDef struct {
		ExprBase
		Params     []*Param
		Body       Expr
		Native     NativeFunc
		Start, End token.Pos
	}

	// NativeFunc is the signature of a builtin's native implementation. The
	// runtime package supplies the concrete Caller/Value types at the call
	// site; ast only needs to carry the handle opaquely.
	NativeFunc func(caller interface{}, args []Expr) (Expr, error)

	// Call applies Fn to Args.
	Call struct {
		ExprBase
		Fn             Expr
		Args           []Expr
		Lparen, Rparen token.Pos
	}

	// Lookup is a double-colon path into a namespace, e.g. ns::name.
	Lookup struct {
		ExprBase
		Base   Expr
		Name   string
		ColCol token.Pos
	}

	// Index is array element access, e.g. a[i].
	Index struct {
		ExprBase
		X, Idx         Expr
		Lbrack, Rbrack token.Pos
	}

	// NamespaceLit is a namespace literal, e.g. namespace { a = 1; b = 2; }.
	NamespaceLit struct {
		ExprBase
		Defs   []*NamespaceDef
		NsPos  token.Pos
		Rbrace token.Pos
	}
)

func (n *IntLit) Span() (token.Pos, token.Pos)    { return n.Start, n.End }
func (n *IntLit) Walk(_ Visitor)                  {}
func (n *IntLit) Format(f fmt.State, verb rune)   { format(f, verb, n, fmt.Sprint(n.Val), nil) }
func (n *FloatLit) Span() (token.Pos, token.Pos)  { return n.Start, n.End }
func (n *FloatLit) Walk(_ Visitor)                {}
func (n *FloatLit) Format(f fmt.State, verb rune) { format(f, verb, n, fmt.Sprint(n.Val), nil) }
func (n *BoolLit) Span() (token.Pos, token.Pos)   { return n.Start, n.End }
func (n *BoolLit) Walk(_ Visitor)                 {}
func (n *BoolLit) Format(f fmt.State, verb rune)  { format(f, verb, n, fmt.Sprint(n.Val), nil) }
func (n *StringLit) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *StringLit) Walk(_ Visitor)               {}
func (n *StringLit) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("%q", n.Val), nil)
}

func (n *ArrayLit) Span() (token.Pos, token.Pos) { return n.Lbrack, n.Rbrack }
func (n *ArrayLit) Walk(v Visitor) {
	for _, e := range n.Elems {
		Walk(v, e)
	}
}
func (n *ArrayLit) Format(f fmt.State, verb rune) {
	format(f, verb, n, "array", map[string]int{"elems": len(n.Elems)})
}

func (n *Variable) Span() (token.Pos, token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Name))
}
func (n *Variable) Walk(_ Visitor)                {}
func (n *Variable) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name, nil) }

func (n *Bound) Span() (token.Pos, token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Name))
}
func (n *Bound) Walk(_ Visitor) {}
func (n *Bound) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("%s<%d,%d>", n.Name, n.Depth, n.Index), nil)
}

func (n *Reference) Span() (token.Pos, token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Name))
}
func (n *Reference) Walk(v Visitor) { Walk(v, n.Value) }
func (n *Reference) Format(f fmt.State, verb rune) {
	format(f, verb, n, "ref:"+n.Name, nil)
}

func (n *This) Span() (token.Pos, token.Pos)  { return n.Start, n.Start + token.Pos(len("this")) }
func (n *This) Walk(_ Visitor)                {}
func (n *This) Format(f fmt.State, verb rune) { format(f, verb, n, "this", nil) }

func (n *UnaryOp) Span() (token.Pos, token.Pos) {
	_, xend := n.X.Span()
	return n.OpPos, xend
}
func (n *UnaryOp) Walk(v Visitor) { Walk(v, n.X) }
func (n *UnaryOp) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Op.String(), nil)
}

func (n *BinaryOp) Span() (token.Pos, token.Pos) {
	xstart, _ := n.X.Span()
	_, yend := n.Y.Span()
	return xstart, yend
}
func (n *BinaryOp) Walk(v Visitor) { Walk(v, n.X); Walk(v, n.Y) }
func (n *BinaryOp) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Op.String(), nil)
}

func (n *If) Span() (token.Pos, token.Pos) {
	_, eend := n.Else.Span()
	return n.IfPos, eend
}
func (n *If) Walk(v Visitor)                { Walk(v, n.Test); Walk(v, n.Then); Walk(v, n.Else) }
func (n *If) Format(f fmt.State, verb rune) { format(f, verb, n, "if", nil) }

func (n *Block) Span() (token.Pos, token.Pos) { return n.Lbrace, n.Rbrace }
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
	Walk(v, n.Tail)
}
func (n *Block) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}

func (n *FunctionDef) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *FunctionDef) Walk(v Visitor) {
	if n.Body != nil {
		Walk(v, n.Body)
	}
}
func (n *FunctionDef) Format(f fmt.State, verb rune) {
	format(f, verb, n, "function", map[string]int{"params": len(n.Params)})
}

// IsBuiltin reports whether this function's body is a native Go handle
// rather than an AST body. Substitution and walking leave builtin bodies
// untouched (spec.md section 4.3/4.8).
func (n *FunctionDef) IsBuiltin() bool { return n.Native != nil }

// IsValue reports that a function definition is itself a value (spec.md
// invariant 5): a FunctionDef only becomes a runtime Closure once paired
// with a capture environment, but the AST node is already considered a
// value in the sense that it requires no further reduction.
func (n *FunctionDef) IsValue() bool { return true }

// TypeName and Truth complete the runtime.Value interface for function
// values, which the evaluator returns as the *FunctionDef itself.
func (n *FunctionDef) TypeName() string { return "function" }
func (n *FunctionDef) Truth() bool      { return true }

func (n *Call) Span() (token.Pos, token.Pos) {
	start, _ := n.Fn.Span()
	return start, n.Rparen
}
func (n *Call) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *Call) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}

func (n *Lookup) Span() (token.Pos, token.Pos) {
	start, _ := n.Base.Span()
	return start, n.ColCol + token.Pos(len(n.Name))
}
func (n *Lookup) Walk(v Visitor) { Walk(v, n.Base) }
func (n *Lookup) Format(f fmt.State, verb rune) {
	format(f, verb, n, "lookup ::"+n.Name, nil)
}

func (n *Index) Span() (token.Pos, token.Pos) {
	start, _ := n.X.Span()
	return start, n.Rbrack
}
func (n *Index) Walk(v Visitor)                { Walk(v, n.X); Walk(v, n.Idx) }
func (n *Index) Format(f fmt.State, verb rune) { format(f, verb, n, "index", nil) }

func (n *NamespaceLit) Span() (token.Pos, token.Pos) { return n.NsPos, n.Rbrace }
func (n *NamespaceLit) Walk(v Visitor) {
	for _, d := range n.Defs {
		Walk(v, d)
	}
}
func (n *NamespaceLit) Format(f fmt.State, verb rune) {
	format(f, verb, n, "namespace", map[string]int{"defs": len(n.Defs)})
}

// NamespaceLit does not shadow IsValue: the literal form is not yet
// reduced; only the evaluated runtime.Namespace is a value, so ExprBase's
// IsValue (false) applies to it like any other syntax node.
