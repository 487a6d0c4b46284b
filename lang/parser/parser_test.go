package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/parser"
	"github.com/mna/slang/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog, err := parser.Parse("test.slang", []byte(src))
	require.NoError(t, err)
	return prog
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog := parse(t, "1 + 2 * 3")
	block := prog.(*ast.Block)
	bin := block.Tail.(*ast.BinaryOp)
	assert.Equal(t, token.PLUS, bin.Op)
	rhs := bin.Y.(*ast.BinaryOp)
	assert.Equal(t, token.STAR, rhs.Op)
}

func TestParseExponentIsRightAssociative(t *testing.T) {
	prog := parse(t, "2 ^ 3 ^ 2")
	block := prog.(*ast.Block)
	bin := block.Tail.(*ast.BinaryOp)
	assert.Equal(t, token.CARET, bin.Op)
	_, ok := bin.Y.(*ast.BinaryOp)
	assert.True(t, ok, "exponent should be right associative, grouping 3^2 on the right")
	_, ok = bin.X.(*ast.IntLit)
	assert.True(t, ok, "left operand should be the literal 2, not a nested BinaryOp")
}

func TestParseFunctionCallAndLiterals(t *testing.T) {
	prog := parse(t, `f(1, "x", true)`)
	block := prog.(*ast.Block)
	call := block.Tail.(*ast.Call)
	require.Len(t, call.Args, 3)
	assert.Equal(t, int64(1), call.Args[0].(*ast.IntLit).Val)
	assert.Equal(t, "x", call.Args[1].(*ast.StringLit).Val)
	assert.True(t, call.Args[2].(*ast.BoolLit).Val)
}

func TestParseIfThenElse(t *testing.T) {
	prog := parse(t, "if true then 1 else 2")
	block := prog.(*ast.Block)
	ifExpr := block.Tail.(*ast.If)
	assert.Equal(t, int64(1), ifExpr.Then.(*ast.IntLit).Val)
	assert.Equal(t, int64(2), ifExpr.Else.(*ast.IntLit).Val)
}

func TestParseFunctionDefAndLookupAndIndex(t *testing.T) {
	prog := parse(t, "namespace { f = function(x) x; }::f(arr[0])")
	block := prog.(*ast.Block)
	call := block.Tail.(*ast.Call)
	lookup := call.Fn.(*ast.Lookup)
	assert.Equal(t, "f", lookup.Name)
	ns := lookup.Base.(*ast.NamespaceLit)
	require.Len(t, ns.Defs, 1)
	fn := ns.Defs[0].Value.(*ast.FunctionDef)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "x", fn.Params[0].Name)

	idx := call.Args[0].(*ast.Index)
	assert.Equal(t, "arr", idx.X.(*ast.Variable).Name)
}

func TestParseLetAndBangStatements(t *testing.T) {
	prog := parse(t, `let x = 1; !echo(x); x`)
	block := prog.(*ast.Block)
	require.Len(t, block.Stmts, 2)

	let := block.Stmts[0].(*ast.Let)
	assert.Equal(t, "x", let.Name)

	bang := block.Stmts[1].(*ast.Bang)
	_, ok := bang.Value.(*ast.Call)
	assert.True(t, ok)

	assert.Equal(t, "x", block.Tail.(*ast.Variable).Name)
}

func TestParseUnaryNotAsTailExpression(t *testing.T) {
	prog := parse(t, "let ok = true; !ok")
	block := prog.(*ast.Block)
	require.Len(t, block.Stmts, 1)
	unary := block.Tail.(*ast.UnaryOp)
	assert.Equal(t, token.BANG, unary.Op)
}

func TestParseSyntaxErrorReturnsErrorList(t *testing.T) {
	_, err := parser.Parse("test.slang", []byte("let x = ;"))
	require.Error(t, err)
}

func TestParseImportLoadsAndResolvesFile(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.slang")
	require.NoError(t, os.WriteFile(libPath, []byte("namespace { answer = 42; }"), 0o644))

	src := `import lib = "lib.slang"; lib::answer`
	prog, err := parser.Parse(filepath.Join(dir, "main.slang"), []byte(src))
	require.NoError(t, err)

	block := prog.(*ast.Block)
	imp := block.Stmts[0].(*ast.Import)
	require.NotNil(t, imp.Value)
	ns := imp.Value.(*ast.Block).Tail.(*ast.NamespaceLit)
	require.Len(t, ns.Defs, 1)
	assert.Equal(t, "answer", ns.Defs[0].Name)
}
