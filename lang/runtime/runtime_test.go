package runtime_test

import (
	"bytes"
	"testing"

	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/runtime"
	"github.com/mna/slang/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSimplify(t *testing.T, e ast.Expr) runtime.Value {
	t.Helper()
	v, err := runtime.Simplify(nil, e)
	require.NoError(t, err)
	return v
}

func TestArithmetic(t *testing.T) {
	// 1 + 1 == 2
	sum := &ast.BinaryOp{Op: token.PLUS, X: &ast.IntLit{Val: 1}, Y: &ast.IntLit{Val: 1}}
	assert.Equal(t, runtime.Int{Val: 2}, mustSimplify(t, sum))

	// 1 / 2 == 0.5 (inexact division widens to float)
	half := &ast.BinaryOp{Op: token.SLASH, X: &ast.IntLit{Val: 1}, Y: &ast.IntLit{Val: 2}}
	assert.Equal(t, runtime.Float{Val: 0.5}, mustSimplify(t, half))

	// 0 / 2 == 0 (exact division stays int)
	zero := &ast.BinaryOp{Op: token.SLASH, X: &ast.IntLit{Val: 0}, Y: &ast.IntLit{Val: 2}}
	assert.Equal(t, runtime.Int{Val: 0}, mustSimplify(t, zero))

	// -7 % 2 == 1, matching the divisor's sign rather than Go's native %
	mod := &ast.BinaryOp{Op: token.PCT, X: &ast.IntLit{Val: -7}, Y: &ast.IntLit{Val: 2}}
	assert.Equal(t, runtime.Int{Val: 1}, mustSimplify(t, mod))

	// 7 % -2 == -1
	mod2 := &ast.BinaryOp{Op: token.PCT, X: &ast.IntLit{Val: 7}, Y: &ast.IntLit{Val: -2}}
	assert.Equal(t, runtime.Int{Val: -1}, mustSimplify(t, mod2))
}

func TestDivisionByZero(t *testing.T) {
	div := &ast.BinaryOp{Op: token.SLASH, X: &ast.IntLit{Val: 1}, Y: &ast.IntLit{Val: 0}}
	_, err := runtime.Simplify(nil, div)
	require.Error(t, err)
}

func TestIfThenElse(t *testing.T) {
	n := &ast.If{
		Test: &ast.BoolLit{Val: true},
		Then: &ast.IntLit{Val: 7},
		Else: &ast.IntLit{Val: 3},
	}
	assert.Equal(t, runtime.Int{Val: 7}, mustSimplify(t, n))

	n.Test = &ast.BoolLit{Val: false}
	assert.Equal(t, runtime.Int{Val: 3}, mustSimplify(t, n))
}

func TestFunctionApplication(t *testing.T) {
	// (fn(x) { x + 1 })(41) == 42
	fn := &ast.FunctionDef{
		Params: []*ast.Param{{Name: "x"}},
		Body: &ast.BinaryOp{
			Op: token.PLUS,
			X:  &ast.Bound{Name: "x", Depth: 0, Index: 0},
			Y:  &ast.IntLit{Val: 1},
		},
	}
	call := &ast.Call{Fn: fn, Args: []ast.Expr{&ast.IntLit{Val: 41}}}
	assert.Equal(t, runtime.Int{Val: 42}, mustSimplify(t, call))
}

func TestSelfReferenceRecursion(t *testing.T) {
	// factorial(n) = if n <= 1 then 1 else n * this(n - 1)
	var fact *ast.FunctionDef
	fact = &ast.FunctionDef{
		Params: []*ast.Param{{Name: "n"}},
		Body: &ast.If{
			Test: &ast.BinaryOp{Op: token.LE, X: &ast.Bound{Depth: 0, Index: 0, Name: "n"}, Y: &ast.IntLit{Val: 1}},
			Then: &ast.IntLit{Val: 1},
			Else: &ast.BinaryOp{
				Op: token.STAR,
				X:  &ast.Bound{Depth: 0, Index: 0, Name: "n"},
				Y: &ast.Call{
					Fn: &ast.This{},
					Args: []ast.Expr{
						&ast.BinaryOp{Op: token.MINUS, X: &ast.Bound{Depth: 0, Index: 0, Name: "n"}, Y: &ast.IntLit{Val: 1}},
					},
				},
			},
		},
	}

	call := &ast.Call{Fn: fact, Args: []ast.Expr{&ast.IntLit{Val: 7}}}
	assert.Equal(t, runtime.Int{Val: 5040}, mustSimplify(t, call))
}

func TestArrayIndexing(t *testing.T) {
	arr := &ast.ArrayLit{Elems: []ast.Expr{&ast.IntLit{Val: 10}, &ast.IntLit{Val: 20}, &ast.IntLit{Val: 30}}}
	idx := &ast.Index{X: arr, Idx: &ast.IntLit{Val: 1}}
	assert.Equal(t, runtime.Int{Val: 20}, mustSimplify(t, idx))

	oob := &ast.Index{X: arr, Idx: &ast.IntLit{Val: 99}}
	_, err := runtime.Simplify(nil, oob)
	require.Error(t, err)
}

func TestNamespaceLastWinsAndRemoveCombine(t *testing.T) {
	ns := runtime.NewNamespace([]runtime.NamespaceEntry{
		{Name: "a", Value: runtime.Int{Val: 1}},
		{Name: "a", Value: runtime.Int{Val: 2}},
	})
	v, ok := ns.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, runtime.Int{Val: 2}, v)

	removed := ns.Remove("a")
	assert.False(t, removed.Has("a"))

	other := runtime.NewNamespace([]runtime.NamespaceEntry{{Name: "b", Value: runtime.Int{Val: 3}}})
	combined := ns.Combine(other)
	bv, ok := combined.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, runtime.Int{Val: 3}, bv)
}

func TestToJSON(t *testing.T) {
	arr := runtime.NewArray([]ast.Expr{runtime.Int{Val: 1}, runtime.String{Val: "x"}})
	got := runtime.ToJSON(arr)
	assert.Equal(t, []interface{}{int64(1), "x"}, got)

	ns := runtime.NewNamespace([]runtime.NamespaceEntry{{Name: "k", Value: runtime.Bool{Val: true}}})
	assert.Equal(t, map[string]interface{}{"k": true}, runtime.ToJSON(ns))
}

func TestCombineOrdersOtherFirstThenUnshadowed(t *testing.T) {
	a := runtime.NewNamespace([]runtime.NamespaceEntry{
		{Name: "x", Value: runtime.Int{Val: 1}},
		{Name: "y", Value: runtime.Int{Val: 2}},
	})
	b := runtime.NewNamespace([]runtime.NamespaceEntry{
		{Name: "y", Value: runtime.Int{Val: 20}},
		{Name: "z", Value: runtime.Int{Val: 3}},
	})
	combined := a.Combine(b)
	require.Len(t, combined.Defs, 3)
	assert.Equal(t, "y", combined.Defs[0].Name)
	assert.Equal(t, "z", combined.Defs[1].Name)
	assert.Equal(t, "x", combined.Defs[2].Name)
	v, _ := combined.Lookup("y")
	assert.Equal(t, runtime.Int{Val: 20}, v)
}

func TestWriteJSONPreservesNamespaceDefinitionOrder(t *testing.T) {
	ns := runtime.NewNamespace([]runtime.NamespaceEntry{
		{Name: "b", Value: runtime.Int{Val: 1}},
		{Name: "a", Value: runtime.String{Val: "x"}},
		{Name: "b", Value: runtime.Int{Val: 2}},
	})
	var buf bytes.Buffer
	require.NoError(t, runtime.WriteJSON(&buf, ns))
	assert.Equal(t, `{"b":2,"a":"x"}`, buf.String())
}
