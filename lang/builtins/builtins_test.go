package builtins_test

import (
	"bytes"
	"testing"

	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/builtins"
	"github.com/mna/slang/lang/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, fn *ast.FunctionDef, args ...ast.Expr) ast.Expr {
	t.Helper()
	got, err := fn.Native(fn, args)
	require.NoError(t, err)
	return got
}

func TestEcho(t *testing.T) {
	var buf bytes.Buffer
	root := builtins.Root(&buf)
	echo, ok := root.Lookup("echo")
	require.True(t, ok)

	got := call(t, echo.(*ast.FunctionDef), runtime.Int{Val: 42})
	assert.Equal(t, runtime.Int{Val: 42}, got)
	assert.Contains(t, buf.String(), "42")
}

func TestLength(t *testing.T) {
	root := builtins.Root(&bytes.Buffer{})
	length, _ := root.Lookup("length")
	arr := runtime.NewArray([]ast.Expr{runtime.Int{Val: 1}, runtime.Int{Val: 2}, runtime.Int{Val: 3}})
	got := call(t, length.(*ast.FunctionDef), arr)
	assert.Equal(t, runtime.Int{Val: 3}, got)
}

func TestNslibHasRemoveCombine(t *testing.T) {
	root := builtins.Root(&bytes.Buffer{})
	nslibVal, ok := root.Lookup("nslib")
	require.True(t, ok)
	nslib := nslibVal.(*runtime.Namespace)

	has, _ := nslib.Lookup("has")
	remove, _ := nslib.Lookup("remove")
	combine, _ := nslib.Lookup("combine")

	ns := runtime.NewNamespace([]runtime.NamespaceEntry{{Name: "a", Value: runtime.Int{Val: 1}}})

	gotHas := call(t, has.(*ast.FunctionDef), ns, runtime.String{Val: "a"})
	assert.Equal(t, runtime.Bool{Val: true}, gotHas)

	gotRemove := call(t, remove.(*ast.FunctionDef), ns, runtime.String{Val: "a"})
	assert.False(t, gotRemove.(*runtime.Namespace).Has("a"))

	other := runtime.NewNamespace([]runtime.NamespaceEntry{{Name: "b", Value: runtime.Int{Val: 2}}})
	gotCombine := call(t, combine.(*ast.FunctionDef), ns, other)
	combined := gotCombine.(*runtime.Namespace)
	assert.True(t, combined.Has("a"))
	assert.True(t, combined.Has("b"))
}

func TestMinMaxAbsNot(t *testing.T) {
	root := builtins.Root(&bytes.Buffer{})
	minFn, _ := root.Lookup("min")
	maxFn, _ := root.Lookup("max")
	absFn, _ := root.Lookup("abs")
	notFn, _ := root.Lookup("not")

	assert.Equal(t, runtime.Int{Val: 1}, call(t, minFn.(*ast.FunctionDef), runtime.Int{Val: 1}, runtime.Int{Val: 2}))
	assert.Equal(t, runtime.Int{Val: 2}, call(t, maxFn.(*ast.FunctionDef), runtime.Int{Val: 1}, runtime.Int{Val: 2}))
	assert.Equal(t, runtime.Int{Val: 5}, call(t, absFn.(*ast.FunctionDef), runtime.Int{Val: -5}))
	assert.Equal(t, runtime.Bool{Val: false}, call(t, notFn.(*ast.FunctionDef), runtime.Bool{Val: true}))
}
