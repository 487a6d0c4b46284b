package types_test

import (
	"testing"

	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/token"
	"github.com/mna/slang/lang/types"
	"github.com/stretchr/testify/assert"
)

func TestCoercionIsSubtype(t *testing.T) {
	assert.True(t, types.IsSubtype(types.Bool, types.Int))
	assert.True(t, types.IsSubtype(types.Bool, types.Float))
	assert.True(t, types.IsSubtype(types.Int, types.Float))
	assert.False(t, types.IsSubtype(types.Float, types.Int))
	assert.True(t, types.IsSubtype(types.Int, types.Any))
	assert.True(t, types.IsSubtype(types.Void, types.String))
}

func TestMakeUnionDropsRedundantMembers(t *testing.T) {
	u := types.MakeUnion(types.Bool, types.Int)
	assert.Equal(t, types.Int, u, "bool is a subtype of int, so the union collapses to int")

	u2 := types.MakeUnion(types.Int, types.String)
	union, ok := u2.(types.Union)
	assert.True(t, ok)
	assert.Len(t, union.Members, 2)
}

func TestJudgeLiterals(t *testing.T) {
	assert.Equal(t, types.Int, types.Judge(&ast.IntLit{Val: 1}))
	assert.Equal(t, types.Float, types.Judge(&ast.FloatLit{Val: 1.5}))
	assert.Equal(t, types.Bool, types.Judge(&ast.BoolLit{Val: true}))
	assert.Equal(t, types.String, types.Judge(&ast.StringLit{Val: "x"}))
}

func TestJudgeIfUnionsBranches(t *testing.T) {
	n := &ast.If{
		Test: &ast.BoolLit{Val: true},
		Then: &ast.IntLit{Val: 1},
		Else: &ast.StringLit{Val: "x"},
	}
	got := types.Judge(n)
	union, ok := got.(types.Union)
	assert.True(t, ok)
	assert.Len(t, union.Members, 2)
}

func TestJudgeFunctionUsesAnnotationsAndBody(t *testing.T) {
	fn := &ast.FunctionDef{
		Params: []*ast.Param{{Name: "x", Type: "int"}},
		Body:   &ast.BinaryOp{Op: token.PLUS, X: &ast.Bound{Depth: 0, Index: 0}, Y: &ast.IntLit{Val: 1}},
	}
	got := types.Judge(fn).(types.Function)
	assert.Equal(t, []types.Type{types.Int}, got.Params)
	assert.Equal(t, types.Any, got.Result, "Bound's type is unknown to the judge without evaluation")
}

func TestJudgeArrayElementUnion(t *testing.T) {
	arr := &ast.ArrayLit{Elems: []ast.Expr{&ast.IntLit{Val: 1}, &ast.IntLit{Val: 2}}}
	got := types.Judge(arr).(types.Array)
	assert.Equal(t, types.Int, got.Elem)
}

func TestJudgeEmptyArrayIsVoidElement(t *testing.T) {
	got := types.Judge(&ast.ArrayLit{}).(types.Array)
	assert.Equal(t, types.Void, got.Elem)
}
