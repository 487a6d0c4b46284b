package maincmd

import (
	"os"

	"github.com/mna/mainer"
	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/builtins"
	"github.com/mna/slang/lang/env"
	"github.com/mna/slang/lang/errors"
	"github.com/mna/slang/lang/parser"
	"github.com/mna/slang/lang/resolver"
	"github.com/mna/slang/lang/token"
)

// parseFile reads and parses path, returning its *token.File alongside the
// pre-walk AST.
func parseFile(path string) (*token.File, ast.Expr, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	prog, err := parser.Parse(path, src)
	file := &token.File{Name: path}
	return file, prog, err
}

// walkFile parses and then walks path against the root builtins
// environment, so every free Variable is resolved to a Bound parameter, a
// let/import Reference, or This.
func walkFile(path string, stdio mainer.Stdio) (*token.File, ast.Expr, error) {
	file, prog, err := parseFile(path)
	if err != nil {
		return file, nil, err
	}
	walked, err := resolver.Resolve(file, prog, rootEnv(stdio))
	return file, walked, err
}

// rootEnv lifts the builtins namespace into the env.Environment shape the
// resolver expects at the top of a program's scope chain: the namespace
// itself is bound as `builtins`, and each of its members under its own name.
func rootEnv(stdio mainer.Stdio) *env.Environment {
	root := builtins.Root(stdio.Stdout)
	top := env.New()
	_ = top.Add(nil, token.NoPos, "builtins", root)
	for _, d := range root.Defs {
		_ = top.Add(nil, token.NoPos, d.Name, d.Value)
	}
	return top
}

func printErr(stdio mainer.Stdio, err error) error {
	if err != nil {
		errors.PrintError(stdio.Stderr, err)
	}
	return err
}
