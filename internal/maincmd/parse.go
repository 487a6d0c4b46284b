package maincmd

import (
	"context"

	"github.com/mna/mainer"
	"github.com/mna/slang/lang/ast"
)

func (c *Cmd) Parse(_ context.Context, stdio mainer.Stdio, args []string) error {
	file, prog, err := parseFile(args[0])
	if err != nil {
		return printErr(stdio, err)
	}
	printer := ast.Printer{Output: stdio.Stdout, File: file}
	if perr := printer.Print(prog); perr != nil {
		return printErr(stdio, perr)
	}
	return nil
}
