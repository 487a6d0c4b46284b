package maincmd

import (
	"context"

	"github.com/mna/mainer"
	"github.com/mna/slang/lang/ast"
)

func (c *Cmd) Walk(_ context.Context, stdio mainer.Stdio, args []string) error {
	file, walked, err := walkFile(args[0], stdio)
	if err != nil {
		return printErr(stdio, err)
	}
	printer := ast.Printer{Output: stdio.Stdout, File: file}
	if perr := printer.Print(walked); perr != nil {
		return printErr(stdio, perr)
	}
	return nil
}
