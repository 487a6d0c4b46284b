package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/slang/lang/types"
)

func (c *Cmd) Judge(_ context.Context, stdio mainer.Stdio, args []string) error {
	_, walked, err := walkFile(args[0], stdio)
	if err != nil {
		return printErr(stdio, err)
	}
	fmt.Fprintln(stdio.Stdout, types.Judge(walked))
	return nil
}
