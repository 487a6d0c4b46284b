package maincmd

import (
	"bytes"
	"context"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/slang/lang/runtime"
)

func (c *Cmd) Run(_ context.Context, stdio mainer.Stdio, args []string) error {
	file, walked, err := walkFile(args[0], stdio)
	if err != nil {
		return printErr(stdio, err)
	}

	result, err := runtime.Simplify(file, walked)
	if err != nil {
		return printErr(stdio, err)
	}

	var buf bytes.Buffer
	if err := runtime.WriteJSON(&buf, result); err != nil {
		return printErr(stdio, err)
	}
	buf.WriteByte('\n')

	if len(args) < 2 || c.Print {
		_, err := stdio.Stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(args[1], buf.Bytes(), 0o644)
}
