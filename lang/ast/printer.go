package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/mna/slang/lang/token"
)

// Printer controls pretty-printing of the AST nodes as an indented tree,
// one line per node.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// File is the source file the printed node belongs to, used to render
	// positions. If nil, positions are omitted.
	File *token.File

	// NodeFmt is the format string to use to print the nodes. The verb must
	// be either `s` or `v`, a width can be set, and the `#` and `-` flags are
	// supported (`-` only when a width is set, to pad with spaces on the
	// right instead of the left). Defaults to `%v`.
	NodeFmt string
}

// Print pretty-prints the AST node n.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, nodeFmt: p.NodeFmt, file: p.File}
	if p.NodeFmt == "" {
		pp.nodeFmt = "%v"
	}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	nodeFmt string
	file    *token.File
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}

	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.file != nil {
		format += "[%s:%s] "
		start, end := n.Span()
		args = append(args, p.file.Position(start), p.file.Position(end))
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)

	_, p.err = fmt.Fprintf(p.w, format, args...)
}
