// Package parser implements the recursive-descent parser that turns slang
// source text into the term algebra of package ast. It follows the
// scanner-driven advance/expect idiom of the teacher's parser: a single
// current token is held at all times, expect consumes it if it matches and
// panics with a sentinel on mismatch, and Parse recovers that panic and
// returns the errors.List recorded so far, the same accumulation strategy lang/errors documents for
// this package.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/errors"
	"github.com/mna/slang/lang/resolver"
	"github.com/mna/slang/lang/scanner"
	"github.com/mna/slang/lang/token"
)

// Parse parses a single slang source file into the AST of its top-level
// program, a Block whose Stmts are its let/import/bang statements and
// whose Tail is the program's result expression. The returned error, if
// non-nil, is an errors.List.
func Parse(filename string, src []byte) (ast.Expr, error) {
	var p parser
	p.init(filename, src)
	prog := p.parseTopLevel()
	p.errors.Sort()
	return prog, p.errors.Err()
}

// parser holds the mutable state of a single parse.
type parser struct {
	file   *token.File
	scan   *scanner.Scanner
	errors errors.List

	tok token.Token
	pos token.Pos
	val scanner.Value
}

func (p *parser) init(filename string, src []byte) {
	p.file = &token.File{Name: filename}
	p.scan = scanner.New(p.file, src, func(pos token.Pos, msg string) {
		p.errors.Add(p.file.Position(pos), msg)
	})
	p.advance()
}

func (p *parser) advance() {
	p.tok, p.pos, p.val = p.scan.Scan()
}

// errPanic is the sentinel panicked by expect on a syntax error and
// recovered by parseTopLevel, following the teacher's panic-mode recovery.
var errPanic = fmt.Errorf("parser: syntax error")

func (p *parser) parseTopLevel() (prog ast.Expr) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanic {
				panic(r)
			}
			if prog == nil {
				prog = &ast.Block{}
			}
		}
	}()
	stmts, tail := p.parseBlockBody()
	p.expect(token.EOF)
	return &ast.Block{Stmts: stmts, Tail: tail}
}

// expect consumes the current token if it is one of toks and returns its
// position, otherwise it records a syntax error and panics with errPanic.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.pos
	for _, t := range toks {
		if p.tok == t {
			p.advance()
			return pos
		}
	}
	p.errorExpected(pos, describeTokens(toks))
	panic(errPanic)
}

func describeTokens(toks []token.Token) string {
	if len(toks) == 1 {
		return toks[0].String()
	}
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.String()
	}
	return "one of " + strings.Join(parts, ", ")
}

func (p *parser) error(pos token.Pos, format string, args ...interface{}) {
	p.errors.Add(p.file.Position(pos), fmt.Sprintf(format, args...))
}

func (p *parser) errorExpected(pos token.Pos, what string) {
	if pos == p.pos {
		p.error(pos, "expected %s, found %s", what, p.tok)
		return
	}
	p.error(pos, "expected %s", what)
}

func (p *parser) parseIdentName() string {
	if p.tok != token.IDENT {
		p.errorExpected(p.pos, "identifier")
		panic(errPanic)
	}
	name := p.val.String
	p.advance()
	return name
}

// parseBlockBody parses the statements and mandatory tail expression shared
// by the top-level program and a `{ ... }` block literal. A statement is
// one of `let`, `import`, or a `!`-prefixed expression followed by a
// semicolon; anything else begins the tail expression and ends the block,
// including an expression itself starting with the unary `!` operator (it
// is distinguished from a Bang statement by the absence of a trailing
// semicolon after its value).
func (p *parser) parseBlockBody() ([]ast.Stmt, ast.Expr) {
	var stmts []ast.Stmt
	for {
		switch p.tok {
		case token.LET:
			stmts = append(stmts, p.parseLetStmt())
			continue
		case token.IMPORT:
			stmts = append(stmts, p.parseImportStmt())
			continue
		case token.BANG:
			bangPos := p.pos
			p.advance()
			val := p.parseExpr()
			if p.tok == token.SEMI {
				semi := p.expect(token.SEMI)
				stmts = append(stmts, &ast.Bang{Value: val, Start: bangPos, Semi: semi})
				continue
			}
			return stmts, &ast.UnaryOp{Op: token.BANG, OpPos: bangPos, X: val}
		}
		return stmts, p.parseExpr()
	}
}

func (p *parser) parseLetStmt() *ast.Let {
	start := p.expect(token.LET)
	name := p.parseIdentName()
	p.expect(token.EQ)
	val := p.parseExpr()
	semi := p.expect(token.SEMI)
	return &ast.Let{Name: name, Value: val, Start: start, Semi: semi}
}

func (p *parser) parseImportStmt() *ast.Import {
	start := p.expect(token.IMPORT)
	name := p.parseIdentName()
	p.expect(token.EQ)
	if p.tok != token.STRING {
		p.errorExpected(p.pos, "string literal")
		panic(errPanic)
	}
	path := p.val.String
	p.advance()
	semi := p.expect(token.SEMI)

	value, err := p.loadImport(path)
	if err != nil {
		p.error(start, "import %q: %v", path, err)
		value = &ast.Block{}
	}
	return &ast.Import{Name: name, Path: path, Value: value, Start: start, Semi: semi}
}

// loadImport reads, parses, and fully resolves the file at path (relative
// to the importing file unless absolute), so that the Reference later
// registered for this binding points at an already-walked expression, with
// no free Variable left for the importing program's own walk to trip over.
func (p *parser) loadImport(path string) (ast.Expr, error) {
	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(filepath.Dir(p.file.Name), path)
	}
	src, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	prog, err := Parse(full, src)
	if err != nil {
		return nil, err
	}
	return resolver.Resolve(&token.File{Name: full}, prog, nil)
}
