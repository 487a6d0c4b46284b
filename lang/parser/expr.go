package parser

import (
	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/token"
)

// parseExpr parses a full expression via precedence climbing, using
// token.Precedence/IsRightAssoc to drive binding power.
func (p *parser) parseExpr() ast.Expr {
	return p.parseBinExpr(1)
}

func (p *parser) parseBinExpr(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		prec := p.tok.Precedence()
		if prec == 0 || prec < minPrec {
			return left
		}
		op := p.tok
		opPos := p.pos
		p.advance()

		nextMin := prec + 1
		if op.IsRightAssoc() {
			nextMin = prec
		}
		right := p.parseBinExpr(nextMin)
		left = &ast.BinaryOp{Op: op, OpPos: opPos, X: left, Y: right}
	}
}

func (p *parser) parseUnary() ast.Expr {
	switch p.tok {
	case token.PLUS, token.MINUS, token.TILDE, token.BANG:
		op := p.tok
		pos := p.pos
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryOp{Op: op, OpPos: pos, X: x}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		switch p.tok {
		case token.LPAREN:
			e = p.parseCall(e)
		case token.COLCOL:
			e = p.parseLookup(e)
		case token.LBRACK:
			e = p.parseIndex(e)
		default:
			return e
		}
	}
}

func (p *parser) parseCall(fn ast.Expr) *ast.Call {
	lparen := p.expect(token.LPAREN)
	var args []ast.Expr
	for p.tok != token.RPAREN && p.tok != token.EOF {
		args = append(args, p.parseExpr())
		if p.tok == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	rparen := p.expect(token.RPAREN)
	return &ast.Call{Fn: fn, Args: args, Lparen: lparen, Rparen: rparen}
}

func (p *parser) parseLookup(base ast.Expr) *ast.Lookup {
	colcol := p.expect(token.COLCOL)
	name := p.parseIdentName()
	return &ast.Lookup{Base: base, Name: name, ColCol: colcol}
}

func (p *parser) parseIndex(x ast.Expr) *ast.Index {
	lbrack := p.expect(token.LBRACK)
	idx := p.parseExpr()
	rbrack := p.expect(token.RBRACK)
	return &ast.Index{X: x, Idx: idx, Lbrack: lbrack, Rbrack: rbrack}
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.tok {
	case token.INT:
		pos, v := p.pos, p.val.Int
		p.advance()
		return &ast.IntLit{Val: v, Start: pos, End: pos}

	case token.FLOAT:
		pos, v := p.pos, p.val.Float
		p.advance()
		return &ast.FloatLit{Val: v, Start: pos, End: pos}

	case token.TRUE, token.FALSE:
		pos, v := p.pos, p.tok == token.TRUE
		p.advance()
		return &ast.BoolLit{Val: v, Start: pos, End: pos}

	case token.STRING:
		pos, v := p.pos, p.val.String
		p.advance()
		return &ast.StringLit{Val: v, Start: pos, End: pos}

	case token.IDENT:
		pos, name := p.pos, p.val.String
		p.advance()
		return &ast.Variable{Name: name, Start: pos}

	case token.LBRACK:
		return p.parseArrayLit()

	case token.LBRACE:
		return p.parseBlockLit()

	case token.FUNCTION:
		return p.parseFunctionDef()

	case token.NAMESPACE:
		return p.parseNamespaceLit()

	case token.IF:
		return p.parseIf()

	case token.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e
	}

	p.errorExpected(p.pos, "expression")
	panic(errPanic)
}

func (p *parser) parseArrayLit() *ast.ArrayLit {
	lbrack := p.expect(token.LBRACK)
	var elems []ast.Expr
	for p.tok != token.RBRACK && p.tok != token.EOF {
		elems = append(elems, p.parseExpr())
		if p.tok == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	rbrack := p.expect(token.RBRACK)
	return &ast.ArrayLit{Elems: elems, Lbrack: lbrack, Rbrack: rbrack}
}

func (p *parser) parseBlockLit() *ast.Block {
	lbrace := p.expect(token.LBRACE)
	stmts, tail := p.parseBlockBody()
	rbrace := p.expect(token.RBRACE)
	return &ast.Block{Stmts: stmts, Tail: tail, Lbrace: lbrace, Rbrace: rbrace}
}

func (p *parser) parseFunctionDef() *ast.FunctionDef {
	start := p.expect(token.FUNCTION)
	p.expect(token.LPAREN)

	var params []*ast.Param
	for p.tok != token.RPAREN && p.tok != token.EOF {
		pstart := p.pos
		name := p.parseIdentName()
		params = append(params, &ast.Param{Name: name, Start: pstart})
		if p.tok == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	body := p.parseExpr()
	_, end := body.Span()
	return &ast.FunctionDef{Params: params, Body: body, Start: start, End: end}
}

func (p *parser) parseNamespaceLit() *ast.NamespaceLit {
	nsPos := p.expect(token.NAMESPACE)
	p.expect(token.LBRACE)

	var defs []*ast.NamespaceDef
	for p.tok != token.RBRACE && p.tok != token.EOF {
		start := p.pos
		name := p.parseIdentName()
		p.expect(token.EQ)
		val := p.parseExpr()
		p.expect(token.SEMI)
		defs = append(defs, &ast.NamespaceDef{Name: name, Value: val, Start: start})
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.NamespaceLit{Defs: defs, NsPos: nsPos, Rbrace: rbrace}
}

func (p *parser) parseIf() *ast.If {
	ifPos := p.expect(token.IF)
	test := p.parseExpr()
	p.expect(token.THEN)
	then := p.parseExpr()
	p.expect(token.ELSE)
	els := p.parseExpr()
	return &ast.If{Test: test, Then: then, Else: els, IfPos: ifPos}
}
