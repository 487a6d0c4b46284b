package runtime

import (
	"fmt"
	"math"

	"github.com/mna/slang/lang/ast"
	"github.com/mna/slang/lang/errors"
	"github.com/mna/slang/lang/token"
)

// toFloat widens an Int or Float value to a float64.
func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n.Val), true
	case Float:
		return n.Val, true
	}
	return 0, false
}

// Unary evaluates a unary operator applied to an already-reduced operand.
func Unary(file *token.File, pos token.Pos, op token.Token, x Value) (Value, error) {
	switch op {
	case token.PLUS:
		switch n := x.(type) {
		case Int:
			return n, nil
		case Float:
			return n, nil
		}
	case token.MINUS:
		switch n := x.(type) {
		case Int:
			return Int{Val: -n.Val}, nil
		case Float:
			return Float{Val: -n.Val}, nil
		}
	case token.BANG:
		if b, ok := x.(Bool); ok {
			return Bool{Val: !b.Val}, nil
		}
	case token.TILDE:
		if n, ok := x.(Int); ok {
			return Int{Val: ^n.Val}, nil
		}
	}
	return nil, errors.New(errors.TypeMismatch, file, pos,
		"unary operator %s not supported for type %s", op, x.TypeName())
}

// Binary evaluates a binary operator applied to two already-reduced
// operands. Arithmetic on two Ints stays Int except for division, which
// widens to Float unless the division is exact (spec: int/int division
// yields int only when the result has no remainder). Modulo follows the
// sign of the divisor, matching the original implementation; Go's native %
// follows the sign of the dividend, so the result is corrected here.
func Binary(file *token.File, pos token.Pos, op token.Token, x, y Value) (Value, error) {
	switch op {
	case token.PLUS:
		if s, ok := x.(String); ok {
			t, ok := y.(String)
			if !ok {
				return nil, typeErr(file, pos, op, x, y)
			}
			return String{Val: s.Val + t.Val}, nil
		}
		if a, ok := x.(*Array); ok {
			b, ok := y.(*Array)
			if !ok {
				return nil, typeErr(file, pos, op, x, y)
			}
			elems := make([]ast.Expr, 0, len(a.Elems)+len(b.Elems))
			elems = append(elems, a.Elems...)
			elems = append(elems, b.Elems...)
			return NewArray(elems), nil
		}
		return arith(file, pos, op, x, y)
	case token.MINUS, token.STAR:
		return arith(file, pos, op, x, y)
	case token.SLASH:
		return divide(file, pos, x, y)
	case token.PCT:
		return modulo(file, pos, x, y)
	case token.CARET:
		return power(file, pos, x, y)
	case token.EQEQ:
		return Bool{Val: Equal(x, y)}, nil
	case token.NEQ:
		return Bool{Val: !Equal(x, y)}, nil
	case token.LT, token.GT, token.LE, token.GE:
		return compare(file, pos, op, x, y)
	}
	return nil, fmt.Errorf("unsupported binary operator %s", op)
}

func typeErr(file *token.File, pos token.Pos, op token.Token, x, y Value) error {
	return errors.New(errors.TypeMismatch, file, pos,
		"operator %s not supported between %s and %s", op, x.TypeName(), y.TypeName())
}

func arith(file *token.File, pos token.Pos, op token.Token, x, y Value) (Value, error) {
	xi, xIsInt := x.(Int)
	yi, yIsInt := y.(Int)
	if xIsInt && yIsInt {
		switch op {
		case token.PLUS:
			return Int{Val: xi.Val + yi.Val}, nil
		case token.MINUS:
			return Int{Val: xi.Val - yi.Val}, nil
		case token.STAR:
			return Int{Val: xi.Val * yi.Val}, nil
		}
	}
	xf, xok := toFloat(x)
	yf, yok := toFloat(y)
	if !xok || !yok {
		return nil, typeErr(file, pos, op, x, y)
	}
	switch op {
	case token.PLUS:
		return Float{Val: xf + yf}, nil
	case token.MINUS:
		return Float{Val: xf - yf}, nil
	case token.STAR:
		return Float{Val: xf * yf}, nil
	}
	return nil, fmt.Errorf("unsupported arithmetic operator %s", op)
}

func divide(file *token.File, pos token.Pos, x, y Value) (Value, error) {
	xi, xIsInt := x.(Int)
	yi, yIsInt := y.(Int)
	if xIsInt && yIsInt {
		if yi.Val == 0 {
			return nil, errors.New(errors.DivisionByZero, file, pos, "division by zero")
		}
		if xi.Val%yi.Val == 0 {
			return Int{Val: xi.Val / yi.Val}, nil
		}
		return Float{Val: float64(xi.Val) / float64(yi.Val)}, nil
	}
	xf, xok := toFloat(x)
	yf, yok := toFloat(y)
	if !xok || !yok {
		return nil, typeErr(file, pos, token.SLASH, x, y)
	}
	if yf == 0 {
		return nil, errors.New(errors.DivisionByZero, file, pos, "division by zero")
	}
	return Float{Val: xf / yf}, nil
}

func modulo(file *token.File, pos token.Pos, x, y Value) (Value, error) {
	xi, xIsInt := x.(Int)
	yi, yIsInt := y.(Int)
	if xIsInt && yIsInt {
		if yi.Val == 0 {
			return nil, errors.New(errors.DivisionByZero, file, pos, "modulo by zero")
		}
		r := xi.Val % yi.Val
		if r != 0 && (r < 0) != (yi.Val < 0) {
			r += yi.Val
		}
		return Int{Val: r}, nil
	}
	xf, xok := toFloat(x)
	yf, yok := toFloat(y)
	if !xok || !yok {
		return nil, typeErr(file, pos, token.PCT, x, y)
	}
	if yf == 0 {
		return nil, errors.New(errors.DivisionByZero, file, pos, "modulo by zero")
	}
	r := math.Mod(xf, yf)
	if r != 0 && (r < 0) != (yf < 0) {
		r += yf
	}
	return Float{Val: r}, nil
}

func power(file *token.File, pos token.Pos, x, y Value) (Value, error) {
	xi, xIsInt := x.(Int)
	yi, yIsInt := y.(Int)
	if xIsInt && yIsInt && yi.Val >= 0 {
		r := int64(1)
		for i := int64(0); i < yi.Val; i++ {
			r *= xi.Val
		}
		return Int{Val: r}, nil
	}
	xf, xok := toFloat(x)
	yf, yok := toFloat(y)
	if !xok || !yok {
		return nil, typeErr(file, pos, token.CARET, x, y)
	}
	return Float{Val: math.Pow(xf, yf)}, nil
}

func compare(file *token.File, pos token.Pos, op token.Token, x, y Value) (Value, error) {
	xf, xok := toFloat(x)
	yf, yok := toFloat(y)
	if xok && yok {
		switch op {
		case token.LT:
			return Bool{Val: xf < yf}, nil
		case token.GT:
			return Bool{Val: xf > yf}, nil
		case token.LE:
			return Bool{Val: xf <= yf}, nil
		case token.GE:
			return Bool{Val: xf >= yf}, nil
		}
	}
	if xs, ok := x.(String); ok {
		if ys, ok := y.(String); ok {
			switch op {
			case token.LT:
				return Bool{Val: xs.Val < ys.Val}, nil
			case token.GT:
				return Bool{Val: xs.Val > ys.Val}, nil
			case token.LE:
				return Bool{Val: xs.Val <= ys.Val}, nil
			case token.GE:
				return Bool{Val: xs.Val >= ys.Val}, nil
			}
		}
	}
	return nil, typeErr(file, pos, op, x, y)
}
