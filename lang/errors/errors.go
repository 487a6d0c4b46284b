// Package errors defines the error kinds surfaced by the slang core, from
// scanning all the way through evaluation. Every error carries the source
// position of the AST node or token that triggered it, and none are ever
// retried inside the core: they unwind to the host (CLI) boundary.
package errors

import (
	"fmt"
	"go/scanner"

	"github.com/mna/slang/lang/token"
)

// Kind identifies the category of a slang error.
type Kind int

const (
	_ Kind = iota
	ParseError
	ResolveUnbound
	EnvDuplicate
	ArityMismatch
	TypeMismatch
	NoSuchField
	OutOfBounds
	DivisionByZero
	InternalError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case ResolveUnbound:
		return "ResolveUnbound"
	case EnvDuplicate:
		return "EnvDuplicate"
	case ArityMismatch:
		return "ArityMismatch"
	case TypeMismatch:
		return "TypeMismatch"
	case NoSuchField:
		return "NoSuchField"
	case OutOfBounds:
		return "OutOfBounds"
	case DivisionByZero:
		return "DivisionByZero"
	case InternalError:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// Error is a single slang diagnostic: a Kind, the source position it was
// raised at (if known), and a human-readable message.
type Error struct {
	Kind Kind
	Pos  token.Pos
	File *token.File
	Msg  string
}

func (e *Error) Error() string {
	if e.File != nil && !e.Pos.Unknown() {
		return fmt.Sprintf("%s: %s: %s", e.File.Position(e.Pos), e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New constructs an *Error of the given kind at the given position.
func New(kind Kind, file *token.File, pos token.Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, File: file, Msg: fmt.Sprintf(format, args...)}
}

// List accumulates positioned diagnostics produced while scanning or parsing
// a source file, following the standard library's own scanner.ErrorList, the
// same reuse the teacher repository makes for this exact concern.
type List = scanner.ErrorList

// PrintError prints err (an *Error, a List, or any other error) to w,
// following the host-boundary reporting contract of spec.md section 7: full
// diagnostics with source position, never retried.
var PrintError = scanner.PrintError
