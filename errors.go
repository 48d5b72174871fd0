// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsyn

import "fmt"

// LexError is the concrete type of errors reported by the scanner for
// malformed, unterminated, or unsupported lexemes. The position fields
// identify the offending input position.
type LexError struct {
	Message string
	Line    int // line number, 1-based
	Column  int // byte offset of column in line, 0-based
	Offset  int // byte offset in the input, 0-based

	err error
}

// Error satisfies the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("at %d:%d: %s", e.Line, e.Column, e.Message)
}

// Unwrap supports error wrapping.
func (e *LexError) Unwrap() error { return e.err }

// SyntaxError is the concrete type of errors reported by the parser when a
// lexically valid token sequence violates the grammar of the selected
// dialect. The position fields identify the offending token.
type SyntaxError struct {
	Message string
	Line    int // line number, 1-based
	Column  int // byte offset of column in line, 0-based
	Offset  int // byte offset in the input, 0-based

	err error
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %d:%d: %s", e.Line, e.Column, e.Message)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

// PrintError is the concrete type of errors reported by the printer for
// syntax trees that have no canonical JSON representation, such as numbers
// with non-finite values.
type PrintError struct {
	Message string
}

// Error satisfies the error interface.
func (e *PrintError) Error() string { return e.Message }
