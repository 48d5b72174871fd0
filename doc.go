// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jsyn implements a lexical scanner for JSON and two of its common
// extension dialects, JSONC and JSON5.
//
// # Dialects
//
// A Mode value selects which grammar the scanner accepts:
//
//	Mode   | Description
//	------ | ----------------------------------------------------------
//	JSON   | strict JSON (RFC 8259)
//	JSONC  | JSON plus line ("// ...") and block ("/* ... */") comments
//	JSON5  | the JSON5 extension grammar
//
// JSON5 additionally admits unquoted identifier keys, single-quoted strings,
// trailing commas, hexadecimal integer literals, numbers with a leading sign
// or a bare leading or trailing decimal point, the non-finite constants
// Infinity and NaN, extra escape sequences and line continuations inside
// strings, and a wider class of whitespace.
//
// # Scanning
//
// The Scanner type implements the lexical scanner. Construct a scanner from
// an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and reports whether one is available:
//
//	s := jsyn.NewScanner(input)
//	s.SetMode(jsyn.JSONC)
//	for s.Next() {
//	   log.Printf("Next token: %v %q", s.Kind(), s.Text())
//	}
//	if err := s.Err(); err != nil {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// Err returns nil when the input was fully consumed, otherwise an error of
// concrete type *LexError describing the position and nature of the failure.
//
// Each token carries a Location giving its half-open byte range within the
// input along with the line and column of its first and last characters.
// Lines are 1-based and columns are 0-based byte offsets within the line.
//
// To tokenize an input string in one call, use Tokenize:
//
//	toks, err := jsyn.Tokenize(`{"a": 1}`, jsyn.JSON)
//
// For parsing input into a syntax tree, see the ast subpackage.
package jsyn
