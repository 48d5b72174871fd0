// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsyn

// A Mode selects the input dialect accepted by the scanner and parser.
type Mode int

// Constants defining the supported input dialects.
const (
	// JSON is the strict grammar of RFC 8259. It is the default mode.
	JSON Mode = iota

	// JSONC is JSON extended with line ("//") and block ("/* */") comments.
	// Comments are reported as tokens by the scanner and skipped by the
	// parser wherever whitespace is permitted.
	JSONC

	// JSON5 is JSONC further extended with unquoted identifier object keys,
	// single-quoted strings, trailing commas in objects and arrays, and a
	// wider numeric lexicon including hexadecimal literals, leading "+",
	// leading or trailing decimal points, Infinity, and NaN.
	JSON5
)

var modeStr = [...]string{
	JSON:  "json",
	JSONC: "jsonc",
	JSON5: "json5",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeStr) {
		return "invalid mode"
	}
	return modeStr[m]
}
