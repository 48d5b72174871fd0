// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsyn

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go4.org/mem"
)

// TokenKind is the type of a lexical token in the JSON grammar.
type TokenKind byte

// Constants defining the valid TokenKind values.
const (
	Invalid TokenKind = iota // invalid token
	LBrace                   // left brace "{"
	RBrace                   // right brace "}"
	LSquare                  // left square bracket "["
	RSquare                  // right square bracket "]"
	Comma                    // comma ","
	Colon                    // colon ":"
	Number                   // number
	String                   // quoted string
	True                     // constant: true
	False                    // constant: false
	Null                     // constant: null
	Ident                    // identifier (json5 unquoted object key)

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... <LF>

	// Do not modify the order of these constants without updating the
	// self-delimiting token check below.
)

var kindStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
	Ident:   "identifier",

	BlockComment: "block comment",
	LineComment:  "line comment",
}

func (t TokenKind) String() string {
	v := int(t)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

var kindClass = [...]string{
	Invalid: "Invalid",
	LBrace:  "Punctuator",
	RBrace:  "Punctuator",
	LSquare: "Punctuator",
	RSquare: "Punctuator",
	Comma:   "Punctuator",
	Colon:   "Punctuator",
	Number:  "Number",
	String:  "String",
	True:    "Boolean",
	False:   "Boolean",
	Null:    "Null",
	Ident:   "Identifier",

	BlockComment: "BlockComment",
	LineComment:  "LineComment",
}

// Class returns the public type name of the token kind: one of "String",
// "Number", "Boolean", "Null", "Punctuator", "Identifier", "LineComment",
// or "BlockComment". This is the name used in the JSON encoding of a Token.
func (t TokenKind) Class() string {
	v := int(t)
	if v >= len(kindClass) {
		return kindClass[Invalid]
	}
	return kindClass[v]
}

// A Token is a single classified lexeme together with its source location.
type Token struct {
	Kind TokenKind
	Text string // the raw (undecoded) text of the lexeme
	Loc  Location
}

// MarshalJSON encodes t in the form
//
//	{"type": ..., "value": ..., "range": [pos, end], "loc": {...}}
//
// where "type" is the Class of the token kind.
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string   `json:"type"`
		Value string   `json:"value"`
		Range [2]int   `json:"range"`
		Loc   Location `json:"loc"`
	}{t.Kind.Class(), t.Text, [2]int{t.Loc.Pos, t.Loc.End}, t.Loc})
}

// Tokenize scans text under the given dialect mode and returns its complete
// token sequence in source order, including comment tokens in the modes
// that allow them. Whitespace is never reported as a token. In case of
// error, the returned error has concrete type [*LexError].
func Tokenize(text string, mode Mode) ([]Token, error) {
	s := NewScanner(strings.NewReader(text))
	s.SetMode(mode)
	var toks []Token
	for s.Next() {
		toks = append(toks, Token{Kind: s.Kind(), Text: string(s.Text()), Loc: s.Location()})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return toks, nil
}

// A Scanner reads lexical tokens from an input stream. Each call to Next
// advances the scanner to the next token, or reports an error.
type Scanner struct {
	r    *bufio.Reader
	mode Mode
	buf  bytes.Buffer // current token
	tok  TokenKind
	err  error

	pos, end int // start and end offsets of current token
	last     int // size in bytes of last-read input rune

	// Apparent line and column offsets (0-based lines internally).
	pline, pcol int
	eline, ecol int
	prevCR      bool

	// Saved counters supporting a one-rune pushback.
	sline, scol int
	sprevCR     bool
}

// NewScanner constructs a new lexical scanner that consumes input from r.
// The scanner defaults to strict JSON; use SetMode to select a dialect.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// SetMode configures the dialect accepted by s.
func (s *Scanner) SetMode(m Mode) { s.mode = m }

// Mode reports the dialect accepted by s.
func (s *Scanner) Mode() Mode { return s.mode }

// Next advances s to the next token of the input. It returns false when no
// further tokens are available, either because the input is exhausted or
// because an error occurred; use Err to distinguish the two cases.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	err := s.scan()
	if err == io.EOF {
		return false
	} else if err != nil {
		s.err = err
		return false
	}
	return true
}

// Err returns the error from the most recent call to Next, or nil if the
// input was fully consumed without error. A non-nil error has concrete
// type [*LexError].
func (s *Scanner) Err() error { return s.err }

// Kind returns the kind of the current token.
func (s *Scanner) Kind() TokenKind { return s.tok }

// Text returns the undecoded text of the current token. The return value
// is only valid until the next call of Next. The caller must copy the
// contents of the returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return append([]byte(nil), s.buf.Bytes()...) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token. After Next
// has returned false with a nil error, the result is the empty span at the
// end of the input.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// scan is the token dispatch. It returns io.EOF only at a clean end of
// input; all other failures are reported as *LexError.
func (s *Scanner) scan() error {
	s.buf.Reset()
	s.tok = Invalid
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for {
		ch, err := s.rune()
		if err == io.EOF {
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			return io.EOF
		} else if err != nil {
			return s.ioError(err)
		}

		// Discard whitespace.
		if s.isSpace(ch) {
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}

		// Handle numbers. JSON5 additionally allows a leading "+" or ".".
		if isDigit(ch) || ch == '-' || (s.mode == JSON5 && (ch == '+' || ch == '.')) {
			return s.scanNumber(ch)
		}

		// Handle string values.
		if ch == '"' || (s.mode == JSON5 && ch == '\'') {
			return s.scanString(ch)
		}

		// Handle comments, if the dialect has them.
		if ch == '/' && s.mode != JSON {
			return s.scanComment(ch)
		}

		// Handle identifiers and word-like values. Under json5 the keywords
		// and the non-finite number literals are carved out of the general
		// identifier lexicon; in the strict modes only the keyword initials
		// are recognized at all.
		if s.mode == JSON5 && isIdentStart(ch) {
			return s.scanIdent(ch)
		}
		switch ch {
		case 't':
			return s.scanKeyword(ch, mem.S("true"), True)
		case 'f':
			return s.scanKeyword(ch, mem.S("false"), False)
		case 'n':
			return s.scanKeyword(ch, mem.S("null"), Null)
		}
		return s.failf("unexpected character %q", ch)
	}
}

func (s *Scanner) scanString(open rune) error {
	s.buf.WriteRune(open)
	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.failf("unterminated string")
		} else if err != nil {
			return s.ioError(err)
		}
		if ch == open {
			s.buf.WriteRune(ch)
			s.tok = String
			return nil
		}
		if ch == '\\' {
			s.buf.WriteRune(ch)
			if err := s.scanEscape(); err != nil {
				return err
			}
			continue
		}
		if ch < ' ' {
			return s.failf("unescaped control %q", ch)
		}
		s.buf.WriteRune(ch)
	}
}

// scanEscape consumes the remainder of a \-escape whose backslash has
// already been consumed.
func (s *Scanner) scanEscape() error {
	ch, err := s.rune()
	if err == io.EOF {
		return s.failf("unterminated string")
	} else if err != nil {
		return s.ioError(err)
	}
	switch ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		s.buf.WriteRune(ch)
		return nil
	case 'u':
		s.buf.WriteRune(ch)
		if err := s.readHex(4); err != nil {
			return s.failf("invalid Unicode escape: %v", err)
		}
		return nil
	}
	if s.mode == JSON5 {
		switch {
		case ch == '\'' || ch == 'v':
			s.buf.WriteRune(ch)
			return nil
		case ch == 'x':
			s.buf.WriteRune(ch)
			if err := s.readHex(2); err != nil {
				return s.failf("invalid hex escape: %v", err)
			}
			return nil
		case ch == '0':
			// \0 denotes NUL, provided no digit follows.
			s.buf.WriteRune(ch)
			next, err := s.rune()
			if err == io.EOF {
				return s.failf("unterminated string")
			} else if err != nil {
				return s.ioError(err)
			} else if isDigit(next) {
				return s.failf("invalid %q after escape", next)
			}
			s.unrune()
			return nil
		case s.isLineTerm(ch):
			// A line continuation: the terminator is part of the lexeme but
			// contributes nothing to the decoded value. CRLF counts as a
			// single terminator.
			s.buf.WriteRune(ch)
			if ch == '\r' {
				next, err := s.rune()
				if err == io.EOF {
					return s.failf("unterminated string")
				} else if err != nil {
					return s.ioError(err)
				} else if next == '\n' {
					s.buf.WriteRune(next)
				} else {
					s.unrune()
				}
			}
			return nil
		}
	}
	return s.failf("invalid %q after escape", ch)
}

func (s *Scanner) scanNumber(first rune) error {
	s.buf.WriteRune(first)
	ch := first

	// Leading sign. The dispatch in scan sends "+" here only under json5.
	if ch == '-' || ch == '+' {
		c, err := s.numRune()
		if err != nil {
			return err
		}
		if s.mode == JSON5 && (c == 'I' || c == 'N') {
			return s.scanWordNumber(c)
		} else if !isDigit(c) && !(s.mode == JSON5 && c == '.') {
			s.unrune()
			return s.failf("want digit, got %q", c)
		}
		s.buf.WriteRune(c)
		ch = c
	}

	intDigits := 0
	if isDigit(ch) {
		intDigits++

		// Hexadecimal literals (json5 only). They admit no sign inside, no
		// fraction, and no exponent, so the token ends with the digit run.
		if ch == '0' && s.mode == JSON5 {
			c, err := s.rune()
			if err == io.EOF {
				s.tok = Number
				return nil
			} else if err != nil {
				return s.ioError(err)
			} else if c == 'x' || c == 'X' {
				s.buf.WriteRune(c)
				return s.scanHexNumber()
			}
			s.unrune()
		}

		nr, c, err := s.readWhile(isDigit)
		intDigits += nr
		if hasExtraLeadingZeroes(s.buf.Bytes()) {
			return s.failf("extra leading zeroes")
		}
		if err == io.EOF {
			s.tok = Number
			return nil
		} else if err != nil {
			return s.ioError(err)
		}
		ch = c
	}

	// If a decimal point follows (or led the token), consume a fractional
	// part. Strict JSON requires digits on both sides of the point; json5
	// requires digits on at least one side.
	if ch == '.' {
		if intDigits > 0 {
			s.buf.WriteRune(ch) // the point came from readWhile, unbuffered
		}
		nr, c, err := s.readWhile(isDigit)
		if nr == 0 && (intDigits == 0 || s.mode != JSON5) {
			if err == nil {
				s.unrune()
			}
			return s.failf("no digits after decimal point")
		}
		if err == io.EOF {
			s.tok = Number
			return nil
		} else if err != nil {
			return s.ioError(err)
		}
		ch = c
	}

	// If an exponent follows, consume it.
	if ch != 'E' && ch != 'e' {
		s.unrune()
		s.tok = Number
		return nil
	}
	s.buf.WriteRune(ch)
	c, err := s.numRune()
	if err != nil {
		return err
	}
	if c == '-' || c == '+' {
		s.buf.WriteRune(c)
		c, err = s.numRune()
		if err != nil {
			return err
		}
	}
	if !isDigit(c) {
		s.unrune()
		return s.failf("missing exponent digits")
	}
	s.buf.WriteRune(c)
	_, _, err = s.readWhile(isDigit)
	if err == io.EOF {
		s.tok = Number
		return nil
	} else if err != nil {
		return s.ioError(err)
	}
	s.unrune()
	s.tok = Number
	return nil
}

// scanHexNumber consumes the digits of a hexadecimal literal whose "0x"
// prefix is already in the buffer.
func (s *Scanner) scanHexNumber() error {
	nr, _, err := s.readWhile(isHexDigit)
	if err != nil && err != io.EOF {
		return s.ioError(err)
	}
	if nr == 0 {
		return s.failf("missing hex digits")
	}
	if err == nil {
		s.unrune()
	}
	s.tok = Number
	return nil
}

// scanWordNumber consumes an Infinity or NaN literal following a sign.
func (s *Scanner) scanWordNumber(first rune) error {
	want := mem.S("Infinity")
	if first == 'N' {
		want = mem.S("NaN")
	}
	mark := s.buf.Len()
	s.buf.WriteRune(first)
	if err := s.scanIdentTail(); err != nil {
		return err
	}
	if got := mem.B(s.buf.Bytes()[mark:]); !got.Equal(want) {
		return s.failf("unknown constant %q", got.StringCopy())
	}
	s.tok = Number
	return nil
}

// scanKeyword consumes a lowercase keyword in the strict modes and checks
// it against want.
func (s *Scanner) scanKeyword(first rune, want mem.RO, tok TokenKind) error {
	s.buf.WriteRune(first)
	_, _, err := s.readWhile(isLower)
	if err != nil && err != io.EOF {
		return s.ioError(err)
	}
	if err == nil {
		s.unrune()
	}
	if got := mem.B(s.buf.Bytes()); !got.Equal(want) {
		return s.failf("unknown constant %q", got.StringCopy())
	}
	s.tok = tok
	return nil
}

// scanIdent consumes an identifier and classifies it as a keyword, a
// non-finite number literal, or a bare identifier (json5 only).
func (s *Scanner) scanIdent(first rune) error {
	s.buf.WriteRune(first)
	if err := s.scanIdentTail(); err != nil {
		return err
	}
	got := mem.B(s.buf.Bytes())
	switch {
	case got.Equal(mem.S("true")):
		s.tok = True
	case got.Equal(mem.S("false")):
		s.tok = False
	case got.Equal(mem.S("null")):
		s.tok = Null
	case got.Equal(mem.S("Infinity")), got.Equal(mem.S("NaN")):
		s.tok = Number
	default:
		s.tok = Ident
	}
	return nil
}

func (s *Scanner) scanIdentTail() error {
	_, _, err := s.readWhile(isIdentPart)
	if err == io.EOF {
		return nil
	} else if err != nil {
		return s.ioError(err)
	}
	s.unrune()
	return nil
}

func (s *Scanner) scanComment(first rune) error {
	s.buf.WriteRune(first)
	ch, err := s.rune()
	if err == io.EOF {
		return s.failf("unexpected end of input")
	} else if err != nil {
		return s.ioError(err)
	}
	switch ch {
	case '/': // line comment, not including its terminator
		s.buf.WriteRune(ch)
		_, _, err := s.readWhile(isNotCommentTerm)
		if err == io.EOF {
			s.tok = LineComment
			return nil
		} else if err != nil {
			return s.ioError(err)
		}
		s.unrune()
		s.tok = LineComment
		return nil

	case '*': // block comment
		s.buf.WriteRune(ch)
		for {
			_, star, err := s.readWhile(isNotStar)
			if err == io.EOF {
				return s.failf("unterminated block comment")
			} else if err != nil {
				return s.ioError(err)
			}
			s.buf.WriteRune(star) // star == '*'

			// Check whether "/" ends the comment, allowing for a run of
			// stars before it.
			for {
				next, err := s.rune()
				if err == io.EOF {
					return s.failf("unterminated block comment")
				} else if err != nil {
					return s.ioError(err)
				}
				s.buf.WriteRune(next)
				if next == '/' {
					s.tok = BlockComment
					return nil
				} else if next != '*' {
					break
				}
			}
		}

	default:
		s.unrune()
		return s.failf("invalid %q in comment", ch)
	}
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	if err != nil {
		s.last = 0
		return 0, err
	}
	s.last = nb
	s.sline, s.scol, s.sprevCR = s.eline, s.ecol, s.prevCR
	s.end += nb
	switch {
	case ch == '\n' && s.prevCR:
		// the LF of a CRLF pair; the line was counted at the CR
	case s.isLineTerm(ch):
		s.eline++
		s.ecol = 0
	default:
		s.ecol += nb
	}
	s.prevCR = ch == '\r'
	return ch, nil
}

func (s *Scanner) unrune() {
	s.r.UnreadRune()
	s.end -= s.last
	s.eline, s.ecol, s.prevCR = s.sline, s.scol, s.sprevCR
	s.last = 0
}

// numRune reads a single rune inside a numeric literal, converting end of
// input into a lexical error.
func (s *Scanner) numRune() (rune, error) {
	ch, err := s.rune()
	if err == io.EOF {
		return 0, s.failf("unexpected end of input")
	} else if err != nil {
		return 0, s.ioError(err)
	}
	return ch, nil
}

// readWhile consumes runes matching f from the input until EOF or until a
// rune not matching f is found. The first non-matching rune (if any) is
// consumed and returned; it is the caller's responsibility to unread it,
// if desired. The int reports the number of runes written to the buffer.
func (s *Scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.WriteRune(ch)
		nr++
	}
}

// readHex reads exactly n hexadecimal digits from the input.
func (s *Scanner) readHex(n int) error {
	for i := 0; i < n; i++ {
		ch, err := s.rune()
		if err != nil {
			return err
		} else if !isHexDigit(ch) {
			return fmt.Errorf("not a hex digit: %q", ch)
		}
		s.buf.WriteRune(ch)
	}
	return nil
}

func (s *Scanner) failf(msg string, args ...any) error {
	return &LexError{
		Message: fmt.Sprintf(msg, args...),
		Line:    s.eline + 1,
		Column:  s.ecol,
		Offset:  s.end,
	}
}

func (s *Scanner) ioError(err error) error {
	return &LexError{
		Message: err.Error(),
		Line:    s.eline + 1,
		Column:  s.ecol,
		Offset:  s.end,
		err:     err,
	}
}

func (s *Scanner) isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\r', '\n':
		return true
	}
	if s.mode != JSON5 {
		return false
	}
	switch ch {
	case '\v', '\f', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, ch)
}

func (s *Scanner) isLineTerm(ch rune) bool {
	return ch == '\n' || ch == '\r' || (s.mode == JSON5 && (ch == '\u2028' || ch == '\u2029'))
}

func isNotStar(ch rune) bool { return ch != '*' }

func isNotCommentTerm(ch rune) bool {
	return ch != '\n' && ch != '\r' && ch != '\u2028' && ch != '\u2029'
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }
func isLower(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch rune) bool {
	return ch == '$' || ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || ch == '\u200c' || ch == '\u200d' ||
		unicode.Is(unicode.Mn, ch) || unicode.Is(unicode.Mc, ch) ||
		unicode.Is(unicode.Nd, ch) || unicode.Is(unicode.Pc, ch)
}

// hasExtraLeadingZeroes reports whether the representation of an integer
// in buf has redundant leading zeroes, disallowed in every dialect.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' || buf[0] == '+' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]TokenKind{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (TokenKind, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
