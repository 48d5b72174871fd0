// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A \u escape
// naming a high surrogate followed immediately by a \u escape naming a low
// surrogate decodes as the single rune the pair denotes; an unpaired
// surrogate decodes as the Unicode replacement rune. Invalid escapes are
// replaced by the Unicode replacement rune. Unquote reports an error for an
// incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) { return unquote(src, false) }

// UnquoteJSON5 is as Unquote, but additionally accepts the escape sequences
// of the JSON5 grammar: \', \v, \0, \xXX, and escaped line terminators
// (line continuations), which decode as nothing.
func UnquoteJSON5(src mem.RO) ([]byte, error) { return unquote(src, true) }

func unquote(src mem.RO, json5 bool) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		dec = mem.Append(dec, src)
		return dec, nil
	}

	putByte := func(bs ...byte) { dec = append(dec, bs...) }
	putRune := func(r rune) {
		var buf [6]byte
		n := utf8.EncodeRune(buf[:], r)
		dec = append(dec, buf[:n]...)
	}
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		// Decode the next rune after the escape to figure out what to
		// substitute. There should not be errors here, but if there are, insert
		// replacement runes (utf8.RuneError == '\ufffd').
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}

		src = src.SliceFrom(n)
		switch {
		case r == '"' || r == '\\' || r == '/':
			putByte(byte(r))
		case r == 'b':
			putByte('\b')
		case r == 'f':
			putByte('\f')
		case r == 'n':
			putByte('\n')
		case r == 'r':
			putByte('\r')
		case r == 't':
			putByte('\t')
		case r == 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, err := parseHex(src.SliceTo(4))
			src = src.SliceFrom(4)
			if err != nil {
				putRune(utf8.RuneError)
				break
			}
			r := rune(v)
			if utf16.IsSurrogate(r) {
				// A high surrogate may pair with an immediately following \u
				// escape naming a low surrogate. Unpaired surrogates are left
				// to utf8.EncodeRune, which substitutes the replacement rune.
				if src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
					if w, err := parseHex(src.SliceFrom(2).SliceTo(4)); err == nil {
						if c := utf16.DecodeRune(r, rune(w)); c != utf8.RuneError {
							r = c
							src = src.SliceFrom(6)
						}
					}
				}
			}
			putRune(r)
		case json5 && (r == '\'' || r == 'v'):
			if r == 'v' {
				putByte('\v')
			} else {
				putByte('\'')
			}
		case json5 && r == 'x':
			if src.Len() < 2 {
				return nil, errors.New("incomplete hex escape")
			}
			v, err := parseHex(src.SliceTo(2))
			src = src.SliceFrom(2)
			if err != nil {
				putRune(utf8.RuneError)
			} else {
				putRune(rune(v))
			}
		case json5 && r == '0':
			putByte(0)
		case json5 && (r == '\n' || r == '\u2028' || r == '\u2029'):
			// line continuation, contributes nothing
		case json5 && r == '\r':
			// as above; CRLF counts as a single terminator
			if src.Len() > 0 && src.At(0) == '\n' {
				src = src.SliceFrom(1)
			}
		default:
			putRune(utf8.RuneError)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
