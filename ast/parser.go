// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/jsyn"
	"github.com/creachadair/jsyn/internal/escape"

	"go4.org/mem"
)

// ParseOptions control the behavior of the parser. A nil *ParseOptions is
// ready for use and provides default values as described.
type ParseOptions struct {
	// The dialect accepted by the parser (default: strict JSON).
	Mode jsyn.Mode

	// Record source location information on each node of the tree.
	Ranges bool

	// Record the complete token sequence of the input, including comments,
	// in the resulting Document.
	Tokens bool
}

func recoverParseError(errp *error) {
	if v := recover(); v != nil {
		switch err := v.(type) {
		case *jsyn.SyntaxError:
			*errp = err
		case *jsyn.LexError:
			*errp = err
		default:
			panic(v)
		}
	}
}

// Parse parses the input from r into a syntax tree. Exactly one value must
// be present in the input. In case of a lexical error the returned error
// has concrete type [*jsyn.LexError]; any other failure is reported as a
// [*jsyn.SyntaxError].
func Parse(r io.Reader, opts *ParseOptions) (_ *Document, err error) {
	defer recoverParseError(&err)

	p := &parser{sc: jsyn.NewScanner(r)}
	if opts != nil {
		p.opts = *opts
	}
	p.sc.SetMode(p.opts.Mode)

	p.advance()
	body := p.parseValue()
	if p.next() {
		p.failf("unexpected %v", p.cur.Kind)
	}

	d := &Document{Body: body, Tokens: p.toks}
	if p.opts.Ranges {
		end := p.sc.Location()
		d.Loc = &jsyn.Location{
			Span:  jsyn.Span{Pos: 0, End: end.End},
			First: jsyn.LineCol{Line: 1, Column: 0},
			Last:  end.Last,
		}
	}
	return d, nil
}

// ParseString is shorthand for Parse with a string input.
func ParseString(text string, opts *ParseOptions) (*Document, error) {
	return Parse(strings.NewReader(text), opts)
}

// A parser is a recursive-descent parser over the token stream of a
// Scanner. Parse methods share the invariant that on entry cur is the first
// token of their production and on return it is the last.
type parser struct {
	sc   *jsyn.Scanner
	opts ParseOptions
	cur  jsyn.Token
	toks []jsyn.Token
}

// next advances cur to the next non-comment token and reports whether one
// was available. At the end of input, cur is left holding an empty span at
// the end position. A scanner error is thrown as a panic, recovered at the
// top of the parse.
func (p *parser) next() bool {
	for p.sc.Next() {
		tok := jsyn.Token{Kind: p.sc.Kind(), Text: string(p.sc.Text()), Loc: p.sc.Location()}
		if p.opts.Tokens {
			p.toks = append(p.toks, tok)
		}
		if tok.Kind == jsyn.LineComment || tok.Kind == jsyn.BlockComment {
			continue
		}
		p.cur = tok
		return true
	}
	if err := p.sc.Err(); err != nil {
		panic(err)
	}
	p.cur = jsyn.Token{Loc: p.sc.Location()}
	return false
}

// advance moves to the next non-comment token, failing at the end of input.
// If kinds are given, the new token must be among them.
func (p *parser) advance(kinds ...jsyn.TokenKind) {
	if !p.next() {
		if len(kinds) == 0 {
			p.failf("unexpected end of input")
		}
		p.failf("%v", tokLabel(kinds, "end of input"))
	}
	if len(kinds) != 0 && !slices.Contains(kinds, p.cur.Kind) {
		p.failf("%v", tokLabel(kinds, p.cur.Kind))
	}
}

func (p *parser) failf(msg string, args ...any) {
	panic(&jsyn.SyntaxError{
		Message: fmt.Sprintf(msg, args...),
		Line:    p.cur.Loc.First.Line,
		Column:  p.cur.Loc.First.Column,
		Offset:  p.cur.Loc.Pos,
	})
}

// tokLabel makes a human-readable summary string for the given token kinds.
func tokLabel(kinds []jsyn.TokenKind, got any) string {
	if len(kinds) == 0 {
		return fmt.Sprint(got)
	}
	var exp string
	if len(kinds) == 1 {
		exp = kinds[0].String()
	} else {
		last := len(kinds) - 1
		ss := make([]string, len(kinds)-1)
		for i, kind := range kinds[:last] {
			ss[i] = kind.String()
		}
		exp = strings.Join(ss, ", ") + " or " + kinds[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// parseValue consumes a single value of any type.
func (p *parser) parseValue() Node {
	switch p.cur.Kind {
	case jsyn.LBrace:
		return p.parseObject()
	case jsyn.LSquare:
		return p.parseArray()
	case jsyn.String:
		return p.parseString()
	case jsyn.Number:
		return p.parseNumber()
	case jsyn.True, jsyn.False:
		return &Boolean{Value: p.cur.Kind == jsyn.True, Loc: p.loc(p.cur.Loc)}
	case jsyn.Null:
		return &Null{Loc: p.loc(p.cur.Loc)}
	}
	p.failf("unexpected %v", p.cur.Kind)
	panic("unreachable")
}

// parseObject consumes zero or more key:value members.
// Precondition: cur == LBrace. Postcondition: cur == RBrace.
func (p *parser) parseObject() *Object {
	open := p.cur.Loc
	obj := new(Object)

	nameKinds := []jsyn.TokenKind{jsyn.String, jsyn.RBrace}
	if p.opts.Mode == jsyn.JSON5 {
		nameKinds = append(nameKinds, jsyn.Ident)
	}
	p.advance(nameKinds...)
	for p.cur.Kind != jsyn.RBrace {
		obj.Members = append(obj.Members, p.parseMember())

		// Check whether we have more members (",") or are done ("}").
		p.advance(jsyn.RBrace, jsyn.Comma)
		if p.cur.Kind == jsyn.RBrace {
			break
		}
		// A "}" after the comma is a trailing comma, valid only in json5.
		if p.opts.Mode == jsyn.JSON5 {
			p.advance(nameKinds...)
		} else {
			p.advance(jsyn.String)
		}
	}
	obj.Loc = p.span(open, p.cur.Loc)
	return obj
}

// parseMember consumes a single name:value member.
// Precondition: cur is the name token.
func (p *parser) parseMember() *Member {
	start := p.cur.Loc
	var name Node
	if p.cur.Kind == jsyn.Ident {
		name = &Ident{Name: p.cur.Text, Loc: p.loc(p.cur.Loc)}
	} else {
		name = p.parseString()
	}
	p.advance(jsyn.Colon)
	p.advance()
	value := p.parseValue()
	return &Member{Name: name, Value: value, Loc: p.span(start, p.cur.Loc)}
}

// parseArray consumes zero or more comma-separated values.
// Precondition: cur == LSquare. Postcondition: cur == RSquare.
func (p *parser) parseArray() *Array {
	open := p.cur.Loc
	arr := new(Array)

	p.advance()
	for p.cur.Kind != jsyn.RSquare {
		arr.Elements = append(arr.Elements, p.parseValue())

		p.advance(jsyn.RSquare, jsyn.Comma)
		if p.cur.Kind == jsyn.RSquare {
			break
		}
		p.advance()
		// A "]" after the comma is a trailing comma, valid only in json5.
		// Otherwise parseValue rejects it on the next pass.
		if p.opts.Mode == jsyn.JSON5 && p.cur.Kind == jsyn.RSquare {
			break
		}
	}
	arr.Loc = p.span(open, p.cur.Loc)
	return arr
}

// parseString decodes the current token as a string value.
// Precondition: cur == String.
func (p *parser) parseString() *String {
	text := p.cur.Text
	body := mem.S(text[1 : len(text)-1])

	var dec []byte
	var err error
	if p.opts.Mode == jsyn.JSON5 {
		dec, err = escape.UnquoteJSON5(body)
	} else {
		dec, err = escape.Unquote(body)
	}
	if err != nil {
		p.failf("invalid string: %v", err)
	}
	return &String{Value: string(dec), Loc: p.loc(p.cur.Loc)}
}

// parseNumber decodes the current token as a numeric value.
// Precondition: cur == Number.
func (p *parser) parseNumber() *Number {
	v, err := parseFloat(p.cur.Text)
	if err != nil {
		p.failf("invalid number: %v", err)
	}
	return &Number{Value: v, Loc: p.loc(p.cur.Loc)}
}

// parseFloat converts the text of a number token to a float64. Values too
// large to represent round to an infinity. Hexadecimal literals are exact
// up to 2**53 and lose low-order bits beyond that, as in ECMA-262.
func parseFloat(text string) (float64, error) {
	s, neg := text, false
	if len(s) != 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	var f float64
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		for i := 2; i < len(s); i++ {
			f = f*16 + float64(hexVal(s[i]))
		}
	} else {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			var ne *strconv.NumError
			if !errors.As(err, &ne) || ne.Err != strconv.ErrRange {
				return 0, err
			}
		}
		f = v
	}
	if neg {
		f = -f
	}
	return f, nil
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

// loc returns a copy of l, or nil if locations are not being recorded.
func (p *parser) loc(l jsyn.Location) *jsyn.Location {
	if !p.opts.Ranges {
		return nil
	}
	return &l
}

// span returns the location from the start of first to the end of last, or
// nil if locations are not being recorded.
func (p *parser) span(first, last jsyn.Location) *jsyn.Location {
	if !p.opts.Ranges {
		return nil
	}
	l := first.To(last)
	return &l
}
