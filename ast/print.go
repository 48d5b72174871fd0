// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jsyn"
)

// PrintOptions control the format of printed output. A nil *PrintOptions is
// ready for use and provides default values as described.
type PrintOptions struct {
	// The number of spaces of indentation per nesting level. Zero selects
	// compact output, with no whitespace between tokens.
	Indent int
}

// Print renders the tree rooted at node as dialect-independent JSON text.
// Output is deterministic: the same tree and options always produce the
// same text. In case of error, the returned error has concrete type
// [*jsyn.PrintError].
//
// Comments and the notational choices of the original input, such as hex
// literals or single quotes, are not reproduced; strings print in their
// decoded form with standard escaping, and numbers print from their
// float64 values.
func Print(node Node, opts *PrintOptions) (string, error) {
	p, err := newPrinter(opts)
	if err != nil {
		return "", err
	}
	if err := p.value(node, 0); err != nil {
		return "", err
	}
	return string(p.buf), nil
}

// Fprint renders the tree rooted at node to w, as Print. Nothing is written
// to w unless the whole tree rendered without error.
func Fprint(w io.Writer, node Node, opts *PrintOptions) error {
	p, err := newPrinter(opts)
	if err != nil {
		return err
	}
	if err := p.value(node, 0); err != nil {
		return err
	}
	_, err = w.Write(p.buf)
	return err
}

type printer struct {
	buf    []byte
	indent int
}

func newPrinter(opts *PrintOptions) (*printer, error) {
	p := new(printer)
	if opts != nil {
		p.indent = opts.Indent
	}
	if p.indent < 0 {
		return nil, &jsyn.PrintError{Message: fmt.Sprintf("invalid indent %d", p.indent)}
	}
	return p, nil
}

func (p *printer) text(s string) { p.buf = append(p.buf, s...) }

// newline breaks the line and indents to the given depth. In compact mode
// it does nothing.
func (p *printer) newline(depth int) {
	if p.indent == 0 {
		return
	}
	p.buf = append(p.buf, '\n')
	for i := 0; i < depth*p.indent; i++ {
		p.buf = append(p.buf, ' ')
	}
}

func (p *printer) value(node Node, depth int) error {
	switch t := node.(type) {
	case *Document:
		return p.value(t.Body, depth)
	case *Object:
		return p.object(t, depth)
	case *Member:
		return p.member(t, depth)
	case *Array:
		return p.array(t, depth)
	case *String:
		p.text(jsyn.Quote(t.Value))
	case *Ident:
		p.text(jsyn.Quote(t.Name))
	case *Number:
		return p.number(t.Value)
	case *Boolean:
		p.text(strconv.FormatBool(t.Value))
	case *Null:
		p.text("null")
	default:
		return &jsyn.PrintError{Message: fmt.Sprintf("cannot print %T", node)}
	}
	return nil
}

func (p *printer) object(obj *Object, depth int) error {
	if len(obj.Members) == 0 {
		p.text("{}")
		return nil
	}
	p.text("{")
	for i, m := range obj.Members {
		if i > 0 {
			p.text(",")
		}
		p.newline(depth + 1)
		if err := p.member(m, depth+1); err != nil {
			return err
		}
	}
	p.newline(depth)
	p.text("}")
	return nil
}

func (p *printer) member(m *Member, depth int) error {
	if err := p.value(m.Name, depth); err != nil {
		return err
	}
	p.text(":")
	if p.indent > 0 {
		p.text(" ")
	}
	return p.value(m.Value, depth)
}

func (p *printer) array(arr *Array, depth int) error {
	if len(arr.Elements) == 0 {
		p.text("[]")
		return nil
	}
	p.text("[")
	for i, elt := range arr.Elements {
		if i > 0 {
			p.text(",")
		}
		p.newline(depth + 1)
		if err := p.value(elt, depth+1); err != nil {
			return err
		}
	}
	p.newline(depth)
	p.text("]")
	return nil
}

// number renders f in the shortest decimal form that parses back to the
// same value, using exponent notation for very small and very large
// magnitudes. Non-finite values have no JSON representation and report an
// error.
func (p *printer) number(f float64) error {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return &jsyn.PrintError{Message: fmt.Sprintf("cannot print %v", f)}
	}
	if f == 0 {
		p.text("0") // including negative zero
		return nil
	}

	format := byte('f')
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	p.buf = strconv.AppendFloat(p.buf, f, format, -1, 64)
	if format == 'e' {
		// Trim a zero-padded exponent: e-09 renders as e-9.
		if n := len(p.buf); n >= 4 && p.buf[n-4] == 'e' && p.buf[n-3] == '-' && p.buf[n-2] == '0' {
			p.buf[n-2] = p.buf[n-1]
			p.buf = p.buf[:n-1]
		}
	}
	return nil
}
