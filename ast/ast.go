// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values, with support
// for parsing, traversal, and output. The tree records optional source
// location information for each node, so that structure can be mapped back
// to positions in the input.
package ast

import (
	"fmt"

	"github.com/creachadair/jsyn"
)

// A Node is an element of the syntax tree.
type Node interface {
	// Location returns the source location of the node, or nil if the tree
	// was constructed without location information.
	Location() *jsyn.Location

	isNode()
}

// A Document is the root of a syntax tree. Its span covers the entire
// input, including any whitespace and comments around the body value.
type Document struct {
	Body Node

	// Tokens is the complete token sequence of the input, including comment
	// tokens, in source order. It is populated only when requested at parse
	// time.
	Tokens []jsyn.Token

	Loc *jsyn.Location
}

// An Object is a collection of key-value members.
type Object struct {
	Members []*Member

	Loc *jsyn.Location
}

// Find returns the first member of o whose key is text, or nil if no such
// member exists.
func (o *Object) Find(text string) *Member {
	for _, m := range o.Members {
		if m.Key() == text {
			return m
		}
	}
	return nil
}

// A Member is a single key-value pair of an object. The Name is either a
// *String or, in trees parsed from JSON5 input, possibly an *Ident.
type Member struct {
	Name  Node
	Value Node

	Loc *jsyn.Location
}

// Key returns the text of the member name, or "" if the name is not a
// string or identifier node.
func (m *Member) Key() string {
	switch t := m.Name.(type) {
	case *String:
		return t.Value
	case *Ident:
		return t.Name
	}
	return ""
}

// An Array is a sequence of values.
type Array struct {
	Elements []Node

	Loc *jsyn.Location
}

// A String is a string value. Value holds the decoded text, with quotation
// marks removed and escape sequences expanded.
type String struct {
	Value string

	Loc *jsyn.Location
}

// A Number is a numeric value.
type Number struct {
	Value float64

	Loc *jsyn.Location
}

// A Boolean is a true or false value.
type Boolean struct {
	Value bool

	Loc *jsyn.Location
}

// A Null represents the null value.
type Null struct {
	Loc *jsyn.Location
}

// An Ident is an unquoted identifier used as an object key. It occurs only
// in trees parsed from JSON5 input.
type Ident struct {
	Name string

	Loc *jsyn.Location
}

func (d *Document) Location() *jsyn.Location { return d.Loc }
func (o *Object) Location() *jsyn.Location   { return o.Loc }
func (m *Member) Location() *jsyn.Location   { return m.Loc }
func (a *Array) Location() *jsyn.Location    { return a.Loc }
func (s *String) Location() *jsyn.Location   { return s.Loc }
func (n *Number) Location() *jsyn.Location   { return n.Loc }
func (b *Boolean) Location() *jsyn.Location  { return b.Loc }
func (n *Null) Location() *jsyn.Location     { return n.Loc }
func (id *Ident) Location() *jsyn.Location   { return id.Loc }

func (*Document) isNode() {}
func (*Object) isNode()   {}
func (*Member) isNode()   {}
func (*Array) isNode()    {}
func (*String) isNode()   {}
func (*Number) isNode()   {}
func (*Boolean) isNode()  {}
func (*Null) isNode()     {}
func (*Ident) isNode()    {}

// ToValue converts a plain Go value into an equivalent Node, without
// location information. It panics if the value cannot be converted.
func ToValue(v any) Node {
	switch t := v.(type) {
	case nil:
		return new(Null)
	case bool:
		return &Boolean{Value: t}
	case string:
		return &String{Value: t}
	case int:
		return &Number{Value: float64(t)}
	case int64:
		return &Number{Value: float64(t)}
	case float64:
		return &Number{Value: t}
	case []any:
		out := &Array{Elements: make([]Node, len(t))}
		for i, elt := range t {
			out.Elements[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		out := &Object{Members: make([]*Member, 0, len(t))}
		for key, val := range t {
			out.Members = append(out.Members, Field(key, val))
		}
		return out
	case Node:
		return t
	}
	panic(fmt.Sprintf("cannot convert %T to a value", v))
}

// Field constructs an object member with the given key and value. The value
// is converted with ToValue, and panics under the same conditions.
func Field(key string, value any) *Member {
	return &Member{Name: &String{Value: key}, Value: ToValue(value)}
}
