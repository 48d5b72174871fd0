// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"encoding/json"

	"github.com/creachadair/jsyn"
)

// The JSON encoding of a node is an object tagged with the node's type:
//
//	{"type": "String", "value": "ok", "range": [0, 4], "loc": {...}}
//
// The "range" and "loc" properties are present only in nodes carrying
// location information.

// rangeOf extracts the byte range of l, or nil.
func rangeOf(l *jsyn.Location) *[2]int {
	if l == nil {
		return nil
	}
	return &[2]int{l.Pos, l.End}
}

// nonNilMembers returns ms, or an empty non-nil slice.
func nonNilMembers(ms []*Member) []*Member {
	if ms == nil {
		return []*Member{}
	}
	return ms
}

// nonNilElements returns ns, or an empty non-nil slice.
func nonNilElements(ns []Node) []Node {
	if ns == nil {
		return []Node{}
	}
	return ns
}

// MarshalJSON implements the json.Marshaler interface.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string         `json:"type"`
		Body  Node           `json:"body"`
		Range *[2]int        `json:"range,omitempty"`
		Loc   *jsyn.Location `json:"loc,omitempty"`
	}{"Document", d.Body, rangeOf(d.Loc), d.Loc})
}

// MarshalJSON implements the json.Marshaler interface.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string         `json:"type"`
		Members []*Member      `json:"members"`
		Range   *[2]int        `json:"range,omitempty"`
		Loc     *jsyn.Location `json:"loc,omitempty"`
	}{"Object", nonNilMembers(o.Members), rangeOf(o.Loc), o.Loc})
}

// MarshalJSON implements the json.Marshaler interface.
func (m *Member) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string         `json:"type"`
		Name  Node           `json:"name"`
		Value Node           `json:"value"`
		Range *[2]int        `json:"range,omitempty"`
		Loc   *jsyn.Location `json:"loc,omitempty"`
	}{"Member", m.Name, m.Value, rangeOf(m.Loc), m.Loc})
}

// MarshalJSON implements the json.Marshaler interface.
func (a *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string         `json:"type"`
		Elements []Node         `json:"elements"`
		Range    *[2]int        `json:"range,omitempty"`
		Loc      *jsyn.Location `json:"loc,omitempty"`
	}{"Array", nonNilElements(a.Elements), rangeOf(a.Loc), a.Loc})
}

// MarshalJSON implements the json.Marshaler interface.
func (s *String) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string         `json:"type"`
		Value string         `json:"value"`
		Range *[2]int        `json:"range,omitempty"`
		Loc   *jsyn.Location `json:"loc,omitempty"`
	}{"String", s.Value, rangeOf(s.Loc), s.Loc})
}

// MarshalJSON implements the json.Marshaler interface.
func (n *Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string         `json:"type"`
		Value float64        `json:"value"`
		Range *[2]int        `json:"range,omitempty"`
		Loc   *jsyn.Location `json:"loc,omitempty"`
	}{"Number", n.Value, rangeOf(n.Loc), n.Loc})
}

// MarshalJSON implements the json.Marshaler interface.
func (b *Boolean) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string         `json:"type"`
		Value bool           `json:"value"`
		Range *[2]int        `json:"range,omitempty"`
		Loc   *jsyn.Location `json:"loc,omitempty"`
	}{"Boolean", b.Value, rangeOf(b.Loc), b.Loc})
}

// MarshalJSON implements the json.Marshaler interface.
func (n *Null) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string         `json:"type"`
		Range *[2]int        `json:"range,omitempty"`
		Loc   *jsyn.Location `json:"loc,omitempty"`
	}{"Null", rangeOf(n.Loc), n.Loc})
}

// MarshalJSON implements the json.Marshaler interface.
func (id *Ident) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string         `json:"type"`
		Name  string         `json:"name"`
		Range *[2]int        `json:"range,omitempty"`
		Loc   *jsyn.Location `json:"loc,omitempty"`
	}{"Identifier", id.Name, rangeOf(id.Loc), id.Loc})
}
