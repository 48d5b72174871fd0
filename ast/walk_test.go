// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"fmt"
	"testing"

	"github.com/creachadair/jsyn/ast"
	"github.com/google/go-cmp/cmp"
)

func nodeLabel(node ast.Node) string {
	switch t := node.(type) {
	case *ast.Document:
		return "doc"
	case *ast.Object:
		return "obj"
	case *ast.Member:
		return "member"
	case *ast.Array:
		return "array"
	case *ast.String:
		return fmt.Sprintf("str:%s", t.Value)
	case *ast.Number:
		return fmt.Sprintf("num:%v", t.Value)
	case *ast.Boolean:
		return fmt.Sprintf("bool:%v", t.Value)
	case *ast.Null:
		return "null"
	case *ast.Ident:
		return fmt.Sprintf("id:%s", t.Name)
	}
	return fmt.Sprintf("%T", node)
}

func TestWalk(t *testing.T) {
	d := mustParse(t, `{"a": 1, "b": [true, null]}`, nil)

	var log []string
	ast.Walk(d, ast.Visitor{
		Enter: func(node, parent ast.Node) {
			log = append(log, "enter "+nodeLabel(node))
		},
		Exit: func(node, parent ast.Node) {
			log = append(log, "exit "+nodeLabel(node))
		},
	})

	want := []string{
		"enter doc",
		"enter obj",
		"enter member",
		"enter str:a", "exit str:a",
		"enter num:1", "exit num:1",
		"exit member",
		"enter member",
		"enter str:b", "exit str:b",
		"enter array",
		"enter bool:true", "exit bool:true",
		"enter null", "exit null",
		"exit array",
		"exit member",
		"exit obj",
		"exit doc",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("Walk transcript: (-want, +got)\n%s", diff)
	}
}

func TestWalk_parents(t *testing.T) {
	d := mustParse(t, `{"nest": [[5]]}`, nil)

	parents := make(map[ast.Node]ast.Node)
	ast.Walk(d, ast.Visitor{
		Enter: func(node, parent ast.Node) { parents[node] = parent },
	})

	if got := parents[d]; got != nil {
		t.Errorf("Parent of root: got %v, want nil", got)
	}
	obj := d.Body.(*ast.Object)
	if got := parents[obj]; got != ast.Node(d) {
		t.Errorf("Parent of body: got %v, want the document", got)
	}
	m := obj.Members[0]
	if got := parents[m.Value]; got != ast.Node(m) {
		t.Errorf("Parent of member value: got %v, want the member", got)
	}
	outer := m.Value.(*ast.Array)
	inner := outer.Elements[0].(*ast.Array)
	if got := parents[inner.Elements[0]]; got != ast.Node(inner) {
		t.Errorf("Parent of 5: got %v, want the inner array", got)
	}
}

func TestWalk_enterOnly(t *testing.T) {
	d := mustParse(t, `[1, [2, 3]]`, nil)

	var nums []float64
	ast.Walk(d, ast.Visitor{
		Enter: func(node, parent ast.Node) {
			if num, ok := node.(*ast.Number); ok {
				nums = append(nums, num.Value)
			}
		},
	})
	if diff := cmp.Diff([]float64{1, 2, 3}, nums); diff != "" {
		t.Errorf("Numbers visited: (-want, +got)\n%s", diff)
	}

	// A visitor with no callbacks at all is fine too.
	ast.Walk(d, ast.Visitor{})
}
