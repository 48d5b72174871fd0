package ast

// A Visitor carries callbacks invoked during a Walk. Either callback may be
// nil, in which case it is skipped.
type Visitor struct {
	// Enter is called for each node before any of its children.
	Enter func(node, parent Node)

	// Exit is called for each node after all of its children.
	Exit func(node, parent Node)
}

// Walk traverses the tree rooted at root in depth-first order, calling the
// callbacks of v for each node visited. The children of an object are its
// members; the children of a member are its name followed by its value. The
// parent of root is reported as nil.
func Walk(root Node, v Visitor) { walk(root, nil, v) }

func walk(node, parent Node, v Visitor) {
	if v.Enter != nil {
		v.Enter(node, parent)
	}
	switch t := node.(type) {
	case *Document:
		walk(t.Body, t, v)
	case *Object:
		for _, m := range t.Members {
			walk(m, t, v)
		}
	case *Member:
		walk(t.Name, t, v)
		walk(t.Value, t, v)
	case *Array:
		for _, elt := range t.Elements {
			walk(elt, t, v)
		}
	}
	if v.Exit != nil {
		v.Exit(node, parent)
	}
}
