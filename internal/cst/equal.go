package cst

// Equal reports deep structural equality: node kinds, token kinds and
// texts, and trivia texts all match. Spans are ignored so that trees
// parsed from different buffers still compare equal.
func Equal(a, b Child) bool {
	switch a := a.(type) {
	case Leaf:
		lb, ok := b.(Leaf)
		if !ok || a.Tok.Kind != lb.Tok.Kind || a.Tok.Text != lb.Tok.Text {
			return false
		}
		if len(a.Tok.Leading) != len(lb.Tok.Leading) {
			return false
		}
		for i, tr := range a.Tok.Leading {
			other := lb.Tok.Leading[i]
			if tr.Kind != other.Kind || tr.Text != other.Text {
				return false
			}
		}
		return true
	case *Node:
		nb, ok := b.(*Node)
		if !ok || a.Kind != nb.Kind || len(a.Children) != len(nb.Children) {
			return false
		}
		for i, c := range a.Children {
			if !Equal(c, nb.Children[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// TopLevelKinds returns the kinds of a file's declarations in order.
// Formatting must keep this sequence unchanged (semantic preservation).
func TopLevelKinds(file *Node) []Kind {
	var kinds []Kind
	for _, c := range file.Children {
		if n, ok := c.(*Node); ok {
			kinds = append(kinds, n.Kind)
		}
	}
	return kinds
}

// CountStmts counts statement nodes in the whole tree, another
// cheap semantic-preservation signature.
func CountStmts(c Child) int {
	count := 0
	Walk(c, func(ch Child) bool {
		if n, ok := ch.(*Node); ok && n.Kind.IsStmt() {
			count++
		}
		return true
	})
	return count
}
