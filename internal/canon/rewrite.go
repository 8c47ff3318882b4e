package canon

import (
	"sablefmt/internal/cst"
)

// mapLeaves rebuilds the tree, passing every leaf through fn. Nodes are
// re-created, never mutated, so the input tree stays intact.
func mapLeaves(c cst.Child, fn func(cst.Leaf) cst.Leaf) cst.Child {
	switch c := c.(type) {
	case cst.Leaf:
		return fn(c)
	case *cst.Node:
		children := make([]cst.Child, len(c.Children))
		for i, sub := range c.Children {
			children[i] = mapLeaves(sub, fn)
		}
		return c.WithChildren(children)
	}
	return c
}

// firstLeaf returns the first token leaf of a subtree.
func firstLeaf(c cst.Child) (cst.Leaf, bool) {
	switch c := c.(type) {
	case cst.Leaf:
		return c, true
	case *cst.Node:
		if tok, ok := c.FirstToken(); ok {
			return cst.Leaf{Tok: tok}, true
		}
	}
	return cst.Leaf{}, false
}

// withFirstLeaf rebuilds the subtree with its first leaf replaced.
func withFirstLeaf(c cst.Child, leaf cst.Leaf) cst.Child {
	switch c := c.(type) {
	case cst.Leaf:
		return leaf
	case *cst.Node:
		for i, sub := range c.Children {
			if _, ok := firstLeaf(sub); !ok {
				continue
			}
			children := make([]cst.Child, len(c.Children))
			copy(children, c.Children)
			children[i] = withFirstLeaf(sub, leaf)
			return c.WithChildren(children)
		}
	}
	return c
}
