package cst

import (
	"sablefmt/internal/source"
	"sablefmt/internal/token"
)

// Child is one slot of a Node: either a nested *Node or a Leaf token.
// Trees are treated as immutable after construction; formatting passes
// build new nodes instead of editing in place.
type Child interface {
	Span() source.Span
	isChild()
}

// Leaf wraps a single token (with its leading trivia) as a tree child.
type Leaf struct {
	Tok token.Token
}

func (l Leaf) Span() source.Span { return l.Tok.Span }
func (Leaf) isChild()            {}

// Node is a non-leaf syntax construct: an ordered sequence of children
// under a Kind tag. Children is read-only by convention.
type Node struct {
	Kind     Kind
	Children []Child
}

func (n *Node) Span() source.Span {
	if len(n.Children) == 0 {
		return source.Span{}
	}
	sp := n.Children[0].Span()
	for _, c := range n.Children[1:] {
		sp = sp.Cover(c.Span())
	}
	return sp
}

func (*Node) isChild() {}

// NewNode builds a node over the given children.
func NewNode(kind Kind, children ...Child) *Node {
	return &Node{Kind: kind, Children: children}
}

// WithChildren returns a copy of n holding the provided children.
func (n *Node) WithChildren(children []Child) *Node {
	return &Node{Kind: n.Kind, Children: children}
}

// FirstToken returns the first token in tree order.
func (n *Node) FirstToken() (token.Token, bool) {
	for _, c := range n.Children {
		switch c := c.(type) {
		case Leaf:
			return c.Tok, true
		case *Node:
			if t, ok := c.FirstToken(); ok {
				return t, true
			}
		}
	}
	return token.Token{}, false
}

// LastToken returns the last token in tree order.
func (n *Node) LastToken() (token.Token, bool) {
	for i := len(n.Children) - 1; i >= 0; i-- {
		switch c := n.Children[i].(type) {
		case Leaf:
			return c.Tok, true
		case *Node:
			if t, ok := c.LastToken(); ok {
				return t, true
			}
		}
	}
	return token.Token{}, false
}

// FindChild returns the first direct child node of the given kind.
func (n *Node) FindChild(kind Kind) (*Node, bool) {
	for _, c := range n.Children {
		if sub, ok := c.(*Node); ok && sub.Kind == kind {
			return sub, true
		}
	}
	return nil, false
}

// FindToken returns the first direct leaf of the given token kind.
func (n *Node) FindToken(kind token.Kind) (token.Token, bool) {
	for _, c := range n.Children {
		if leaf, ok := c.(Leaf); ok && leaf.Tok.Kind == kind {
			return leaf.Tok, true
		}
	}
	return token.Token{}, false
}

// Nodes returns the direct child nodes of the given kind, in order.
func (n *Node) Nodes(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if sub, ok := c.(*Node); ok && sub.Kind == kind {
			out = append(out, sub)
		}
	}
	return out
}
