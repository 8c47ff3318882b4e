package cst

import (
	"bytes"

	"sablefmt/internal/token"
)

// Source reassembles the original text of the tree: for every token in
// tree order, its leading trivia followed by the token text. For a tree
// produced by the parser this reproduces the input byte-for-byte (the
// lossless parse invariant).
func Source(c Child) []byte {
	var buf bytes.Buffer
	appendSource(&buf, c)
	return buf.Bytes()
}

func appendSource(buf *bytes.Buffer, c Child) {
	switch c := c.(type) {
	case Leaf:
		for _, tr := range c.Tok.Leading {
			buf.WriteString(tr.Text)
		}
		buf.WriteString(c.Tok.Text)
	case *Node:
		for _, sub := range c.Children {
			appendSource(buf, sub)
		}
	}
}

// Tokens flattens the tree into its token stream in order.
func Tokens(c Child) []token.Token {
	var out []token.Token
	Walk(c, func(ch Child) bool {
		if leaf, ok := ch.(Leaf); ok {
			out = append(out, leaf.Tok)
		}
		return true
	})
	return out
}

// Walk visits the tree pre-order. Returning false from fn skips the
// children of the current node.
func Walk(c Child, fn func(Child) bool) {
	if !fn(c) {
		return
	}
	if n, ok := c.(*Node); ok {
		for _, sub := range n.Children {
			Walk(sub, fn)
		}
	}
}
