package printer

import (
	"strings"

	"sablefmt/internal/cst"
	"sablefmt/internal/token"
)

// flat renders a subtree on a single line with canonical spacing. It
// ignores trivia entirely; comments are hoisted ahead of the construct
// by the printer before any flat rendering happens.
func flat(c cst.Child) string {
	var sb strings.Builder
	flatInto(&sb, c)
	return sb.String()
}

func flatInto(sb *strings.Builder, c cst.Child) {
	switch c := c.(type) {
	case cst.Leaf:
		flatLeaf(sb, c.Tok)
	case *cst.Node:
		switch c.Kind {
		case cst.KindPath, cst.KindTypeRef, cst.KindMemberExpr:
			// dotted chains carry no spaces
			for _, sub := range c.Children {
				if leaf, ok := sub.(cst.Leaf); ok {
					sb.WriteString(leaf.Tok.Text)
				} else {
					flatInto(sb, sub)
				}
			}
		case cst.KindUnaryExpr:
			if leaf, ok := c.Children[0].(cst.Leaf); ok {
				sb.WriteString(leaf.Tok.Text)
			}
			flatInto(sb, c.Children[1])
		case cst.KindParamList, cst.KindArgList:
			sb.WriteByte('(')
			first := true
			for _, sub := range c.Children {
				if _, ok := sub.(cst.Leaf); ok {
					continue // delimiters and commas are re-synthesized
				}
				if !first {
					sb.WriteString(", ")
				}
				first = false
				flatInto(sb, sub)
			}
			sb.WriteByte(')')
		case cst.KindParenExpr:
			sb.WriteByte('(')
			flatInto(sb, c.Children[1])
			sb.WriteByte(')')
		default:
			flatSeq(sb, c.Children)
		}
	}
}

// flatSeq renders a child sequence with token-driven spacing; used for
// declarations, statements, binary expressions, and calls.
func flatSeq(sb *strings.Builder, children []cst.Child) {
	for i, sub := range children {
		leaf, ok := sub.(cst.Leaf)
		if !ok {
			flatInto(sb, sub)
			continue
		}
		tok := leaf.Tok
		switch {
		case tok.Kind == token.Semicolon:
			sb.WriteByte(';')
		case tok.Kind == token.Comma:
			// re-synthesized by list printing; a trailing comma in the
			// source is dropped here
		case tok.Kind == token.Colon:
			sb.WriteString(": ")
		case tok.Kind == token.Assign:
			pad(sb)
			sb.WriteString("= ")
		case tok.Kind == token.Arrow:
			pad(sb)
			sb.WriteString("-> ")
		case isBinaryOp(tok.Kind):
			pad(sb)
			sb.WriteString(tok.Text)
			sb.WriteByte(' ')
		case tok.IsKeyword() && !tok.IsLiteral():
			pad(sb)
			sb.WriteString(tok.Text)
			if !nextIsSemicolon(children, i) {
				sb.WriteByte(' ')
			}
		default:
			sb.WriteString(tok.Text)
		}
	}
}

func pad(sb *strings.Builder) {
	s := sb.String()
	if len(s) > 0 && s[len(s)-1] != ' ' && s[len(s)-1] != '(' {
		sb.WriteByte(' ')
	}
}

func flatLeaf(sb *strings.Builder, tok token.Token) {
	sb.WriteString(tok.Text)
}

func nextIsSemicolon(children []cst.Child, i int) bool {
	if i+1 >= len(children) {
		return true
	}
	leaf, ok := children[i+1].(cst.Leaf)
	return ok && leaf.Tok.Kind == token.Semicolon
}

func isBinaryOp(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.AndAnd, token.OrOr:
		return true
	default:
		return false
	}
}
