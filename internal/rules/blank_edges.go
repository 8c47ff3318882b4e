package rules

import (
	"strings"

	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/source"
	"sablefmt/internal/token"
)

// checkBlankEdges flags blank lines directly after '{' or directly
// before '}' in blocks and type bodies. The formatter removes these;
// the rule reports them where the author wrote them.
func checkBlankEdges(ctx Context, r diag.Reporter) {
	cst.Walk(ctx.Tree, func(c cst.Child) bool {
		n, ok := c.(*cst.Node)
		if !ok {
			return true
		}
		if n.Kind != cst.KindBlock && n.Kind != cst.KindTypeDecl {
			return true
		}
		i := bodyOpen(n)
		if i < 0 || i+1 >= len(n.Children) {
			return true
		}
		after, ok := firstTokenOf(n.Children[i+1])
		if ok {
			if sp, found := openingBlank(after.Leading); found {
				diag.ReportWarning(r, diag.StyleBlankEdge, sp,
					"blank line directly after '{'")
			}
		}
		// an empty body was fully covered by the opening check
		if i+1 == len(n.Children)-1 {
			return true
		}
		if close, ok := n.Children[len(n.Children)-1].(cst.Leaf); ok &&
			close.Tok.Kind == token.RBrace {
			if sp, found := closingBlank(close.Tok.Leading); found {
				diag.ReportWarning(r, diag.StyleBlankEdge, sp,
					"blank line directly before '}'")
			}
		}
		return true
	})
}

// bodyOpen returns the index of the '{' leaf.
func bodyOpen(n *cst.Node) int {
	for i, c := range n.Children {
		if leaf, ok := c.(cst.Leaf); ok && leaf.Tok.Kind == token.LBrace {
			return i
		}
	}
	return -1
}

func firstTokenOf(c cst.Child) (token.Token, bool) {
	switch c := c.(type) {
	case cst.Leaf:
		return c.Tok, true
	case *cst.Node:
		return c.FirstToken()
	}
	return token.Token{}, false
}

// openingBlank finds a blank newline run before any comment in the
// trivia, i.e. an empty line adjacent to the preceding '{'.
func openingBlank(trivia []token.Trivia) (source.Span, bool) {
	for _, tr := range trivia {
		switch tr.Kind {
		case token.TriviaSpace:
			continue
		case token.TriviaNewline:
			if strings.Count(tr.Text, "\n") >= 2 {
				return tr.Span, true
			}
			return source.Span{}, false
		default:
			return source.Span{}, false
		}
	}
	return source.Span{}, false
}

// closingBlank finds a blank newline run after the last comment, i.e.
// an empty line adjacent to the '}' the trivia belongs to.
func closingBlank(trivia []token.Trivia) (source.Span, bool) {
	for i := len(trivia) - 1; i >= 0; i-- {
		tr := trivia[i]
		switch tr.Kind {
		case token.TriviaSpace:
			continue
		case token.TriviaNewline:
			if strings.Count(tr.Text, "\n") >= 2 {
				return tr.Span, true
			}
			return source.Span{}, false
		default:
			return source.Span{}, false
		}
	}
	return source.Span{}, false
}
