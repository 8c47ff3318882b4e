package canon

import (
	"sablefmt/internal/cst"
	"sablefmt/internal/token"
)

// attachBraces normalizes delimiter placement: an opening '{' and an
// 'else' keyword belong on the line of their owning construct, so any
// newline or space runs in front of them are dropped. Comments are left
// in place (best effort; the printer keeps them ahead of the token).
func attachBraces(file *cst.Node) *cst.Node {
	out := mapLeaves(file, func(leaf cst.Leaf) cst.Leaf {
		if leaf.Tok.Kind != token.LBrace && leaf.Tok.Kind != token.KwElse {
			return leaf
		}
		if !hasLayoutTrivia(leaf.Tok.Leading) {
			return leaf
		}
		tok := leaf.Tok
		kept := make([]token.Trivia, 0, len(tok.Leading))
		for _, tr := range tok.Leading {
			if tr.IsComment() {
				kept = append(kept, tr)
			}
		}
		if len(kept) == 0 {
			kept = nil
		}
		tok.Leading = kept
		return cst.Leaf{Tok: tok}
	})
	return out.(*cst.Node)
}

func hasLayoutTrivia(trivia []token.Trivia) bool {
	for _, tr := range trivia {
		if tr.Kind == token.TriviaSpace || tr.Kind == token.TriviaNewline {
			return true
		}
	}
	return false
}
