package printer

import (
	"sablefmt/internal/cst"
	"sablefmt/internal/token"
)

type printer struct {
	w *Writer
}

// Print serializes a canonical tree into formatted text. The result is
// a pure function of the tree and MaxLineWidth: identical trees always
// yield identical bytes (determinism invariant).
func Print(file *cst.Node) []byte {
	p := &printer{w: NewWriter()}
	p.printFile(file)
	return p.w.Bytes()
}

func (p *printer) printFile(file *cst.Node) {
	wrote := false
	for _, c := range file.Children {
		switch c := c.(type) {
		case *cst.Node:
			tok, _ := c.FirstToken()
			p.emitLeading(tok, wrote)
			p.printDecl(c)
			p.w.Newline()
			wrote = true
		case cst.Leaf:
			// EOF carries the file's trailing comments.
			p.emitLeading(c.Tok, wrote)
		}
	}
	if wrote {
		p.w.Newline()
	}
}

// emitLeading prints the comments and blank-line separation held in a
// token's leading trivia. The caller is responsible for being at a line
// start. allowBlank suppresses blank lines at the very top of a scope.
func (p *printer) emitLeading(tok token.Token, allowBlank bool) {
	pendingBlank := false
	for _, tr := range tok.Leading {
		switch tr.Kind {
		case token.TriviaNewline:
			if len(tr.Text) >= 2 {
				pendingBlank = true
			}
		case token.TriviaSpace:
			// canonical trees have none; ignore
		default:
			if pendingBlank && allowBlank {
				p.w.BlankLine()
			}
			pendingBlank = false
			allowBlank = true
			p.w.WriteString(tr.Text)
			p.w.Newline()
		}
	}
	if pendingBlank && allowBlank {
		p.w.BlankLine()
	}
}

// hoistComments prints, ahead of a construct, the comments buried on its
// inner tokens (everything but the first token and block interiors,
// which print their own). Formatting keeps every comment even when it
// cannot keep its exact position.
func (p *printer) hoistComments(c cst.Child) {
	p.hoistTokens(innerTokens(c))
}

func (p *printer) hoistTokens(tokens []token.Token) {
	for _, tok := range tokens {
		for _, tr := range tok.Leading {
			if tr.IsComment() {
				p.w.WriteString(tr.Text)
				p.w.Newline()
			}
		}
	}
}

// innerTokens lists the subtrees' tokens except the very first one.
// Of a nested block only the opening brace is included: its trivia has
// no other emitter, while statements and the closing brace print their
// own.
func innerTokens(children ...cst.Child) []token.Token {
	var out []token.Token
	first := true
	var visit func(cst.Child)
	visit = func(ch cst.Child) {
		switch ch := ch.(type) {
		case cst.Leaf:
			if first {
				first = false
				return
			}
			out = append(out, ch.Tok)
		case *cst.Node:
			if ch.Kind == cst.KindBlock {
				if len(ch.Children) > 0 {
					visit(ch.Children[0])
				}
				return
			}
			for _, sub := range ch.Children {
				visit(sub)
			}
		}
	}
	for _, c := range children {
		visit(c)
	}
	return out
}

// fits reports whether s fits on the current line with reserve columns
// kept for trailing punctuation.
func (p *printer) fits(s string, reserve int) bool {
	return p.w.Column()+width(s)+reserve <= MaxLineWidth
}
