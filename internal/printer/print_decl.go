package printer

import (
	"strings"

	"sablefmt/internal/cst"
	"sablefmt/internal/token"
)

func (p *printer) printDecl(n *cst.Node) {
	switch n.Kind {
	case cst.KindImport:
		p.hoistComments(n)
		// a single dotted path has no break points; overlong imports
		// stay on one line
		p.w.WriteString(flat(n))
	case cst.KindConstDecl:
		p.printConst(n)
	case cst.KindFn:
		p.printFn(n)
	case cst.KindTypeDecl:
		p.printTypeDecl(n)
	}
}

func (p *printer) printConst(n *cst.Node) {
	p.hoistComments(n)
	s := flat(n)
	if p.fits(s, 0) {
		p.w.WriteString(s)
		return
	}
	// keep 'const NAME: Type =' intact and wrap the value
	i := leafIndex(n.Children, token.Assign)
	p.w.WriteString(flatOf(n.Children[:i+1]))
	p.w.WriteString(" ")
	p.printExpr(n.Children[i+1], 1)
	p.w.WriteString(";")
}

func (p *printer) printFn(n *cst.Node) {
	p.hoistComments(n)
	header := n.Children[:len(n.Children)-1]
	body := n.Children[len(n.Children)-1].(*cst.Node)

	hs := flatOf(header)
	if p.fits(hs, 2) {
		p.w.WriteString(hs)
	} else {
		p.printFnHeaderWrapped(header)
	}
	p.w.WriteString(" ")
	p.printBlock(body)
}

// printFnHeaderWrapped puts each parameter on its own line. The arrow
// and return type follow the closing parenthesis.
func (p *printer) printFnHeaderWrapped(header []cst.Child) {
	i := nodeIndex(header, cst.KindParamList)
	params := header[i].(*cst.Node)

	p.w.WriteString(flatOf(header[:i]))
	p.w.WriteString("(")
	p.w.Newline()
	p.w.IndentPush()
	fields := params.Nodes(cst.KindParam)
	for j, param := range fields {
		p.w.WriteString(flat(param))
		if j < len(fields)-1 {
			p.w.WriteString(",")
		}
		p.w.Newline()
	}
	p.w.IndentPop()
	p.w.WriteString(")")
	if rest := flatOf(header[i+1:]); rest != "" {
		p.w.WriteString(" ")
		p.w.WriteString(rest)
	}
}

// printTypeDecl always lays fields out one per line with a trailing
// comma, regardless of width. Only an empty body stays on one line.
func (p *printer) printTypeDecl(n *cst.Node) {
	i := leafIndex(n.Children, token.LBrace)
	rbrace := n.Children[len(n.Children)-1].(cst.Leaf)

	p.hoistTokens(innerTokens(n.Children[:i+1]...))
	p.w.WriteString(flatOf(n.Children[:i]))
	p.w.WriteString(" {")

	body := n.Children[i+1 : len(n.Children)-1]
	if len(body) == 0 && !hasCommentTrivia(rbrace.Tok) {
		p.w.WriteString("}")
		return
	}

	p.w.Newline()
	p.w.IndentPush()
	for _, c := range body {
		switch c := c.(type) {
		case *cst.Node: // field
			tok, _ := c.FirstToken()
			p.emitLeading(tok, true)
			p.hoistComments(c)
			p.w.WriteString(flat(c))
			p.w.WriteString(",")
			p.w.Newline()
		case cst.Leaf: // separating comma; only its comments survive
			p.emitLeading(c.Tok, true)
		}
	}
	p.emitLeading(rbrace.Tok, true)
	p.w.IndentPop()
	p.w.WriteString("}")
}

// flatOf renders a child slice the way flatSeq lays out a node body,
// with any trailing space trimmed.
func flatOf(children []cst.Child) string {
	var sb strings.Builder
	flatSeq(&sb, children)
	return strings.TrimRight(sb.String(), " ")
}

func leafIndex(children []cst.Child, k token.Kind) int {
	for i, c := range children {
		if leaf, ok := c.(cst.Leaf); ok && leaf.Tok.Kind == k {
			return i
		}
	}
	return -1
}

func nodeIndex(children []cst.Child, k cst.Kind) int {
	for i, c := range children {
		if n, ok := c.(*cst.Node); ok && n.Kind == k {
			return i
		}
	}
	return -1
}

func hasCommentTrivia(tok token.Token) bool {
	for _, tr := range tok.Leading {
		if tr.IsComment() {
			return true
		}
	}
	return false
}
