package printer

import (
	"sablefmt/internal/cst"
	"sablefmt/internal/token"
)

// printBlock renders '{ ... }' with one statement per line. An empty
// block with no interior comments collapses to '{}'.
func (p *printer) printBlock(b *cst.Node) {
	rbrace := b.Children[len(b.Children)-1].(cst.Leaf)
	stmts := b.Children[1 : len(b.Children)-1]

	if len(stmts) == 0 && !hasCommentTrivia(rbrace.Tok) {
		p.w.WriteString("{}")
		return
	}

	p.w.WriteString("{")
	p.w.Newline()
	p.w.IndentPush()
	for _, c := range stmts {
		stmt := c.(*cst.Node)
		tok, _ := stmt.FirstToken()
		p.emitLeading(tok, true)
		p.hoistComments(stmt)
		p.printStmt(stmt)
		p.w.Newline()
	}
	p.emitLeading(rbrace.Tok, true)
	p.w.IndentPop()
	p.w.WriteString("}")
}

func (p *printer) printStmt(n *cst.Node) {
	switch n.Kind {
	case cst.KindIfStmt:
		p.printIf(n)
	case cst.KindWhileStmt:
		p.printWhile(n)
	case cst.KindBlock:
		p.printBlock(n)
	case cst.KindLetStmt, cst.KindAssignStmt:
		p.printAssigning(n)
	case cst.KindReturnStmt:
		p.printReturn(n)
	case cst.KindExprStmt:
		if s := flat(n); p.fits(s, 0) {
			p.w.WriteString(s)
		} else {
			p.printExpr(n.Children[0], 1)
			p.w.WriteString(";")
		}
	default:
		// break, continue
		p.w.WriteString(flat(n))
	}
}

// printAssigning handles let bindings and assignments: the target and
// '=' stay on the first line, only the value wraps.
func (p *printer) printAssigning(n *cst.Node) {
	s := flat(n)
	if p.fits(s, 0) {
		p.w.WriteString(s)
		return
	}
	i := leafIndex(n.Children, token.Assign)
	p.w.WriteString(flatOf(n.Children[:i+1]))
	p.w.WriteString(" ")
	p.printExpr(n.Children[i+1], 1)
	p.w.WriteString(";")
}

func (p *printer) printReturn(n *cst.Node) {
	s := flat(n)
	if p.fits(s, 0) || len(n.Children) == 2 {
		p.w.WriteString(s)
		return
	}
	p.w.WriteString("return ")
	p.printExpr(n.Children[1], 1)
	p.w.WriteString(";")
}

// printIf renders the whole else chain; 'else' cuddles onto the
// closing brace of the preceding branch.
func (p *printer) printIf(n *cst.Node) {
	p.w.WriteString("if ")
	p.printCond(n.Children[1])
	p.w.WriteString(" ")
	p.printBlock(n.Children[2].(*cst.Node))

	if len(n.Children) < 5 {
		return
	}
	p.w.WriteString(" else ")
	alt := n.Children[4].(*cst.Node)
	if alt.Kind == cst.KindIfStmt {
		p.printIf(alt)
	} else {
		p.printBlock(alt)
	}
}

func (p *printer) printWhile(n *cst.Node) {
	p.w.WriteString("while ")
	p.printCond(n.Children[1])
	p.w.WriteString(" ")
	p.printBlock(n.Children[2].(*cst.Node))
}

// printCond prints a condition expression, reserving room for ' {'.
func (p *printer) printCond(c cst.Child) {
	if s := flat(c); p.fits(s, 2) {
		p.w.WriteString(s)
		return
	}
	p.printExpr(c, 2)
}
