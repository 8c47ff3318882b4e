package printer

import (
	"sablefmt/internal/cst"
)

// printExpr renders an expression, wrapping when the flat form would
// overflow the line budget. reserve is the column count the caller
// still needs after the expression on its final line.
func (p *printer) printExpr(c cst.Child, reserve int) {
	s := flat(c)
	if p.fits(s, reserve) {
		p.w.WriteString(s)
		return
	}

	n, ok := c.(*cst.Node)
	if !ok {
		// a lone token cannot be broken
		p.w.WriteString(s)
		return
	}

	switch n.Kind {
	case cst.KindCallExpr:
		p.printCallWrapped(n)
	case cst.KindBinaryExpr:
		p.printBinaryWrapped(n, reserve)
	case cst.KindMemberExpr:
		p.printMemberWrapped(n, reserve)
	case cst.KindParenExpr:
		p.w.WriteString("(")
		p.printExpr(n.Children[1], reserve+1)
		p.w.WriteString(")")
	case cst.KindUnaryExpr:
		if leaf, ok := n.Children[0].(cst.Leaf); ok {
			p.w.WriteString(leaf.Tok.Text)
		}
		p.printExpr(n.Children[1], reserve)
	default:
		// paths and type refs are atomic
		p.w.WriteString(s)
	}
}

// printCallWrapped puts each argument on its own line.
func (p *printer) printCallWrapped(n *cst.Node) {
	callee := n.Children[0]
	args := n.Children[1].(*cst.Node)

	p.printExpr(callee, 1)
	p.w.WriteString("(")
	p.w.Newline()
	p.w.IndentPush()
	exprs := argExprs(args)
	for i, a := range exprs {
		if i < len(exprs)-1 {
			p.printExpr(a, 1)
			p.w.WriteString(",")
		} else {
			p.printExpr(a, 0)
		}
		p.w.Newline()
	}
	p.w.IndentPop()
	p.w.WriteString(")")
}

// printBinaryWrapped breaks before the operator, continuing one level
// deeper so the continuation reads as part of the expression.
func (p *printer) printBinaryWrapped(n *cst.Node, reserve int) {
	op := n.Children[1].(cst.Leaf)
	p.printExpr(n.Children[0], 0)
	p.w.Newline()
	p.w.IndentPush()
	p.w.WriteString(op.Tok.Text)
	p.w.WriteString(" ")
	p.printExpr(n.Children[2], reserve)
	p.w.IndentPop()
}

// printMemberWrapped breaks before the dot.
func (p *printer) printMemberWrapped(n *cst.Node, reserve int) {
	p.printExpr(n.Children[0], 0)
	p.w.Newline()
	p.w.IndentPush()
	p.w.WriteString(".")
	p.printExpr(n.Children[2], reserve)
	p.w.IndentPop()
}

// argExprs lists the expression children of an argument list, skipping
// the parentheses and comma leaves.
func argExprs(args *cst.Node) []cst.Child {
	var out []cst.Child
	for _, c := range args.Children {
		if _, ok := c.(cst.Leaf); ok {
			continue
		}
		out = append(out, c)
	}
	return out
}
