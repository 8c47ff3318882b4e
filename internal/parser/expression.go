package parser

import (
	"fmt"

	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/token"
)

// Binary operator precedence, loosest first.
func binaryPrec(k token.Kind) int {
	switch k {
	case token.OrOr:
		return 1
	case token.AndAnd:
		return 2
	case token.EqEq, token.BangEq:
		return 3
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return 4
	case token.Plus, token.Minus:
		return 5
	case token.Star, token.Slash, token.Percent:
		return 6
	default:
		return 0
	}
}

// parseExpr is the entry point for expression parsing.
func (p *Parser) parseExpr() (cst.Child, error) {
	return p.parseBinary(1)
}

// parseBinary implements precedence climbing; all binary operators are
// left-associative.
func (p *Parser) parseBinary(minPrec int) (cst.Child, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		prec := binaryPrec(p.lx.Peek().Kind)
		if prec < minPrec {
			return left, nil
		}
		op := cst.Leaf{Tok: p.advance()}
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = cst.NewNode(cst.KindBinaryExpr, left, op, right)
	}
}

// parseUnary parses prefix '!' and '-'.
func (p *Parser) parseUnary() (cst.Child, error) {
	switch p.lx.Peek().Kind {
	case token.Bang, token.Minus:
		op := cst.Leaf{Tok: p.advance()}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return cst.NewNode(cst.KindUnaryExpr, op, operand), nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses call and member-access chains.
func (p *Parser) parsePostfix() (cst.Child, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			expr = cst.NewNode(cst.KindCallExpr, expr, args)
		case token.Dot:
			dot := cst.Leaf{Tok: p.advance()}
			name, err := p.expectLeaf(token.Ident, diag.SynExpectIdentifier, "expected member name after '.'")
			if err != nil {
				return nil, err
			}
			expr = cst.NewNode(cst.KindMemberExpr, expr, dot, name)
		default:
			return expr, nil
		}
	}
}

// parseArgList parses '(' [expr (',' expr)* [',']] ')'.
func (p *Parser) parseArgList() (*cst.Node, error) {
	children := []cst.Child{cst.Leaf{Tok: p.advance()}} // '('

	for !p.at(token.RParen) {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		children = append(children, arg)
		if p.at(token.Comma) {
			children = append(children, cst.Leaf{Tok: p.advance()})
			continue
		}
		break
	}

	rparen, err := p.expectLeaf(token.RParen, diag.SynUnclosedParen, "expected ')' closing argument list")
	if err != nil {
		return nil, err
	}
	children = append(children, rparen)
	return cst.NewNode(cst.KindArgList, children...), nil
}

// parsePrimary parses literals, names, and parenthesized expressions.
func (p *Parser) parsePrimary() (cst.Child, error) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse, token.Ident:
		return cst.Leaf{Tok: p.advance()}, nil
	case token.LParen:
		lparen := cst.Leaf{Tok: p.advance()}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		rparen, err := p.expectLeaf(token.RParen, diag.SynUnclosedParen, "expected ')'")
		if err != nil {
			return nil, err
		}
		return cst.NewNode(cst.KindParenExpr, lparen, inner, rparen), nil
	default:
		return nil, p.fail(diag.SynUnexpectedToken,
			fmt.Sprintf("expected expression, found %q", tok.Text))
	}
}
