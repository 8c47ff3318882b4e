package parser

import (
	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/token"
)

// parseBlock parses '{ stmt* }'.
func (p *Parser) parseBlock() (*cst.Node, error) {
	lbrace, err := p.expectLeaf(token.LBrace, diag.SynUnclosedBrace, "expected '{'")
	if err != nil {
		return nil, err
	}
	children := []cst.Child{lbrace}

	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			return nil, p.fail(diag.SynUnclosedBrace, "unclosed block")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		children = append(children, stmt)
	}

	children = append(children, cst.Leaf{Tok: p.advance()}) // '}'
	return cst.NewNode(cst.KindBlock, children...), nil
}

// parseStmt dispatches on the statement's first token.
func (p *Parser) parseStmt() (*cst.Node, error) {
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		kw := cst.Leaf{Tok: p.advance()}
		semi, err := p.expectSemicolon("'break'")
		if err != nil {
			return nil, err
		}
		return cst.NewNode(cst.KindBreakStmt, kw, semi), nil
	case token.KwContinue:
		kw := cst.Leaf{Tok: p.advance()}
		semi, err := p.expectSemicolon("'continue'")
		if err != nil {
			return nil, err
		}
		return cst.NewNode(cst.KindContinueStmt, kw, semi), nil
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

// parseLet parses 'let name [: Type] = expr;'.
func (p *Parser) parseLet() (*cst.Node, error) {
	children := []cst.Child{cst.Leaf{Tok: p.advance()}} // 'let'

	name, err := p.expectLeaf(token.Ident, diag.SynExpectIdentifier, "expected binding name")
	if err != nil {
		return nil, err
	}
	children = append(children, name)

	if p.at(token.Colon) {
		children = append(children, cst.Leaf{Tok: p.advance()})
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		children = append(children, typ)
	}

	assign, err := p.expectLeaf(token.Assign, diag.SynUnexpectedToken, "expected '=' in let binding")
	if err != nil {
		return nil, err
	}
	children = append(children, assign)

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	children = append(children, value)

	semi, err := p.expectSemicolon("let binding")
	if err != nil {
		return nil, err
	}
	children = append(children, semi)
	return cst.NewNode(cst.KindLetStmt, children...), nil
}

// parseIf parses 'if expr block [else (if | block)]'.
func (p *Parser) parseIf() (*cst.Node, error) {
	children := []cst.Child{cst.Leaf{Tok: p.advance()}} // 'if'

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	children = append(children, cond)

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	children = append(children, then)

	if p.at(token.KwElse) {
		children = append(children, cst.Leaf{Tok: p.advance()})
		var alt *cst.Node
		if p.at(token.KwIf) {
			alt, err = p.parseIf()
		} else {
			alt, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
		children = append(children, alt)
	}
	return cst.NewNode(cst.KindIfStmt, children...), nil
}

// parseWhile parses 'while expr block'.
func (p *Parser) parseWhile() (*cst.Node, error) {
	children := []cst.Child{cst.Leaf{Tok: p.advance()}} // 'while'

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	children = append(children, cond)

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	children = append(children, body)
	return cst.NewNode(cst.KindWhileStmt, children...), nil
}

// parseReturn parses 'return [expr];'.
func (p *Parser) parseReturn() (*cst.Node, error) {
	children := []cst.Child{cst.Leaf{Tok: p.advance()}} // 'return'

	if !p.at(token.Semicolon) {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		children = append(children, value)
	}

	semi, err := p.expectSemicolon("return")
	if err != nil {
		return nil, err
	}
	children = append(children, semi)
	return cst.NewNode(cst.KindReturnStmt, children...), nil
}

// parseExprStmt parses 'expr;' or the assignment form 'expr = expr;'.
func (p *Parser) parseExprStmt() (*cst.Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.at(token.Assign) {
		assign := cst.Leaf{Tok: p.advance()}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		semi, err := p.expectSemicolon("assignment")
		if err != nil {
			return nil, err
		}
		return cst.NewNode(cst.KindAssignStmt, expr, assign, value, semi), nil
	}

	semi, err := p.expectSemicolon("expression")
	if err != nil {
		return nil, err
	}
	return cst.NewNode(cst.KindExprStmt, expr, semi), nil
}
