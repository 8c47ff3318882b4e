package parser

import (
	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/token"
)

// parseFn parses '[pub] fn name(params) [-> Type] { ... }'.
func (p *Parser) parseFn(pub []cst.Child) (*cst.Node, error) {
	children := append(pub, cst.Leaf{Tok: p.advance()}) // 'fn'

	name, err := p.expectLeaf(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if err != nil {
		return nil, err
	}
	children = append(children, name)

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	children = append(children, params)

	if p.at(token.Arrow) {
		children = append(children, cst.Leaf{Tok: p.advance()})
		ret, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		children = append(children, ret)
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	children = append(children, body)
	return cst.NewNode(cst.KindFn, children...), nil
}

// parseParamList parses '(' [param (',' param)* [',']] ')'.
func (p *Parser) parseParamList() (*cst.Node, error) {
	lparen, err := p.expectLeaf(token.LParen, diag.SynUnclosedParen, "expected '('")
	if err != nil {
		return nil, err
	}
	children := []cst.Child{lparen}

	for !p.at(token.RParen) {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		children = append(children, param)
		if p.at(token.Comma) {
			children = append(children, cst.Leaf{Tok: p.advance()})
			continue
		}
		break
	}

	rparen, err := p.expectLeaf(token.RParen, diag.SynUnclosedParen, "expected ')'")
	if err != nil {
		return nil, err
	}
	children = append(children, rparen)
	return cst.NewNode(cst.KindParamList, children...), nil
}

// parseParam parses 'name: Type'.
func (p *Parser) parseParam() (*cst.Node, error) {
	name, err := p.expectLeaf(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
	if err != nil {
		return nil, err
	}
	colon, err := p.expectLeaf(token.Colon, diag.SynUnexpectedToken, "expected ':' after parameter name")
	if err != nil {
		return nil, err
	}
	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	return cst.NewNode(cst.KindParam, name, colon, typ), nil
}

// parseTypeRef parses a (possibly dotted) type reference.
func (p *Parser) parseTypeRef() (*cst.Node, error) {
	first, err := p.expectLeaf(token.Ident, diag.SynExpectType, "expected type")
	if err != nil {
		return nil, err
	}
	children := []cst.Child{first}
	for p.at(token.Dot) {
		children = append(children, cst.Leaf{Tok: p.advance()})
		seg, err := p.expectLeaf(token.Ident, diag.SynExpectType, "expected type segment after '.'")
		if err != nil {
			return nil, err
		}
		children = append(children, seg)
	}
	return cst.NewNode(cst.KindTypeRef, children...), nil
}
