package parser

import (
	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/token"
)

// parseTypeDecl parses '[pub] type Name { field: T, ... }'.
func (p *Parser) parseTypeDecl(pub []cst.Child) (*cst.Node, error) {
	children := append(pub, cst.Leaf{Tok: p.advance()}) // 'type'

	name, err := p.expectLeaf(token.Ident, diag.SynExpectIdentifier, "expected type name")
	if err != nil {
		return nil, err
	}
	children = append(children, name)

	lbrace, err := p.expectLeaf(token.LBrace, diag.SynUnclosedBrace, "expected '{' after type name")
	if err != nil {
		return nil, err
	}
	children = append(children, lbrace)

	for !p.at(token.RBrace) {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		children = append(children, field)
		if p.at(token.Comma) {
			children = append(children, cst.Leaf{Tok: p.advance()})
			continue
		}
		break
	}

	rbrace, err := p.expectLeaf(token.RBrace, diag.SynUnclosedBrace, "expected '}' closing type body")
	if err != nil {
		return nil, err
	}
	children = append(children, rbrace)
	return cst.NewNode(cst.KindTypeDecl, children...), nil
}

// parseField parses one 'name: Type' field.
func (p *Parser) parseField() (*cst.Node, error) {
	name, err := p.expectLeaf(token.Ident, diag.SynExpectIdentifier, "expected field name")
	if err != nil {
		return nil, err
	}
	colon, err := p.expectLeaf(token.Colon, diag.SynUnexpectedToken, "expected ':' after field name")
	if err != nil {
		return nil, err
	}
	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	return cst.NewNode(cst.KindField, name, colon, typ), nil
}
