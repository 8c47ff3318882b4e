package parser

import (
	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/token"
)

// parseConstDecl parses '[pub] const NAME: Type = expr;'.
func (p *Parser) parseConstDecl(pub []cst.Child) (*cst.Node, error) {
	children := append(pub, cst.Leaf{Tok: p.advance()}) // 'const'

	name, err := p.expectLeaf(token.Ident, diag.SynExpectIdentifier, "expected constant name")
	if err != nil {
		return nil, err
	}
	children = append(children, name)

	colon, err := p.expectLeaf(token.Colon, diag.SynUnexpectedToken, "expected ':' after constant name")
	if err != nil {
		return nil, err
	}
	children = append(children, colon)

	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	children = append(children, typ)

	assign, err := p.expectLeaf(token.Assign, diag.SynUnexpectedToken, "expected '=' in constant declaration")
	if err != nil {
		return nil, err
	}
	children = append(children, assign)

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	children = append(children, value)

	semi, err := p.expectSemicolon("constant declaration")
	if err != nil {
		return nil, err
	}
	children = append(children, semi)
	return cst.NewNode(cst.KindConstDecl, children...), nil
}
