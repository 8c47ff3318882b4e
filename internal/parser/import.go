package parser

import (
	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/token"
)

// parseImport parses 'import path [as alias];'.
func (p *Parser) parseImport() (*cst.Node, error) {
	children := []cst.Child{cst.Leaf{Tok: p.advance()}} // 'import'

	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	children = append(children, path)

	if p.at(token.KwAs) {
		children = append(children, cst.Leaf{Tok: p.advance()})
		alias, err := p.expectLeaf(token.Ident, diag.SynExpectIdentifier, "expected alias after 'as'")
		if err != nil {
			return nil, err
		}
		children = append(children, alias)
	}

	semi, err := p.expectSemicolon("import")
	if err != nil {
		return nil, err
	}
	children = append(children, semi)
	return cst.NewNode(cst.KindImport, children...), nil
}

// parsePath parses a dotted module path: ident ('.' ident)*.
func (p *Parser) parsePath() (*cst.Node, error) {
	first, err := p.expectLeaf(token.Ident, diag.SynExpectIdentifier, "expected module path")
	if err != nil {
		return nil, err
	}
	children := []cst.Child{first}
	for p.at(token.Dot) {
		children = append(children, cst.Leaf{Tok: p.advance()})
		seg, err := p.expectLeaf(token.Ident, diag.SynExpectIdentifier, "expected path segment after '.'")
		if err != nil {
			return nil, err
		}
		children = append(children, seg)
	}
	return cst.NewNode(cst.KindPath, children...), nil
}
