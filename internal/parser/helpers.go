package parser

import (
	"fmt"

	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/source"
	"sablefmt/internal/token"
)

// advance consumes the next token and remembers its span for diagnostics.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// diagnosticSpan picks the best span to point a diagnostic at. At EOF
// the peeked span is empty, so point just past the last consumed token.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if (peek.Kind == token.EOF || peek.Kind == token.Invalid) && peek.Span.Empty() {
		if p.lastSpan.End > 0 {
			return source.Span{
				File:  p.lastSpan.File,
				Start: p.lastSpan.End,
				End:   p.lastSpan.End,
			}
		}
	}
	return peek.Span
}

// expect consumes a token of kind k or fails the parse.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.fail(code, msg)
}

// expectLeaf is expect wrapped into a tree child.
func (p *Parser) expectLeaf(k token.Kind, code diag.Code, msg string) (cst.Leaf, error) {
	tok, err := p.expect(k, code, msg)
	if err != nil {
		return cst.Leaf{}, err
	}
	return cst.Leaf{Tok: tok}, nil
}

// fail reports the error and returns the ParseError for the caller to
// propagate.
func (p *Parser) fail(code diag.Code, msg string) error {
	sp := p.diagnosticSpan()
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
	return &ParseError{Span: sp, Msg: msg}
}

// expectSemicolon is the common ';' terminator check with a uniform message.
func (p *Parser) expectSemicolon(after string) (cst.Leaf, error) {
	return p.expectLeaf(token.Semicolon, diag.SynExpectSemicolon,
		fmt.Sprintf("expected ';' after %s", after))
}
