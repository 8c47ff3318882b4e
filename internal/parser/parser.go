package parser

import (
	"bytes"
	"fmt"

	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/lexer"
	"sablefmt/internal/source"
	"sablefmt/internal/token"
)

// Options configures a parse.
type Options struct {
	Reporter diag.Reporter
}

// ParseError means the file is not syntactically valid. It is fatal for
// the file only; the caller skips the file and keeps processing others.
type ParseError struct {
	Span source.Span
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Span, e.Msg)
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	lastSpan source.Span
}

// ParseFile parses one file into a lossless tree. On syntactically
// invalid input it returns a *ParseError (also reported through
// opts.Reporter). On success it verifies the lossless-parse invariant:
// reassembling the tree must reproduce the input exactly, and a
// mismatch is an internal error, never user-facing output.
func ParseFile(file *source.File, opts Options) (*cst.Node, error) {
	p := Parser{
		lx:       lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		file:     file,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}

	root, err := p.parseFile()
	if err != nil {
		return nil, err
	}

	if src := cst.Source(root); !bytes.Equal(src, file.Content) {
		return nil, &cst.InvariantError{
			Stage: "parse",
			Msg:   fmt.Sprintf("reassembled tree differs from input at offset %d", firstDiff(src, file.Content)),
		}
	}
	return root, nil
}

func (p *Parser) parseFile() (*cst.Node, error) {
	var children []cst.Child
	for !p.at(token.EOF) {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		children = append(children, decl)
	}
	// EOF leaf carries the file's trailing trivia.
	children = append(children, cst.Leaf{Tok: p.advance()})
	return cst.NewNode(cst.KindFile, children...), nil
}

// parseDecl dispatches on the first token of a top-level declaration.
// A leading 'pub' is consumed here and handed to the declaration parser.
func (p *Parser) parseDecl() (*cst.Node, error) {
	var pub []cst.Child
	if p.at(token.KwPub) {
		pub = append(pub, cst.Leaf{Tok: p.advance()})
	}

	switch p.lx.Peek().Kind {
	case token.KwImport:
		if len(pub) > 0 {
			return nil, p.fail(diag.SynUnexpectedTopLevel, "imports cannot be 'pub'")
		}
		return p.parseImport()
	case token.KwFn:
		return p.parseFn(pub)
	case token.KwType:
		return p.parseTypeDecl(pub)
	case token.KwConst:
		return p.parseConstDecl(pub)
	default:
		return nil, p.fail(diag.SynUnexpectedTopLevel,
			fmt.Sprintf("expected declaration, found %q", p.lx.Peek().Text))
	}
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
