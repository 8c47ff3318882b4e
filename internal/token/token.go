package token

import (
	"sablefmt/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwImport, KwAs, KwPub, KwFn, KwType, KwConst, KwLet, KwIf, KwElse,
		KwWhile, KwReturn, KwBreak, KwContinue, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// LeadingBlankLines counts the blank lines inside the token's leading
// trivia: a newline run of n characters separates n-1 empty lines from
// the previous significant content, so n >= 2 means at least one blank
// line precedes the token.
func (t Token) LeadingBlankLines() int {
	blank := 0
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline && len(tr.Text) >= 2 {
			blank += len(tr.Text) - 1
		}
	}
	return blank
}

// DocLines returns the doc-comment trivia attached to the token, in order.
func (t Token) DocLines() []Trivia {
	var docs []Trivia
	for _, tr := range t.Leading {
		if tr.Kind == TriviaDocLine {
			docs = append(docs, tr)
		}
	}
	return docs
}
