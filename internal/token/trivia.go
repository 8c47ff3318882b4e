package token

import "sablefmt/internal/source"

// TriviaKind classifies whitespace and comment runs attached to tokens.
type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces and tabs.
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a run of consecutive newlines.
	TriviaNewline
	// TriviaLineComment is a '//' comment up to end of line.
	TriviaLineComment
	// TriviaBlockComment is a '/* ... */' comment, possibly nested.
	TriviaBlockComment
	// TriviaDocLine is a '///' documentation line.
	TriviaDocLine
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocLine:
		return "DocLine"
	}
	return "Trivia(?)"
}

// Trivia is a single whitespace or comment run. Text always matches the
// original source bytes for Span, which keeps tree reassembly lossless.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is any comment form.
func (t Trivia) IsComment() bool {
	switch t.Kind {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine:
		return true
	default:
		return false
	}
}
