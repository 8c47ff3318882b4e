package canon

import (
	"strings"

	"sablefmt/internal/cst"
	"sablefmt/internal/source"
	"sablefmt/internal/token"
)

// normalizeBlanks rewrites every token's leading trivia into canonical
// shape: space runs vanish (the printer re-indents), consecutive blank
// lines collapse to one, and blank lines directly inside block
// boundaries (after '{', before '}') are removed entirely. The very
// first token of the file loses any blank lines above it.
func normalizeBlanks(file *cst.Node) *cst.Node {
	caps := blankCaps(file)
	out := mapLeaves(file, func(leaf cst.Leaf) cst.Leaf {
		runCap, ok := caps[triviaKeyFor(leaf.Tok)]
		if !ok {
			runCap = 2
		}
		normalized := normalizeTrivia(leaf.Tok.Leading, runCap)
		if triviaEqual(leaf.Tok.Leading, normalized) {
			return leaf
		}
		tok := leaf.Tok
		tok.Leading = normalized
		return cst.Leaf{Tok: tok}
	})
	return out.(*cst.Node)
}

type triviaKey struct {
	span source.Span
	kind token.Kind
}

func triviaKeyFor(tok token.Token) triviaKey {
	return triviaKey{span: tok.Span, kind: tok.Kind}
}

// blankCaps computes, per token, the maximum newline-run length allowed
// in its leading trivia: 1 right after '{' and on '}', 1 on the file's
// first token (no leading blank lines), 2 elsewhere (one blank line).
func blankCaps(file *cst.Node) map[triviaKey]int {
	tokens := cst.Tokens(file)
	caps := make(map[triviaKey]int, len(tokens))
	for i, tok := range tokens {
		runCap := 2
		switch {
		case i == 0:
			runCap = 0
		case tok.Kind == token.RBrace:
			runCap = 1
		case tokens[i-1].Kind == token.LBrace:
			runCap = 1
		}
		caps[triviaKeyFor(tok)] = runCap
	}
	return caps
}

// normalizeTrivia rebuilds a trivia list as alternating newline runs and
// comments. maxRun bounds each newline run ('\n' count); 0 removes runs
// before the first comment but keeps single newlines between and after
// comments so they stay on their own lines.
func normalizeTrivia(trivia []token.Trivia, maxRun int) []token.Trivia {
	var out []token.Trivia
	pending := 0
	sawComment := false

	flush := func() {
		if pending == 0 {
			return
		}
		run := pending
		pending = 0
		limit := maxRun
		if maxRun == 0 {
			if !sawComment {
				return
			}
			limit = 1
		}
		if run > limit {
			run = limit
		}
		if run == 0 {
			return
		}
		out = append(out, token.Trivia{
			Kind: token.TriviaNewline,
			Text: strings.Repeat("\n", run),
		})
	}

	for _, tr := range trivia {
		switch tr.Kind {
		case token.TriviaSpace:
			// dropped; the printer controls horizontal spacing
		case token.TriviaNewline:
			pending += strings.Count(tr.Text, "\n")
		default:
			flush()
			sawComment = true
			out = append(out, token.Trivia{Kind: tr.Kind, Span: tr.Span, Text: tr.Text})
		}
	}
	flush()
	return out
}

func triviaEqual(a, b []token.Trivia) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}
