package rules

import (
	"fmt"
	"regexp"
	"strings"

	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/token"
)

// checkDocPresence requires a '///' doc comment on every pub
// declaration.
func checkDocPresence(ctx Context, r diag.Reporter) {
	for _, decl := range publicDecls(ctx.Tree) {
		tok, ok := decl.FirstToken()
		if !ok || len(tok.DocLines()) > 0 {
			continue
		}
		name, _ := decl.FindToken(token.Ident)
		diag.ReportError(r, diag.StyleMissingDoc, decl.Span(),
			fmt.Sprintf("public declaration %q has no doc comment", name.Text))
	}
}

// tagPattern accepts '@author Name' and '@since v1.2' style tags: the
// tag word, one space, then a non-empty value of word, space, dot, or
// dash characters.
var tagPattern = regexp.MustCompile(`^@(author|since) [\w .-]*\w$`)

// checkDocTags validates author and since tags inside doc comments.
// Unknown tags pass; known tags with a missing or malformed value are
// reported with the offending text.
func checkDocTags(ctx Context, r diag.Reporter) {
	for _, tok := range cst.Tokens(ctx.Tree) {
		for _, tr := range tok.Leading {
			if tr.Kind != token.TriviaDocLine {
				continue
			}
			body := strings.TrimSpace(strings.TrimPrefix(tr.Text, "///"))
			if !strings.HasPrefix(body, "@") {
				continue
			}
			word, _, _ := strings.Cut(body, " ")
			if word != "@author" && word != "@since" {
				continue
			}
			if !tagPattern.MatchString(body) {
				diag.ReportError(r, diag.StyleMalformedTag, tr.Span,
					fmt.Sprintf("malformed %s tag: %q", word, body))
			}
		}
	}
}

// publicDecls lists the top-level declarations carrying a 'pub'
// modifier.
func publicDecls(tree *cst.Node) []*cst.Node {
	var out []*cst.Node
	for _, c := range tree.Children {
		decl, ok := c.(*cst.Node)
		if !ok || !decl.Kind.IsDecl() {
			continue
		}
		if leaf, ok := decl.Children[0].(cst.Leaf); ok && leaf.Tok.Kind == token.KwPub {
			out = append(out, decl)
		}
	}
	return out
}
