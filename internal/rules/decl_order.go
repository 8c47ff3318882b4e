package rules

import (
	"fmt"

	"sablefmt/internal/cst"
	"sablefmt/internal/diag"
	"sablefmt/internal/token"
)

// checkDeclOrder is the advisory read-down check: a private top-level
// function that only gets referenced later in the file is a helper
// declared above all of its callers. Purely name-based; any hint of
// shadowing or reuse of the name disqualifies the function rather than
// risking a false positive.
func checkDeclOrder(ctx Context, r diag.Reporter) {
	binders := localBinders(ctx.Tree)
	tokens := cst.Tokens(ctx.Tree)

	for _, decl := range ctx.Tree.Children {
		fn, ok := decl.(*cst.Node)
		if !ok || fn.Kind != cst.KindFn {
			continue
		}
		if leaf, ok := fn.Children[0].(cst.Leaf); ok && leaf.Tok.Kind == token.KwPub {
			continue
		}
		name, ok := fn.FindToken(token.Ident)
		if !ok || binders[name.Text] > 1 {
			continue
		}

		refs := 0
		early := false
		for i, tok := range tokens {
			if tok.Kind != token.Ident || tok.Text != name.Text {
				continue
			}
			if tok.Span == name.Span {
				continue
			}
			// 'x.name' is a member of some other value, not a call to
			// this function
			if i > 0 && tokens[i-1].Kind == token.Dot {
				continue
			}
			refs++
			if tok.Span.Start < fn.Span().Start {
				early = true
			}
		}
		if refs > 0 && !early {
			diag.ReportWarning(r, diag.StyleDeclOrder, name.Span,
				fmt.Sprintf("helper %q is declared before all of its callers", name.Text))
		}
	}
}

// localBinders counts how many times each identifier is bound anywhere
// in the file: declarations, parameters, fields, let bindings, import
// aliases. A count above one means the name is reused and the order
// heuristic cannot trust plain name matches.
func localBinders(tree *cst.Node) map[string]int {
	counts := make(map[string]int)
	cst.Walk(tree, func(c cst.Child) bool {
		n, ok := c.(*cst.Node)
		if !ok {
			return true
		}
		switch n.Kind {
		case cst.KindFn, cst.KindTypeDecl, cst.KindConstDecl,
			cst.KindParam, cst.KindField, cst.KindLetStmt:
			if name, ok := n.FindToken(token.Ident); ok {
				counts[name.Text]++
			}
		case cst.KindImport:
			// the alias, or the last path segment, becomes a local name
			if alias, ok := importedName(n); ok {
				counts[alias]++
			}
		}
		return true
	})
	return counts
}

func importedName(n *cst.Node) (string, bool) {
	for i, c := range n.Children {
		leaf, ok := c.(cst.Leaf)
		if !ok || leaf.Tok.Kind != token.KwAs {
			continue
		}
		if alias, ok := n.Children[i+1].(cst.Leaf); ok {
			return alias.Tok.Text, true
		}
	}
	path, ok := n.FindChild(cst.KindPath)
	if !ok {
		return "", false
	}
	last, ok := path.LastToken()
	if !ok {
		return "", false
	}
	return last.Text, true
}
