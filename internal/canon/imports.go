package canon

import (
	"sort"
	"strings"

	"sablefmt/internal/cst"
	"sablefmt/internal/token"
)

// sortImports stable-sorts the leading import run of a file by module
// path (then alias) and removes exact duplicates. Trivia attached to the
// run's first import (typically the file header comment) stays at the
// top of the run.
func sortImports(file *cst.Node) *cst.Node {
	runEnd := 0
	for _, c := range file.Children {
		if n, ok := c.(*cst.Node); ok && n.Kind == cst.KindImport {
			runEnd++
			continue
		}
		break
	}
	if runEnd < 2 {
		return file
	}

	run := make([]*cst.Node, runEnd)
	for i := 0; i < runEnd; i++ {
		run[i] = file.Children[i].(*cst.Node)
	}

	// Detach the header trivia before reordering.
	var header []token.Trivia
	if leaf, ok := firstLeaf(run[0]); ok && len(leaf.Tok.Leading) > 0 {
		header = leaf.Tok.Leading
		bare := leaf.Tok
		bare.Leading = nil
		run[0] = withFirstLeaf(run[0], cst.Leaf{Tok: bare}).(*cst.Node)
	}

	sort.SliceStable(run, func(i, j int) bool {
		return importKey(run[i]) < importKey(run[j])
	})

	deduped := run[:0]
	at := make(map[string]int, len(run))
	for _, imp := range run {
		key := importKey(imp)
		if i, dup := at[key]; dup {
			// the duplicate goes, its comments move to the survivor
			if comments := commentTrivia(imp); len(comments) > 0 {
				deduped[i] = prependTrivia(deduped[i], comments)
			}
			continue
		}
		at[key] = len(deduped)
		deduped = append(deduped, imp)
	}

	if len(header) > 0 {
		deduped[0] = prependTrivia(deduped[0], header)
	}

	children := make([]cst.Child, 0, len(deduped)+len(file.Children)-runEnd)
	for _, imp := range deduped {
		children = append(children, imp)
	}
	children = append(children, file.Children[runEnd:]...)
	return file.WithChildren(children)
}

// commentTrivia collects the comment trivia attached anywhere inside
// the import, in order.
func commentTrivia(imp *cst.Node) []token.Trivia {
	var out []token.Trivia
	for _, tok := range cst.Tokens(imp) {
		for _, tr := range tok.Leading {
			if tr.IsComment() {
				out = append(out, tr)
			}
		}
	}
	return out
}

// prependTrivia puts trivia ahead of the import's existing leading
// trivia.
func prependTrivia(imp *cst.Node, trivia []token.Trivia) *cst.Node {
	leaf, ok := firstLeaf(imp)
	if !ok {
		return imp
	}
	tok := leaf.Tok
	tok.Leading = append(append([]token.Trivia{}, trivia...), tok.Leading...)
	return withFirstLeaf(imp, cst.Leaf{Tok: tok}).(*cst.Node)
}

// importKey builds the sort key 'path\x00alias' for an import node.
func importKey(imp *cst.Node) string {
	var sb strings.Builder
	if path, ok := imp.FindChild(cst.KindPath); ok {
		for _, c := range path.Children {
			if leaf, ok := c.(cst.Leaf); ok {
				sb.WriteString(leaf.Tok.Text)
			}
		}
	}
	sb.WriteByte(0)
	if alias, ok := imp.FindToken(token.Ident); ok {
		sb.WriteString(alias.Text)
	}
	return sb.String()
}
